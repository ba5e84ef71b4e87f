package server

import "context"

// Server defines the lifecycle of blobd's transport.
type Server interface {
	// RunServer serves until SIGTERM, SIGINT or SIGQUIT and then shuts down
	// gracefully.
	RunServer()

	// Run serves until ctx is done or the listener fails.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown()
}
