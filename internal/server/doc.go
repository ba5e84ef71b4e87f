// Package server runs blobd's HTTP transport: startup, signal handling and
// graceful shutdown.
package server
