// Package workers provides the background machinery shared by the registry:
// the Worker interface with a Workers aggregate that starts a set of
// workers together, and a bounded Pool that runs queued tasks on a fixed
// number of goroutines.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
// It defines a single Run method that starts the worker's execution.
//
// Implementations are expected to return promptly and spawn goroutines
// internally; ctx bounds the lifetime of that background work.
//
// Example implementation:
//
//	type MyWorker struct{}
//
//	func (w *MyWorker) Run(ctx context.Context) {
//	    go func() { <-ctx.Done() }()
//	}
type Worker interface {
	Run(ctx context.Context)
}

// Task is a unit of work executed by a [Pool].
type Task func(ctx context.Context)
