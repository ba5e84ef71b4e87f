package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-secure-data/internal/logger"
	"github.com/MKhiriev/go-secure-data/internal/workers"
)

type autosaveJob struct {
	registry *Registry
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// newAutosaveJob creates a job that saves the registry's dirty files on a
// ticker. The job is idle until Run is called.
func newAutosaveJob(r *Registry, interval time.Duration) *autosaveJob {
	return &autosaveJob{registry: r, interval: interval}
}

// worker returns j as a [workers.Worker], or nil for a nil job so that
// [workers.NewWorkers] skips it.
func (j *autosaveJob) worker() workers.Worker {
	if j == nil {
		return nil
	}
	return j
}

// Run implements [workers.Worker]. It stops any previously running loop,
// then launches a goroutine that saves dirty files every interval until ctx
// is cancelled or Stop is called.
func (j *autosaveJob) Run(ctx context.Context) {
	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(j.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				if err := j.registry.saveDirty(jobCtx); err != nil {
					logger.FromContext(jobCtx).Err(err).Str("func", "*autosaveJob.Run").Msg("autosave failed")
				}
			}
		}
	}()
}

// Stop cancels the loop and blocks until it has exited. Safe to call when
// the job is not running.
func (j *autosaveJob) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}
