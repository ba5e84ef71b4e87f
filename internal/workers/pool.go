// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"

	"github.com/MKhiriev/go-secure-data/internal/logger"
)

type job struct {
	ctx  context.Context
	task Task
}

// Pool runs submitted tasks on a fixed number of goroutines fed by a
// bounded queue. It is safe for concurrent use.
type Pool struct {
	queue chan job
	quit  chan struct{}

	mu      sync.RWMutex
	stopped bool
	once    sync.Once
	wg      sync.WaitGroup

	logger *logger.Logger
}

// NewPool starts size goroutines consuming a queue of queueSize pending
// tasks. Non-positive values are raised to 1 and 0 respectively.
func NewPool(size, queueSize int, log *logger.Logger) *Pool {
	if size <= 0 {
		size = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	if log == nil {
		log = logger.Nop()
	}

	p := &Pool{
		queue:  make(chan job, queueSize),
		quit:   make(chan struct{}),
		logger: log,
	}

	p.wg.Add(size)
	for i := 0; i < size; i++ {
		go p.loop(i)
	}

	return p
}

// Submit enqueues task. It blocks while the queue is full and returns
// ctx.Err() if ctx ends first, or ErrPoolStopped once Stop was called.
// The task receives ctx when it runs.
func (p *Pool) Submit(ctx context.Context, task Task) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case <-p.quit:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	case p.queue <- job{ctx: ctx, task: task}:
		return nil
	}
}

// Stop rejects new tasks, runs everything already queued and waits for the
// goroutines to exit. Calling Stop more than once is a no-op.
func (p *Pool) Stop() {
	p.once.Do(func() {
		// wake blocked submitters so they release the read lock
		close(p.quit)

		p.mu.Lock()
		p.stopped = true
		close(p.queue)
		p.mu.Unlock()
	})

	p.wg.Wait()
}

func (p *Pool) loop(id int) {
	defer p.wg.Done()

	for j := range p.queue {
		p.run(id, j)
	}
}

func (p *Pool) run(id int, j job) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().Str("func", "*Pool.run").Int("worker", id).Interface("panic", r).Msg("task panicked")
		}
	}()

	j.task(j.ctx)
}
