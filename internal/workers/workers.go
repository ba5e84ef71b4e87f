package workers

import "context"

// Workers starts a fixed set of workers in registration order.
type Workers struct {
	workers []Worker
}

// NewWorkers groups ws; nil entries are skipped.
func NewWorkers(ws ...Worker) *Workers {
	w := &Workers{}
	for _, worker := range ws {
		if worker != nil {
			w.workers = append(w.workers, worker)
		}
	}
	return w
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
