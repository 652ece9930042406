// Package worker runs the background jobs of the service.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/minetally/minetally/internal/logger"
	"github.com/minetally/minetally/internal/stats"
)

// FlushWorker periodically writes cached player stores back to the database
// so a crash loses at most one flush interval of recorded rows.
type FlushWorker struct {
	svc      stats.Service
	interval time.Duration

	shutdown chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// NewFlushWorker creates a flush worker with the given interval.
func NewFlushWorker(svc stats.Service, interval time.Duration) *FlushWorker {
	return &FlushWorker{
		svc:      svc,
		interval: interval,
		shutdown: make(chan struct{}),
	}
}

// Start launches the periodic flush loop. It returns immediately; Stop waits
// for any in-flight flush to finish.
func (w *FlushWorker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		log := logger.FromContext(ctx)
		log.Info("Flush worker started", "interval", w.interval)

		for {
			select {
			case <-ticker.C:
				if err := w.svc.FlushAll(ctx); err != nil {
					log.Error("Periodic flush failed", "error", err)
				}
			case <-w.shutdown:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop shuts the worker down and runs one final flush so nothing cached is
// lost on graceful shutdown.
func (w *FlushWorker) Stop(ctx context.Context) error {
	w.once.Do(func() { close(w.shutdown) })
	w.wg.Wait()

	log := logger.FromContext(ctx)
	log.Info("Flush worker stopped, running final flush")
	return w.svc.FlushAll(ctx)
}
