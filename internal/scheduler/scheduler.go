// Package scheduler runs named units of work on perpetual single-flight
// loops with automatic error backoff and recovery.
package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mapmirror/mapmirror/internal/config"
	"github.com/mapmirror/mapmirror/internal/logger"
)

// Scheduler owns a set of task loops. Loops run until the context passed to
// Start is cancelled; there is no other terminal state and no retry limit.
type Scheduler struct {
	log *logger.Logger
	wg  sync.WaitGroup
}

func New(log *logger.Logger) *Scheduler {
	if log == nil {
		log = logger.Default()
	}
	return &Scheduler{log: log.WithComponent("scheduler")}
}

// Start launches the loop for one named task. The unit of work executes
// immediately, then re-arms after each completion: with iv.Normal while
// healthy, with iv.OnError while in backoff. Re-arming after completion
// (rather than on a wall clock) means two executions of the same task can
// never overlap.
//
// The transition into backoff and the recovery out of it are each logged
// exactly once, so a task that fails for hours does not storm the log.
func (s *Scheduler) Start(ctx context.Context, name string, iv config.Intervals, work func(context.Context) error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		log := s.log.WithTask(name)
		log.Info("Starting task", "interval", iv.Normal, "error_interval", iv.OnError)

		// Guards against a re-arm while a run is somehow still in
		// flight. The loop structure makes that impossible, so this
		// only ever trips on a programming error.
		var running atomic.Bool

		inBackoff := false
		for {
			if !running.CompareAndSwap(false, true) {
				log.Warn("Previous execution still in flight, dropping run")
			} else {
				runID := uuid.New().String()
				log.Debug("Task run starting", "run_id", runID)

				err := work(ctx)
				running.Store(false)

				if ctx.Err() != nil {
					log.Info("Task stopped")
					return
				}

				switch {
				case err != nil && !inBackoff:
					inBackoff = true
					log.Error("Task failed, entering backoff",
						"run_id", runID, "error", err, "retry_in", iv.OnError)
				case err == nil && inBackoff:
					inBackoff = false
					log.Info("Task recovered, resuming normal schedule", "run_id", runID)
				}
			}

			delay := iv.Normal
			if inBackoff {
				delay = iv.OnError
			}

			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				log.Info("Task stopped")
				return
			case <-timer.C:
			}
		}
	}()
}

// Wait blocks until every loop has observed cancellation and returned.
func (s *Scheduler) Wait() {
	s.wg.Wait()
}
