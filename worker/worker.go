package worker

import (
	"context"
	"time"
)

// Worker a long running job
type Worker interface {
	Run(ctx context.Context) error
}

// TickWorker tick base, re-runs the work func with a delay between rounds
type TickWorker struct {
	Delay    time.Duration
	ErrDelay time.Duration
}

// StartTick start tick loop until ctx is cancelled
func (w *TickWorker) StartTick(ctx context.Context, tick func(ctx context.Context) error) error {
	dur := time.Millisecond
	timer := time.NewTimer(dur)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if err := tick(ctx); err != nil {
				dur = w.errDelay()
			} else {
				dur = w.delay()
			}
			timer.Reset(dur)
		}
	}
}

func (w *TickWorker) delay() time.Duration {
	if w.Delay > 0 {
		return w.Delay
	}
	return time.Second
}

func (w *TickWorker) errDelay() time.Duration {
	if w.ErrDelay > 0 {
		return w.ErrDelay
	}
	return w.delay()
}
