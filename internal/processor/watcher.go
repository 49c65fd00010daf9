package processor

import (
	"context"
	"fmt"

	"codeberg.org/snonux/tranx/internal/pipeline"
)

// watcher turns controller notifications into something a sequential
// caller can wait on. Its callbacks run on the controller loop and never
// block it.
type watcher struct {
	wake chan struct{}
	errs chan error
}

func newWatcher() *watcher {
	return &watcher{
		wake: make(chan struct{}, 1),
		errs: make(chan error, 8),
	}
}

func (w *watcher) notify(pipeline.Snapshot) {
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *watcher) fail(op string, err error) {
	select {
	case w.errs <- fmt.Errorf("%s: %w", op, err):
	default:
	}
}

// wait blocks until done holds for the current snapshot, a failure is
// reported, or ctx ends
func (w *watcher) wait(ctx context.Context, ctrl *pipeline.Controller, done func(pipeline.Snapshot) bool) error {
	for {
		if done(ctrl.Snapshot()) {
			return nil
		}
		select {
		case <-w.wake:
		case err := <-w.errs:
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
