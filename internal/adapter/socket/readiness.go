package socket

import (
	"context"
	"sync"
)

// readiness is a single-assignment outcome: the first call to settle decides
// whether the connection is usable, later calls are ignored.
type readiness struct {
	once sync.Once
	done chan struct{}
	err  error
}

func newReadiness() *readiness {
	return &readiness{done: make(chan struct{})}
}

// settle records err (nil for ready) if no outcome was recorded yet and
// reports whether this call decided the outcome.
func (r *readiness) settle(err error) bool {
	decided := false
	r.once.Do(func() {
		r.err = err
		close(r.done)
		decided = true
	})
	return decided
}

// wait blocks until an outcome is recorded or ctx ends.
func (r *readiness) wait(ctx context.Context) error {
	select {
	case <-r.done:
		return r.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
