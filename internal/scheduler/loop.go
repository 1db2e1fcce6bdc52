// Package scheduler provides a single-goroutine task queue with timers
// that feed back into it.
package scheduler

import (
	"context"
	"sync"
	"time"
)

// Loop runs posted jobs in order, one at a time, on the goroutine that
// calls Run.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	timers  map[*time.Timer]struct{}
	stopped bool
	wake    chan struct{}
}

func New() *Loop {
	return &Loop{
		timers: make(map[*time.Timer]struct{}),
		wake:   make(chan struct{}, 1),
	}
}

// Post queues fn. Jobs posted after the loop stopped are dropped.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return
	}
	l.queue = append(l.queue, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// AfterFunc queues fn after d. Timers still pending when the loop stops
// are cancelled.
func (l *Loop) AfterFunc(d time.Duration, fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.stopped {
		return
	}

	var t *time.Timer
	t = time.AfterFunc(d, func() {
		l.mu.Lock()
		delete(l.timers, t)
		l.mu.Unlock()
		l.Post(fn)
	})
	l.timers[t] = struct{}{}
}

// Run executes jobs until ctx is done. A loop cannot be restarted.
func (l *Loop) Run(ctx context.Context) error {
	defer l.stop()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if fn, ok := l.next(); ok {
			fn()
			continue
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Pending returns the number of queued jobs and armed timers.
func (l *Loop) Pending() (jobs, timers int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue), len(l.timers)
}

func (l *Loop) next() (func(), bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.queue) == 0 {
		return nil, false
	}
	fn := l.queue[0]
	l.queue[0] = nil
	l.queue = l.queue[1:]
	return fn, true
}

func (l *Loop) stop() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stopped = true
	l.queue = nil
	for t := range l.timers {
		t.Stop()
	}
	l.timers = map[*time.Timer]struct{}{}
}
