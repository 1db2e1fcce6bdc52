package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func runLoop(t *testing.T, l *Loop) (cancel func(), done <-chan error) {
	t.Helper()
	ctx, cancelFn := context.WithCancel(context.Background())
	ch := make(chan error, 1)
	go func() { ch <- l.Run(ctx) }()
	t.Cleanup(cancelFn)
	return cancelFn, ch
}

func TestPostRunsInOrder(t *testing.T) {
	l := New()
	var (
		mu  sync.Mutex
		got []int
		wg  sync.WaitGroup
	)
	wg.Add(5)
	for i := 0; i < 5; i++ {
		i := i
		l.Post(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			wg.Done()
		})
	}

	runLoop(t, l)
	wg.Wait()

	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestJobsNeverOverlap(t *testing.T) {
	l := New()
	var running, maxRunning int32
	var wg sync.WaitGroup
	wg.Add(20)

	runLoop(t, l)
	for i := 0; i < 20; i++ {
		l.AfterFunc(time.Millisecond, func() {
			n := atomic.AddInt32(&running, 1)
			if n > atomic.LoadInt32(&maxRunning) {
				atomic.StoreInt32(&maxRunning, n)
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&running, -1)
			wg.Done()
		})
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&maxRunning))
}

func TestAfterFuncSelfRearming(t *testing.T) {
	l := New()
	var count int32
	done := make(chan struct{})

	var tick func()
	tick = func() {
		if atomic.AddInt32(&count, 1) == 3 {
			close(done)
			return
		}
		l.AfterFunc(5*time.Millisecond, tick)
	}

	start := time.Now()
	l.Post(tick)
	runLoop(t, l)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timer chain did not complete")
	}
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}

func TestStopCancelsTimersAndRejectsWork(t *testing.T) {
	l := New()
	cancel, done := runLoop(t, l)

	var fired int32
	l.AfterFunc(time.Hour, func() { atomic.StoreInt32(&fired, 1) })
	_, timers := l.Pending()
	assert.Equal(t, 1, timers)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}

	jobs, timers := l.Pending()
	assert.Zero(t, jobs)
	assert.Zero(t, timers)
	l.Post(func() {})
	jobs, _ = l.Pending()
	assert.Zero(t, jobs)

	l.AfterFunc(0, func() { atomic.StoreInt32(&fired, 1) })
	time.Sleep(10 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fired))
}
