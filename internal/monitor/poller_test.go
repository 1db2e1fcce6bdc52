package monitor

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualScheduler runs queued jobs only when told to and records every
// timer instead of waiting for it.
type manualScheduler struct {
	queue  []func()
	timers []func()
	delays []time.Duration
}

func (s *manualScheduler) Post(fn func()) {
	s.queue = append(s.queue, fn)
}

func (s *manualScheduler) AfterFunc(d time.Duration, fn func()) {
	s.delays = append(s.delays, d)
	s.timers = append(s.timers, fn)
}

func (s *manualScheduler) drain() {
	for len(s.queue) > 0 {
		fn := s.queue[0]
		s.queue = s.queue[1:]
		fn()
	}
}

func (s *manualScheduler) fire(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, s.timers, "no timer armed")
	fn := s.timers[0]
	s.timers = s.timers[1:]
	s.Post(fn)
	s.drain()
}

type step struct {
	rs  ResultSet
	err error
}

type scriptedSource struct {
	steps []step
	calls int
}

func (s *scriptedSource) SlowQueries(context.Context) (ResultSet, error) {
	st := s.steps[s.calls%len(s.steps)]
	s.calls++
	return st.rs, st.err
}

type recordingDisplay struct {
	tables []Table
	errs   []error
}

func (d *recordingDisplay) ShowTable(t Table) { d.tables = append(d.tables, t) }

func (d *recordingDisplay) ShowError(err error) { d.errs = append(d.errs, err) }

func (d *recordingDisplay) current() Table {
	if len(d.tables) == 0 {
		return Table{}
	}
	return d.tables[len(d.tables)-1]
}

func TestPollerReschedulesAfterSuccessAndFailure(t *testing.T) {
	queryErr := &QueryError{Err: errors.New("connection reset by peer")}
	src := &scriptedSource{steps: []step{
		{rs: ResultSet{{User: "alice", WaitTime: 250 * time.Second}}},
		{err: queryErr},
		{rs: ResultSet{}},
	}}
	sched := &manualScheduler{}
	display := &recordingDisplay{}

	NewPoller(src, sched, display, nil, 0).Start(context.Background())
	assert.Equal(t, 0, src.calls, "first poll runs on the scheduler, not inline")

	sched.drain()
	require.Len(t, display.tables, 1)
	assert.Equal(t, "alice", display.current().Rows[0][0])
	assert.Equal(t, []time.Duration{DefaultInterval}, sched.delays)

	sched.fire(t)
	require.Len(t, display.errs, 1)
	assert.Same(t, queryErr, display.errs[0])
	assert.Len(t, display.tables, 1, "failed poll leaves the table untouched")
	assert.Equal(t, "alice", display.current().Rows[0][0])
	assert.Equal(t, []time.Duration{DefaultInterval, DefaultInterval}, sched.delays)

	sched.fire(t)
	require.Len(t, display.tables, 2)
	assert.True(t, display.current().Empty())
	assert.Len(t, display.errs, 1)
	assert.Len(t, sched.timers, 1)
	assert.Equal(t, 3, src.calls)
}

func TestPollerKeepsPollingThroughRepeatedFailures(t *testing.T) {
	src := &scriptedSource{steps: []step{{err: &QueryError{Err: errors.New("broken pipe")}}}}
	sched := &manualScheduler{}
	display := &recordingDisplay{}

	NewPoller(src, sched, display, nil, 3*time.Second).Start(context.Background())
	sched.drain()
	for i := 0; i < 4; i++ {
		sched.fire(t)
	}

	assert.Len(t, display.errs, 5)
	assert.Empty(t, display.tables)
	assert.Len(t, sched.timers, 1)
	for _, d := range sched.delays {
		assert.Equal(t, 3*time.Second, d)
	}
}

func TestPollerStopsWithContext(t *testing.T) {
	src := &scriptedSource{steps: []step{{rs: ResultSet{}}}}
	sched := &manualScheduler{}
	display := &recordingDisplay{}
	ctx, cancel := context.WithCancel(context.Background())

	NewPoller(src, sched, display, nil, time.Second).Start(ctx)
	sched.drain()
	cancel()
	sched.fire(t)

	assert.Equal(t, 1, src.calls)
	assert.Empty(t, sched.timers)
}

func TestEndToEndSingleSlowQuery(t *testing.T) {
	t1 := time.Date(2026, 10, 19, 11, 30, 0, 0, time.UTC)
	fake := newFakeDB([]driver.Value{"alice", t1, nil, int64(30000), "Orders"})
	sched := &manualScheduler{}
	display := &recordingDisplay{}

	m := New(Options{
		Connect: func(context.Context) (Source, error) {
			return &SQLSource{DB: fake.open()}, nil
		},
		Scheduler: sched,
		Display:   display,
	})
	require.NoError(t, m.Start(context.Background()))
	defer m.Close()
	sched.drain()

	require.Len(t, display.tables, 1)
	assert.Equal(t, [][]string{{"alice", "2026-10-19 11:30:00", "", "30", "Orders"}}, display.current().Rows)
	assert.Empty(t, display.errs)
}
