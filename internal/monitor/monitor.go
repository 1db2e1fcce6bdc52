package monitor

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"slowquery-monitor/internal/logger"
)

var ErrAlreadyStarted = errors.New("monitoring already started")

type State int

const (
	StateIdle State = iota
	StatePolling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	default:
		return "unknown"
	}
}

// ConnectFunc opens the session the poll loop will use for its lifetime.
type ConnectFunc func(ctx context.Context) (Source, error)

type Options struct {
	Connect   ConnectFunc
	Scheduler Scheduler
	Display   Display
	Logger    logger.LoggerService
	Interval  time.Duration
}

// Monitor moves from idle to polling exactly once. A failed connection
// leaves it idle so Start can be tried again.
type Monitor struct {
	opts Options

	mu         sync.Mutex
	state      State
	connecting bool
	source     Source
}

func New(opts Options) *Monitor {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	return &Monitor{opts: opts}
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Start connects and begins polling. The lock is not held while Connect
// runs, so State stays readable during a slow connection attempt; a second
// Start in that window gets ErrAlreadyStarted.
func (m *Monitor) Start(ctx context.Context) error {
	m.mu.Lock()
	if m.state == StatePolling || m.connecting {
		m.mu.Unlock()
		return ErrAlreadyStarted
	}
	m.connecting = true
	m.mu.Unlock()

	source, err := m.opts.Connect(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.connecting = false
	if err != nil {
		m.opts.Logger.Error("connect", err)
		return err
	}
	m.opts.Logger.Success("connected, monitoring started")

	m.source = source
	m.state = StatePolling

	NewPoller(source, m.opts.Scheduler, m.opts.Display, m.opts.Logger, m.opts.Interval).Start(ctx)
	return nil
}

// Close releases the connection. The desktop app never calls it; the
// daemon and CLI do on shutdown.
func (m *Monitor) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.source.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
