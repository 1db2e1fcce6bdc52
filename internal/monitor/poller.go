package monitor

import (
	"context"
	"fmt"
	"time"

	"slowquery-monitor/internal/logger"
)

// DefaultInterval is the delay between the end of one poll and the start
// of the next.
const DefaultInterval = 10 * time.Second

// Scheduler runs jobs one at a time. AfterFunc queues fn once d elapses.
type Scheduler interface {
	Post(fn func())
	AfterFunc(d time.Duration, fn func())
}

// Display receives the outcome of every poll.
type Display interface {
	ShowTable(t Table)
	ShowError(err error)
}

type Poller struct {
	source   Source
	sched    Scheduler
	display  Display
	log      logger.LoggerService
	interval time.Duration
}

func NewPoller(source Source, sched Scheduler, display Display, log logger.LoggerService, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Poller{
		source:   source,
		sched:    sched,
		display:  display,
		log:      log,
		interval: interval,
	}
}

// Start queues the first poll. Every poll then arms the next one itself,
// whether it succeeded or not.
func (p *Poller) Start(ctx context.Context) {
	p.sched.Post(func() { p.poll(ctx) })
}

func (p *Poller) poll(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	defer p.sched.AfterFunc(p.interval, func() { p.poll(ctx) })

	t, err := Poll(ctx, p.source)
	if err != nil {
		p.log.Error("slow query poll", err)
		p.display.ShowError(err)
		return
	}
	if t.Empty() {
		p.log.Debug("no slow queries")
	} else {
		p.log.Info(fmt.Sprintf("%d slow queries detected", len(t.Rows)))
	}
	p.display.ShowTable(t)
}

// Poll runs the diagnostic query once and renders the result.
func Poll(ctx context.Context, source Source) (Table, error) {
	rs, err := source.SlowQueries(ctx)
	if err != nil {
		return Table{}, err
	}
	return Render(rs), nil
}
