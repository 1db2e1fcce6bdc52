package monitor

import (
	"sync"
	"time"
)

type SnapshotState struct {
	Table       Table
	UpdatedAt   time.Time
	LastError   string
	LastErrorAt time.Time
	Polls       int
	Failures    int
}

// Snapshot is a Display that remembers the latest poll. It is safe to
// read while the poll loop writes to it.
type Snapshot struct {
	mu    sync.RWMutex
	state SnapshotState
	now   func() time.Time
}

func NewSnapshot() *Snapshot {
	return &Snapshot{now: time.Now}
}

func (s *Snapshot) ShowTable(t Table) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Table = t
	s.state.UpdatedAt = s.now()
	s.state.Polls++
}

// ShowError keeps the previous table in place.
func (s *Snapshot) ShowError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.LastError = err.Error()
	s.state.LastErrorAt = s.now()
	s.state.Polls++
	s.state.Failures++
}

func (s *Snapshot) State() SnapshotState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.state
	out.Table.Header = append([]string(nil), s.state.Table.Header...)
	out.Table.Rows = make([][]string, 0, len(s.state.Table.Rows))
	for _, row := range s.state.Table.Rows {
		out.Table.Rows = append(out.Table.Rows, append([]string(nil), row...))
	}
	return out
}

type multiDisplay []Display

func (m multiDisplay) ShowTable(t Table) {
	for _, d := range m {
		d.ShowTable(t)
	}
}

func (m multiDisplay) ShowError(err error) {
	for _, d := range m {
		d.ShowError(err)
	}
}

// Tee fans every poll outcome out to all displays in order.
func Tee(displays ...Display) Display {
	return multiDisplay(displays)
}
