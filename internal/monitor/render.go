package monitor

import (
	"strconv"
	"time"
)

// NoSlowQueries fills the first column when a poll finds nothing.
const NoSlowQueries = "Nessuna query lenta rilevata"

// StartTimeLayout formats the server's wall-clock start time. The column is
// a zoneless datetime, so the value is printed as decoded, never converted
// to the client's zone.
const StartTimeLayout = "2006-01-02 15:04:05"

// Header lists the column titles in display order.
var Header = []string{"Utente", "Ora Inizio", "Bloccante", "Tempo Attesa (s)", "Tabella"}

type Table struct {
	Header []string
	Rows   [][]string
}

// Render is the only way a result set becomes display state: one row per
// record in query order, or the single sentinel row when rs is empty.
func Render(rs ResultSet) Table {
	t := Table{
		Header: append([]string(nil), Header...),
		Rows:   make([][]string, 0, len(rs)),
	}
	if len(rs) == 0 {
		t.Rows = append(t.Rows, []string{NoSlowQueries, "", "", "", ""})
		return t
	}
	for _, rec := range rs {
		t.Rows = append(t.Rows, rec.Values())
	}
	return t
}

func (r SlowQueryRecord) Values() []string {
	blocking := ""
	if r.BlockingSession != nil {
		blocking = strconv.FormatInt(*r.BlockingSession, 10)
	}
	table := ""
	if r.Table != nil {
		table = *r.Table
	}
	start := ""
	if !r.StartTime.IsZero() {
		start = r.StartTime.Format(StartTimeLayout)
	}
	return []string{
		r.User,
		start,
		blocking,
		strconv.FormatInt(int64(r.WaitTime/time.Second), 10),
		table,
	}
}

// Empty reports whether t is the "nothing found" rendering.
func (t Table) Empty() bool {
	return len(t.Rows) == 1 && len(t.Rows[0]) > 0 && t.Rows[0][0] == NoSlowQueries
}
