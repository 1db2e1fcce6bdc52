package monitor

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestRenderEmptyShowsSentinel(t *testing.T) {
	for _, rs := range []ResultSet{nil, {}} {
		table := Render(rs)

		assert.Equal(t, Header, table.Header)
		require.Len(t, table.Rows, 1)
		assert.Equal(t, []string{NoSlowQueries, "", "", "", ""}, table.Rows[0])
		assert.True(t, table.Empty())
	}
}

func TestRenderKeepsOrderAndConvertsWaitTime(t *testing.T) {
	t1 := time.Date(2026, 10, 19, 9, 15, 4, 0, time.UTC)
	rs := ResultSet{
		{User: "zed", StartTime: t1, WaitTime: 301999 * time.Millisecond, Table: ptr("Stock")},
		{User: "alice", StartTime: t1.Add(time.Minute), BlockingSession: ptr(int64(62)), WaitTime: 240001 * time.Millisecond},
		{User: "mike", StartTime: t1, WaitTime: 30 * time.Second, Table: ptr("Orders")},
	}

	table := Render(rs)

	require.Len(t, table.Rows, 3)
	assert.False(t, table.Empty())
	assert.Equal(t, []string{"zed", "2026-10-19 09:15:04", "", "301", "Stock"}, table.Rows[0])
	assert.Equal(t, []string{"alice", "2026-10-19 09:16:04", "62", "240", ""}, table.Rows[1])
	assert.Equal(t, []string{"mike", "2026-10-19 09:15:04", "", "30", "Orders"}, table.Rows[2])
}

func TestRenderDoesNotShareHeader(t *testing.T) {
	table := Render(nil)
	table.Header[0] = "changed"

	assert.Equal(t, "Utente", Header[0])
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	WriteText(&buf, Render(ResultSet{{User: "alice", WaitTime: 30 * time.Second, Table: ptr("Orders")}}))

	out := buf.String()
	assert.Contains(t, out, "Tempo Attesa (s)")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "Orders")
}

func TestRenderKeepsServerWallClock(t *testing.T) {
	saved := time.Local
	time.Local = time.FixedZone("CEST", 2*60*60)
	t.Cleanup(func() { time.Local = saved })

	rec := SlowQueryRecord{User: "alice", StartTime: time.Date(2026, 10, 19, 11, 30, 0, 0, time.UTC)}

	assert.Equal(t, "2026-10-19 11:30:00", rec.Values()[1])
}
