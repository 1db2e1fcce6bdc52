package ui

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"slowquery-monitor/internal/monitor"
)

func newTestView(t *testing.T) *View {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	w := a.NewWindow(Title)
	v := NewView(w)
	w.SetContent(v.Content())
	return v
}

func TestSetRowsReplacesTable(t *testing.T) {
	v := newTestView(t)

	v.SetRows([][]string{
		{"alice", "2026-10-19 09:00:00", "", "30", "Orders"},
		{"bob", "2026-10-19 09:01:00", "55", "250", ""},
	})
	rows, cols := v.table.Length()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 5, cols)
	assert.Equal(t, "bob", v.cell(1, 0))
	assert.Equal(t, "55", v.cell(1, 2))

	v.SetRows(monitor.Render(nil).Rows)
	rows, _ = v.table.Length()
	assert.Equal(t, 1, rows)
	assert.Equal(t, monitor.NoSlowQueries, v.cell(0, 0))
	assert.Equal(t, "", v.cell(0, 4))
	assert.Contains(t, v.status.Text, "Ultimo aggiornamento")
}

func TestCellOutOfRange(t *testing.T) {
	v := newTestView(t)
	v.SetRows([][]string{{"alice"}})

	assert.Equal(t, "", v.cell(0, 3))
	assert.Equal(t, "", v.cell(4, 0))
	assert.Equal(t, "", v.cell(-1, 0))
}

func TestStartButtonCallsOnStart(t *testing.T) {
	v := newTestView(t)
	calls := 0
	v.OnStart = func() { calls++ }

	test.Tap(v.start)

	assert.Equal(t, 1, calls)
}

func TestStartedFailureAllowsRetry(t *testing.T) {
	v := newTestView(t)

	v.Starting()
	require.True(t, v.start.Disabled())

	v.Started(errors.New("database connection failed: login failed"))
	assert.False(t, v.start.Disabled())
	require.NotNil(t, v.errDialog)

	first := v.errDialog
	v.ShowStartupError(errors.New("missing credentials"))
	assert.NotSame(t, first, v.errDialog)
}

func TestStartedSuccessKeepsButtonDisabled(t *testing.T) {
	v := newTestView(t)

	v.Starting()
	v.Started(nil)

	assert.True(t, v.start.Disabled())
	assert.Equal(t, "Monitoraggio attivo", v.status.Text)
}

func TestShowErrorKeepsTableAndReplacesDialog(t *testing.T) {
	v := newTestView(t)
	overlays := v.window.Canvas().Overlays()

	table := monitor.Render(monitor.ResultSet{{User: "alice", Table: ptr("Orders")}})
	v.ShowTable(table)
	require.Equal(t, table.Rows, v.rows)
	assert.Empty(t, overlays.List())

	v.ShowError(errors.New("query failed: connection reset"))
	assert.Equal(t, table.Rows, v.rows, "a failed poll keeps the previous rows")
	require.NotNil(t, v.errDialog)
	assert.Len(t, overlays.List(), 1)

	first := v.errDialog
	v.ShowError(errors.New("query failed: connection reset"))
	assert.NotSame(t, first, v.errDialog)
	assert.Len(t, overlays.List(), 1, "a new error replaces the dialog on screen")
	assert.Equal(t, "alice", v.cell(0, 0))
}

func ptr[T any](v T) *T { return &v }
