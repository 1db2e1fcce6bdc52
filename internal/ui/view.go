// Package ui is the desktop window: one table of slow queries and a
// button that starts monitoring.
package ui

import (
	"context"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/pkg/errors"

	"slowquery-monitor/internal/monitor"
)

const (
	Title           = "Monitoraggio Query Lente"
	credentialsHint = "Le credenziali sono caricate dal file .env"
	startLabel      = "Avvia Monitoraggio"
)

var columnWidths = []float32{160, 170, 90, 140, 220}

// Starter is the transition the start button triggers.
type Starter interface {
	Start(ctx context.Context) error
}

type View struct {
	window fyne.Window
	table  *widget.Table
	start  *widget.Button
	status *widget.Label

	rows      [][]string
	errDialog dialog.Dialog

	// OnStart runs on the UI thread when the start button is tapped.
	OnStart func()
}

func NewView(w fyne.Window) *View {
	v := &View{window: w, status: widget.NewLabel("")}

	v.table = widget.NewTableWithHeaders(
		func() (int, int) { return len(v.rows), len(monitor.Header) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.TableCellID, o fyne.CanvasObject) {
			o.(*widget.Label).SetText(v.cell(id.Row, id.Col))
		},
	)
	v.table.ShowHeaderColumn = false
	v.table.CreateHeader = func() fyne.CanvasObject { return widget.NewLabel("") }
	v.table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Row == -1 && id.Col >= 0 && id.Col < len(monitor.Header) {
			o.(*widget.Label).SetText(monitor.Header[id.Col])
		}
	}
	for i, width := range columnWidths {
		v.table.SetColumnWidth(i, width)
	}

	v.start = widget.NewButton(startLabel, func() {
		if v.OnStart != nil {
			v.OnStart()
		}
	})

	return v
}

func (v *View) Content() fyne.CanvasObject {
	top := widget.NewLabel(credentialsHint)
	bottom := container.NewVBox(v.start, v.status)
	return container.NewBorder(top, bottom, nil, nil, v.table)
}

// Attach makes the start button connect through s. The connection attempt
// runs off the UI thread; its outcome comes back through fyne.Do.
func (v *View) Attach(ctx context.Context, s Starter) {
	v.OnStart = func() {
		v.Starting()
		go func() {
			err := s.Start(ctx)
			fyne.Do(func() { v.Started(err) })
		}()
	}
}

func (v *View) Starting() {
	v.start.Disable()
	v.status.SetText("Connessione in corso...")
}

// Started leaves the button disabled on success: monitoring cannot be
// stopped or started twice.
func (v *View) Started(err error) {
	if err != nil {
		v.start.Enable()
		v.status.SetText("")
		v.showError("Errore durante la connessione", err)
		return
	}
	v.status.SetText("Monitoraggio attivo")
	dialog.ShowInformation("Successo", "Connessione al database riuscita. Monitoraggio avviato!", v.window)
}

// ShowTable is safe to call from the poll goroutine.
func (v *View) ShowTable(t monitor.Table) {
	fyne.Do(func() { v.SetRows(t.Rows) })
}

// ShowError is safe to call from the poll goroutine.
func (v *View) ShowError(err error) {
	fyne.Do(func() { v.showError("Errore durante il monitoraggio", err) })
}

// SetRows replaces the whole table. It must run on the UI thread.
func (v *View) SetRows(rows [][]string) {
	v.rows = rows
	v.table.Refresh()
	v.status.SetText("Ultimo aggiornamento: " + time.Now().Format("15:04:05"))
}

// ShowStartupError reports a problem found before any connection attempt.
func (v *View) ShowStartupError(err error) {
	v.showError("Errore di configurazione", err)
}

// showError replaces any error dialog still on screen so failures every
// poll do not pile up.
func (v *View) showError(prefix string, err error) {
	if v.errDialog != nil {
		v.errDialog.Hide()
	}
	v.errDialog = dialog.NewError(errors.WithMessage(err, prefix), v.window)
	v.errDialog.Show()
}

func (v *View) cell(row, col int) string {
	if row < 0 || row >= len(v.rows) || col < 0 || col >= len(v.rows[row]) {
		return ""
	}
	return v.rows[row][col]
}
