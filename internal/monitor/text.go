package monitor

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// WriteText renders t as a plain-text table.
func WriteText(w io.Writer, t Table) {
	table := tablewriter.NewWriter(w)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader(t.Header)
	table.AppendBulk(t.Rows)
	table.Render()
}
