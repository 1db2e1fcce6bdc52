package main

import (
	"fmt"
	"strings"

	"slowquery-monitor/internal/logger"
	"slowquery-monitor/internal/monitor"
)

// logDisplay writes every detected slow request to the log. Poll errors
// are already logged by the poller.
type logDisplay struct {
	log logger.LoggerService
}

func (d *logDisplay) ShowTable(t monitor.Table) {
	if t.Empty() {
		d.log.Debug(monitor.NoSlowQueries)
		return
	}
	for _, row := range t.Rows {
		d.log.Warn("slow query: " + formatRow(t.Header, row))
	}
}

func (d *logDisplay) ShowError(error) {}

func formatRow(header, row []string) string {
	parts := make([]string, 0, len(row))
	for i, v := range row {
		name := fmt.Sprintf("col%d", i)
		if i < len(header) {
			name = header[i]
		}
		if v == "" {
			v = "-"
		}
		parts = append(parts, fmt.Sprintf("%s=%q", name, v))
	}
	return strings.Join(parts, " ")
}
