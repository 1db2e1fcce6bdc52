// Package monitor polls SQL Server for requests that have been waiting
// too long and hands each result set to a display.
package monitor

import "time"

// SlowQueryRecord is one row of the diagnostic query. Records carry no
// identity across polls.
type SlowQueryRecord struct {
	User            string
	StartTime       time.Time
	BlockingSession *int64
	WaitTime        time.Duration
	Table           *string
}

// ResultSet keeps the order the query returned.
type ResultSet []SlowQueryRecord
