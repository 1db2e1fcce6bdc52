package dto

import "time"

type SlowQueriesResponse struct {
	API         string     `json:"api"`
	Status      string     `json:"status"`
	Columns     []string   `json:"columns"`
	RowCount    int        `json:"rowCount"`
	Rows        [][]string `json:"rows"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
	LastError   string     `json:"lastError,omitempty"`
	LastErrorAt *time.Time `json:"lastErrorAt,omitempty"`
}

type HealthResponse struct {
	Status     string     `json:"status"`
	Polls      int        `json:"polls"`
	Failures   int        `json:"failures"`
	LastPollAt *time.Time `json:"lastPollAt,omitempty"`
}
