package db

import (
	"context"

	"slowquery-monitor/internal/config"
	"slowquery-monitor/internal/monitor"
)

// SourceConnector opens the single monitoring session on demand and wraps
// it as the poll loop's query source.
func SourceConnector(cfg config.DBConfig) monitor.ConnectFunc {
	return func(ctx context.Context) (monitor.Source, error) {
		conn, err := Connect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &monitor.SQLSource{DB: conn, Timeout: cfg.QueryTimeout}, nil
	}
}
