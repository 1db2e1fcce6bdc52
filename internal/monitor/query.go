package monitor

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
)

// WaitThreshold is the accumulated wait above which a request is reported.
const WaitThreshold = 4 * time.Minute

var slowQuerySQL = fmt.Sprintf(`
SELECT
	s.login_name AS Utente,
	r.start_time AS OraInizio,
	r.blocking_session_id AS Bloccante,
	r.wait_time AS TempoAttesaMs,
	OBJECT_NAME(st.objectid) AS TabellaInterrogata
FROM sys.dm_exec_requests r
JOIN sys.dm_exec_sessions s ON r.session_id = s.session_id
CROSS APPLY sys.dm_exec_sql_text(r.sql_handle) st
WHERE r.wait_time > %d`, WaitThreshold.Milliseconds())

// QueryError is a driver failure while running or reading the diagnostic
// query.
type QueryError struct {
	Err error
}

func (e *QueryError) Error() string {
	return "slow query poll failed: " + e.Err.Error()
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// Source produces one fresh result set per call.
type Source interface {
	SlowQueries(ctx context.Context) (ResultSet, error)
}

type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// SQLSource runs the diagnostic query over a live connection. A zero
// Timeout means the query may run for as long as the server takes.
type SQLSource struct {
	DB      Querier
	Timeout time.Duration
}

func (s *SQLSource) SlowQueries(ctx context.Context) (ResultSet, error) {
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	rows, err := s.DB.QueryContext(ctx, slowQuerySQL)
	if err != nil {
		return nil, &QueryError{Err: err}
	}
	defer rows.Close()

	out := make(ResultSet, 0)
	for rows.Next() {
		var (
			rec      SlowQueryRecord
			blocking sql.NullInt64
			waitMs   int64
			table    sql.NullString
		)
		if err := rows.Scan(&rec.User, &rec.StartTime, &blocking, &waitMs, &table); err != nil {
			return nil, &QueryError{Err: errors.Wrap(err, "scan slow query row")}
		}
		if blocking.Valid {
			v := blocking.Int64
			rec.BlockingSession = &v
		}
		if table.Valid {
			v := table.String
			rec.Table = &v
		}
		rec.WaitTime = time.Duration(waitMs) * time.Millisecond
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Err: errors.Wrap(err, "read slow query rows")}
	}

	return out, nil
}

// Close releases the underlying connection when it can be closed.
func (s *SQLSource) Close() error {
	if c, ok := s.DB.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
