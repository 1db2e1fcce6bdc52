package monitor

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"sync"
)

// fakeDB answers every query with a scripted result through database/sql.
type fakeDB struct {
	mu      sync.Mutex
	columns []string
	rows    [][]driver.Value
	err     error
	rowErr  error
	queries []string
}

func newFakeDB(rows ...[]driver.Value) *fakeDB {
	return &fakeDB{
		columns: []string{"Utente", "OraInizio", "Bloccante", "TempoAttesaMs", "TabellaInterrogata"},
		rows:    rows,
	}
}

func (f *fakeDB) open() *sql.DB {
	return sql.OpenDB(fakeConnector{db: f})
}

func (f *fakeDB) lastQuery() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.queries) == 0 {
		return ""
	}
	return f.queries[len(f.queries)-1]
}

type fakeConnector struct {
	db *fakeDB
}

func (c fakeConnector) Connect(context.Context) (driver.Conn, error) {
	return &fakeConn{db: c.db}, nil
}

func (c fakeConnector) Driver() driver.Driver {
	return fakeDriver{}
}

type fakeDriver struct{}

func (fakeDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("fake driver is connector-only")
}

type fakeConn struct {
	db *fakeDB
}

func (c *fakeConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *fakeConn) Close() error { return nil }

func (c *fakeConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *fakeConn) QueryContext(_ context.Context, query string, _ []driver.NamedValue) (driver.Rows, error) {
	c.db.mu.Lock()
	defer c.db.mu.Unlock()
	c.db.queries = append(c.db.queries, query)
	if c.db.err != nil {
		return nil, c.db.err
	}
	return &fakeRows{columns: c.db.columns, rows: c.db.rows, err: c.db.rowErr}, nil
}

type fakeRows struct {
	columns []string
	rows    [][]driver.Value
	pos     int
	err     error
}

func (r *fakeRows) Columns() []string { return r.columns }

func (r *fakeRows) Close() error { return nil }

func (r *fakeRows) Next(dest []driver.Value) error {
	if r.pos >= len(r.rows) {
		if r.err != nil {
			return r.err
		}
		return io.EOF
	}
	copy(dest, r.rows[r.pos])
	r.pos++
	return nil
}
