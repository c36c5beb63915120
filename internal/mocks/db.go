package mocks

import (
	"database/sql"
	"database/sql/driver"
	"io"
	"sync"
)

// fakeDriver is a no-op database/sql driver. It lets service tests exercise
// transaction plumbing (BeginTx, Commit, Rollback) against a real *sql.DB
// without a running database. Queries return no rows and executes affect
// nothing; stores are mocked separately.
type fakeDriver struct{}

func (fakeDriver) Open(name string) (driver.Conn, error) { return &fakeConn{}, nil }

type fakeConn struct{}

func (*fakeConn) Prepare(query string) (driver.Stmt, error) { return &fakeStmt{}, nil }
func (*fakeConn) Close() error                              { return nil }
func (*fakeConn) Begin() (driver.Tx, error)                 { return &fakeTx{}, nil }

type fakeStmt struct{}

func (*fakeStmt) Close() error  { return nil }
func (*fakeStmt) NumInput() int { return -1 }
func (*fakeStmt) Exec(args []driver.Value) (driver.Result, error) {
	return driver.ResultNoRows, nil
}
func (*fakeStmt) Query(args []driver.Value) (driver.Rows, error) {
	return &fakeRows{}, nil
}

type fakeRows struct{}

func (*fakeRows) Columns() []string              { return nil }
func (*fakeRows) Close() error                   { return nil }
func (*fakeRows) Next(dest []driver.Value) error { return io.EOF }

type fakeTx struct{}

func (*fakeTx) Commit() error   { return nil }
func (*fakeTx) Rollback() error { return nil }

var registerOnce sync.Once

// NewDB returns a *sql.DB backed by the no-op driver.
func NewDB() *sql.DB {
	registerOnce.Do(func() {
		sql.Register("fakedb", fakeDriver{})
	})

	db, err := sql.Open("fakedb", "")
	if err != nil {
		// sql.Open only fails for unknown drivers; ours is registered above.
		panic(err)
	}
	return db
}
