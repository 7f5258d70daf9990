package mocks

import (
	"database/sql"
	"database/sql/driver"
	"errors"
)

// noopDriver is a database/sql driver whose connections accept transactions
// and acknowledge commits and rollbacks without touching any real database.
// It exists so services that run store callbacks through a *sql.DB
// transaction boundary can be exercised against mock stores.
type noopDriver struct{}

func (noopDriver) Open(name string) (driver.Conn, error) {
	return &noopConn{}, nil
}

type noopConn struct{}

func (c *noopConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("noopdb: prepared statements are not supported")
}

func (c *noopConn) Close() error { return nil }

func (c *noopConn) Begin() (driver.Tx, error) {
	return noopTx{}, nil
}

type noopTx struct{}

func (noopTx) Commit() error   { return nil }
func (noopTx) Rollback() error { return nil }

func init() {
	sql.Register("noopdb", noopDriver{})
}

// NewNoopDB returns a real *sql.DB backed by the no-op driver. BeginTx,
// Commit and Rollback all succeed; any query through it fails. Pass it to
// services whose persistence is mocked at the store layer but whose
// transaction plumbing still runs.
func NewNoopDB() *sql.DB {
	db, err := sql.Open("noopdb", "")
	if err != nil {
		// sql.Open with a registered driver only fails on a bad DSN,
		// which the no-op driver does not have.
		panic(err)
	}
	return db
}
