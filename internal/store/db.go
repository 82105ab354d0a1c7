package store

import (
	"context"
	"database/sql"
)

// DBTX is satisfied by *sql.DB, *sql.Tx and *sql.Conn.
type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

// New returns Queries speaking the SQLite dialect.
func New(db DBTX) *Queries {
	return &Queries{db: db, dialect: DialectSQLite}
}

// NewWithDialect returns Queries for the given dialect.
func NewWithDialect(db DBTX, dialect Dialect) *Queries {
	return &Queries{db: db, dialect: dialect}
}

// Queries wraps all hand-written statements of the store.
type Queries struct {
	db      DBTX
	dialect Dialect
}

// insertIgnore returns the dialect's insert-if-absent verb.
func (q *Queries) insertIgnore() string {
	if q.dialect == DialectMySQL {
		return "INSERT IGNORE INTO"
	}
	return "INSERT OR IGNORE INTO"
}
