package db

import (
	"context"
	"database/sql"
)

// Handler is the request-scoped database handle passed into store methods.
// Both *DB and *Tx satisfy it.
type Handler interface {
	Rebind(string) string

	SelectContext(context.Context, interface{}, string, ...interface{}) error
	GetContext(context.Context, interface{}, string, ...interface{}) error
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
}
