package db

import (
	"database/sql/driver"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"modernc.org/sqlite"
)

// SQLite's built-in lower() only folds ASCII. Every sqlite connection gets
// this replacement so LOWER(col) LIKE LOWER(?) folds accented letters the
// way MySQL and Postgres do.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("lower", 1, lower)
}

func lower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	// cases.Caser is stateful, so each call gets its own.
	switch v := args[0].(type) {
	case string:
		return cases.Lower(language.Und).String(v), nil
	case []byte:
		return cases.Lower(language.Und).Bytes(v), nil
	default:
		return v, nil
	}
}
