package db

import (
	"database/sql"
	"errors"
)

// ErrRecordNotFound is returned when a query matches no rows.
var ErrRecordNotFound = errors.New("record not found")

// WrapError maps driver-specific errors onto the package's sentinel errors.
func WrapError(err error) error {
	if err != nil && errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}
	return err
}
