// Package store persists categories in a single SQLite table behind a
// narrow CRUD contract. Failures are returned as classified *Error values
// so callers can tell store faults apart from programming errors instead of
// catching everything at the boundary.
package store

import (
	"errors"
	"fmt"
)

// Category is one row of the categorias table
type Category struct {
	ID          int64
	Description string
}

// Error classifies a failure of a CRUD call
type Error struct {
	Op  string // "create", "list", "update", "delete"
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err originated in a store CRUD call
func IsStoreError(err error) bool {
	var se *Error
	return errors.As(err, &se)
}

func storeErr(op string, err error) error {
	return &Error{Op: op, Err: err}
}
