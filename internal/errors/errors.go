// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// ErrNoFortune is returned when the results table has no rows.
var ErrNoFortune = errors.New("results table is empty")

// StoreError wraps a failure talking to the database with the operation that hit it.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// Helper constructor
func NewStoreError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

// IsStoreError reports whether err came out of a repository call.
func IsStoreError(err error) bool {
	var se *StoreError
	return errors.As(err, &se)
}
