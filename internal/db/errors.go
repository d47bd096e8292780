package db

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates that no recipe exists with the requested id.
	ErrNotFound = errors.New("recipe not found")

	// ErrStorage indicates an underlying SQLite failure. The driver error is
	// kept in the chain next to it.
	ErrStorage = errors.New("storage failure")
)

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
