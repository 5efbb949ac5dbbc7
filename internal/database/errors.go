package database

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable is returned when the record table cannot be opened
// or queried.
var ErrStoreUnavailable = errors.New("record store unavailable")

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}
