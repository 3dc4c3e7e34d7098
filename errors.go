package dhash

import "errors"

var (
	// ErrClosed is returned when a table is used after Close.
	ErrClosed = errors.New("dhash: table closed")

	// ErrCapacityExceeded is returned when growing the table would take the
	// base size past the configured maximum. The table is left unchanged.
	ErrCapacityExceeded = errors.New("dhash: capacity exceeded")

	// ErrInvalidConfig is returned by New for out-of-range options.
	ErrInvalidConfig = errors.New("dhash: invalid config")
)
