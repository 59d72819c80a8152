package dao

import "errors"

// Common, reusable store errors.  Sentinel variables let callers detect
// conditions via errors.Is instead of brittle string comparisons; the
// supervisor relies on ErrNotFound to tell an empty slot from a store
// failure.

var (
	// ErrNotFound is returned when the requested entry does not exist in the
	// underlying storage.
	ErrNotFound = errors.New("dao: not found")

	// ErrInvalidID indicates that the supplied slot/key is empty or otherwise
	// invalid.
	ErrInvalidID = errors.New("dao: invalid id")

	// ErrNilEntity is returned when the caller attempts to persist a nil
	// pointer.
	ErrNilEntity = errors.New("dao: nil entity")
)
