package annotation

import "errors"

var (
	// ErrFrozen is returned when mutating a Frozen value after Freeze.
	ErrFrozen = errors.New("value is frozen and shared")
	// ErrNotFrozen is returned when reading a Frozen value before Freeze.
	ErrNotFrozen = errors.New("value is not frozen yet")
	// ErrNoContextID is returned by Local when the context carries no identity.
	ErrNoContextID = errors.New("context carries no execution context id")
)
