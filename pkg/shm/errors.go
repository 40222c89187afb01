package shm

import (
	"errors"

	internalshm "github.com/srediag/stately/internal/shm"
)

var (
	ErrNilConfig   = errors.New("nil shm config")
	ErrInvalidName = errors.New("invalid shared memory name")
	// ErrBadRegion is returned when a region exists but was not written by
	// this package, or by an incompatible layout version.
	ErrBadRegion = errors.New("region is not a stately counter")

	ErrUnsupported = internalshm.ErrUnsupported
	ErrExists      = internalshm.ErrExists
	ErrNoSpace     = internalshm.ErrNoSpace
)
