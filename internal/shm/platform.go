// Package shm contains platform-specific helpers for shared memory counters.
package shm

import "errors"

// DefaultDir is where regions are created when MapOptions.Dir is empty.
const DefaultDir = "/dev/shm"

var (
	// ErrUnsupported is returned on platforms without a shared memory backend.
	ErrUnsupported = errors.New("shared memory is not supported on this platform")
	// ErrNoSpace is returned when the backing filesystem cannot hold the region.
	ErrNoSpace = errors.New("not enough space left for shared memory")
	// ErrExists is returned when creating a region whose name is taken.
	ErrExists = errors.New("shared memory region already exists")
)

// MappedRegion represents a memory-mapped shared region.
type MappedRegion struct {
	Addr []byte
	Path string
	// Created is true when this mapping created the backing file.
	Created bool
}

// MapOptions defines options for mapping shared memory.
type MapOptions struct {
	Name   string
	Dir    string
	Size   int
	Create bool
}

func (o MapOptions) dir() string {
	if o.Dir == "" {
		return DefaultDir
	}
	return o.Dir
}

// Function implementations are provided in platform-specific files (platform_linux.go, platform_other.go).
