package shm

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"
)

var (
	// ErrMisaligned is returned when a cell offset is not 8-byte aligned.
	ErrMisaligned = errors.New("shared memory cell is not 8-byte aligned")
	// ErrSizeMismatch is returned when a region does not have the expected size.
	ErrSizeMismatch = errors.New("shared memory region size mismatch")
)

// Int64At returns a pointer to the int64 stored at mem[off:off+8]. The cell
// must be 8-byte aligned so that sync/atomic operations on it are valid on
// every architecture.
func Int64At(mem []byte, off int) (*int64, error) {
	if off < 0 || off+8 > len(mem) {
		return nil, fmt.Errorf("%w: offset %d in %d bytes", ErrSizeMismatch, off, len(mem))
	}
	p := unsafe.Pointer(&mem[off])
	if uintptr(p)%8 != 0 {
		return nil, ErrMisaligned
	}
	return (*int64)(p), nil
}

// Uint32At returns a pointer to the uint32 stored at mem[off:off+4].
func Uint32At(mem []byte, off int) (*uint32, error) {
	if off < 0 || off+4 > len(mem) {
		return nil, fmt.Errorf("%w: offset %d in %d bytes", ErrSizeMismatch, off, len(mem))
	}
	p := unsafe.Pointer(&mem[off])
	if uintptr(p)%4 != 0 {
		return nil, ErrMisaligned
	}
	return (*uint32)(p), nil
}

// AtomicLoadUint32 loads a uint32 from shared memory atomically.
func AtomicLoadUint32(addr *uint32) uint32 {
	return atomic.LoadUint32(addr)
}

// AtomicStoreUint32 stores a uint32 to shared memory atomically.
func AtomicStoreUint32(addr *uint32, val uint32) {
	atomic.StoreUint32(addr, val)
}
