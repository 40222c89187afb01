// Package api defines public API contracts for stately.
package api

// Swapper is the compare-and-set primitive. Every Counter operation can be
// expressed as a retry loop over Get and CompareAndSet.
type Swapper interface {
	Get() int64
	CompareAndSet(expected, new int64) bool
}

// Counter defines a 64-bit signed integer cell with atomic read-modify-write
// operations. Implementations are safe for use by any number of goroutines
// and never block.
//
// CompareAndSet is the only operation that may report failure; every other
// operation always succeeds. Overflow wraps in two's complement.
type Counter interface {
	Swapper
	// Increment adds 1 to the stored value.
	Increment()
	// Decrement subtracts 1 from the stored value.
	Decrement()
	// AddAndGet adds delta and returns the value after the addition.
	AddAndGet(delta int32) int64
	// Set stores v unconditionally.
	Set(v int64)
}
