package annotation

import (
	"sync"
	"sync/atomic"
)

// Frozen holds a value that is built by one goroutine and then shared
// read-only. Mutate is only allowed before Freeze, Load only after it.
type Frozen[T any] struct {
	_      SharedImmutable
	mu     sync.Mutex
	v      T
	frozen atomic.Bool
}

// NewFrozen returns an unfrozen cell holding v.
func NewFrozen[T any](v T) *Frozen[T] {
	return &Frozen[T]{v: v}
}

// Mutate applies fn to the value. It returns ErrFrozen once the value is
// frozen.
func (f *Frozen[T]) Mutate(fn func(*T)) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.frozen.Load() {
		return ErrFrozen
	}
	fn(&f.v)
	return nil
}

// Freeze publishes the value. Every write made through Mutate happens before
// any Load that observes the freeze. Calling Freeze again is a no-op.
func (f *Frozen[T]) Freeze() {
	f.mu.Lock()
	f.frozen.Store(true)
	f.mu.Unlock()
}

// IsFrozen reports whether Freeze has been called.
func (f *Frozen[T]) IsFrozen() bool {
	return f.frozen.Load()
}

// Load returns the frozen value, or ErrNotFrozen before Freeze. Reference
// types inside T are shared, not copied; callers must not mutate through them.
func (f *Frozen[T]) Load() (T, error) {
	if !f.frozen.Load() {
		var zero T
		return zero, ErrNotFrozen
	}
	return f.v, nil
}
