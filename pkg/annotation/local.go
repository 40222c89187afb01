package annotation

import (
	"context"
	"strconv"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/srediag/stately/pkg/concurrency"
)

// ContextID identifies one execution context. IDs are never reused within a
// process.
type ContextID int64

func (id ContextID) String() string {
	return "ctx-" + strconv.FormatInt(int64(id), 10)
}

type contextIDKey struct{}

var nextContextID = concurrency.NewAtomicCounter(0)

// WithContextID returns a child of ctx carrying a fresh ContextID. Call it
// once at the root of each goroutine that owns Local state.
func WithContextID(ctx context.Context) context.Context {
	id := ContextID(nextContextID.AddAndGet(1))
	return context.WithValue(ctx, contextIDKey{}, id)
}

// ContextIDFrom returns the ContextID carried by ctx.
func ContextIDFrom(ctx context.Context) (ContextID, bool) {
	id, ok := ctx.Value(contextIDKey{}).(ContextID)
	return id, ok
}

// Local keeps one independent instance of T per execution context, keyed by
// the ContextID in the caller's context.
type Local[T any] struct {
	_     ThreadLocal
	init  func() T
	cells cmap.ConcurrentMap[string, *localCell[T]]
}

type localCell[T any] struct {
	v T
}

// NewLocal returns a Local whose per-context instances start as init().
// A nil init starts them at the zero value.
func NewLocal[T any](init func() T) *Local[T] {
	if init == nil {
		init = func() T {
			var zero T
			return zero
		}
	}
	return &Local[T]{
		init:  init,
		cells: cmap.New[*localCell[T]](),
	}
}

func (l *Local[T]) cell(ctx context.Context) (*localCell[T], error) {
	id, ok := ContextIDFrom(ctx)
	if !ok {
		return nil, ErrNoContextID
	}
	key := id.String()
	if c, ok := l.cells.Get(key); ok {
		return c, nil
	}
	c := &localCell[T]{v: l.init()}
	if l.cells.SetIfAbsent(key, c) {
		return c, nil
	}
	c, _ = l.cells.Get(key)
	return c, nil
}

// Get returns the calling context's instance, creating it on first use.
func (l *Local[T]) Get(ctx context.Context) (T, error) {
	c, err := l.cell(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	return c.v, nil
}

// Set replaces the calling context's instance.
func (l *Local[T]) Set(ctx context.Context, v T) error {
	c, err := l.cell(ctx)
	if err != nil {
		return err
	}
	c.v = v
	return nil
}

// Release drops the calling context's instance. Contexts should release
// before their goroutine exits; the table otherwise keeps the instance.
func (l *Local[T]) Release(ctx context.Context) {
	if id, ok := ContextIDFrom(ctx); ok {
		l.cells.Remove(id.String())
	}
}

// Len returns the number of live instances.
func (l *Local[T]) Len() int {
	return l.cells.Count()
}
