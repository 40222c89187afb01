// Package api defines public API contracts for stately.
package api

import "io"

// SharedCounter is a Counter backed by a resource that outlives the process
// mapping it, such as a shared memory region.
type SharedCounter interface {
	Counter
	io.Closer
	Name() string
}
