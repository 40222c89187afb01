// Package concurrency provides a portable atomic 64-bit counter.
//
// AtomicCounter is the default implementation. Its cell is selected at build
// time: regular builds use sync/atomic and are safe across goroutines running
// on any number of OS threads; builds tagged stately_cooperative use a plain
// integer cell for single-threaded cooperative schedulers, where an operation
// cannot be interrupted part way through.
//
// MutexCounter and LoopCounter satisfy the same api.Counter contract.
// LoopCounter derives every operation from compare-and-set alone:
//
//	for {
//		old := c.Get()
//		if c.CompareAndSet(old, old+1) {
//			break
//		}
//	}
//
// Update and UpdateWithBackoff package that loop for callers building their
// own compound transformations. A lost CompareAndSet is not an error, only a
// signal to re-read and retry. There is no fairness among contending
// goroutines.
package concurrency
