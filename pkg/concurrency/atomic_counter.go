/*
 * Copyright 2025 SREDiag Authors
 * Copyright 2023 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package concurrency

import "github.com/srediag/stately/api"

var _ api.Counter = (*AtomicCounter)(nil)

// AtomicCounter is a 64-bit signed integer with atomic read-modify-write
// operations. The zero value holds 0 and is ready to use. It must not be
// copied after first use.
type AtomicCounter struct {
	v cell
}

// NewAtomicCounter returns a counter holding initial.
func NewAtomicCounter(initial int64) *AtomicCounter {
	c := &AtomicCounter{}
	c.v.Store(initial)
	return c
}

// Increment atomically adds 1.
func (c *AtomicCounter) Increment() {
	c.v.Add(1)
}

// Decrement atomically subtracts 1.
func (c *AtomicCounter) Decrement() {
	c.v.Add(-1)
}

// AddAndGet atomically adds delta and returns the new value.
func (c *AtomicCounter) AddAndGet(delta int32) int64 {
	return c.v.Add(int64(delta))
}

// CompareAndSet sets the value to new if it currently equals expected and
// reports whether it did.
func (c *AtomicCounter) CompareAndSet(expected, new int64) bool {
	return c.v.CompareAndSwap(expected, new)
}

// Get returns the current value.
func (c *AtomicCounter) Get() int64 {
	return c.v.Load()
}

// Set atomically stores v.
func (c *AtomicCounter) Set(v int64) {
	c.v.Store(v)
}

func (c *AtomicCounter) String() string {
	return formatInt(c.Get())
}
