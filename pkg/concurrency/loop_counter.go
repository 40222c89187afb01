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

var _ api.Counter = (*LoopCounter)(nil)

// LoopCounter implements every api.Counter operation as a compare-and-set
// retry loop over an underlying Swapper. Only Get and CompareAndSet reach the
// Swapper directly.
type LoopCounter struct {
	s api.Swapper
}

// NewLoopCounter returns a LoopCounter over s.
func NewLoopCounter(s api.Swapper) *LoopCounter {
	return &LoopCounter{s: s}
}

func (c *LoopCounter) Increment() {
	Update(c.s, func(v int64) int64 { return v + 1 })
}

func (c *LoopCounter) Decrement() {
	Update(c.s, func(v int64) int64 { return v - 1 })
}

func (c *LoopCounter) AddAndGet(delta int32) int64 {
	_, v := Update(c.s, func(v int64) int64 { return v + int64(delta) })
	return v
}

func (c *LoopCounter) Set(v int64) {
	Update(c.s, func(int64) int64 { return v })
}

func (c *LoopCounter) CompareAndSet(expected, new int64) bool {
	return c.s.CompareAndSet(expected, new)
}

func (c *LoopCounter) Get() int64 {
	return c.s.Get()
}
