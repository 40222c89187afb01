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

import (
	"strconv"
	"sync"

	"github.com/srediag/stately/api"
)

var _ api.Counter = (*MutexCounter)(nil)

// MutexCounter guards a plain int64 with a mutex. It is for targets where a
// native 64-bit atomic is unavailable or undesirable.
type MutexCounter struct {
	mu sync.Mutex
	v  int64
}

// NewMutexCounter returns a counter holding initial.
func NewMutexCounter(initial int64) *MutexCounter {
	return &MutexCounter{v: initial}
}

func (c *MutexCounter) Increment() {
	c.mu.Lock()
	c.v++
	c.mu.Unlock()
}

func (c *MutexCounter) Decrement() {
	c.mu.Lock()
	c.v--
	c.mu.Unlock()
}

func (c *MutexCounter) AddAndGet(delta int32) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.v += int64(delta)
	return c.v
}

func (c *MutexCounter) CompareAndSet(expected, new int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.v != expected {
		return false
	}
	c.v = new
	return true
}

func (c *MutexCounter) Get() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.v
}

func (c *MutexCounter) Set(v int64) {
	c.mu.Lock()
	c.v = v
	c.mu.Unlock()
}

func (c *MutexCounter) String() string {
	return formatInt(c.Get())
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}
