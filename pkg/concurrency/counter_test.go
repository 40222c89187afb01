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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/srediag/stately/api"
	"github.com/srediag/stately/internal/countertest"
)

var factories = []struct {
	name string
	new  countertest.Factory
}{
	{"atomic", func(_ *testing.T, v int64) api.Counter { return NewAtomicCounter(v) }},
	{"mutex", func(_ *testing.T, v int64) api.Counter { return NewMutexCounter(v) }},
	{"loop/atomic", func(_ *testing.T, v int64) api.Counter { return NewLoopCounter(NewAtomicCounter(v)) }},
	{"loop/mutex", func(_ *testing.T, v int64) api.Counter { return NewLoopCounter(NewMutexCounter(v)) }},
}

func TestCounterContract(t *testing.T) {
	for _, f := range factories {
		t.Run(f.name, func(t *testing.T) {
			countertest.Run(t, f.new)
		})
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "-12", NewAtomicCounter(-12).String())
	assert.Equal(t, "9223372036854775807", NewMutexCounter(math.MaxInt64).String())
}

func TestZeroValueUsable(t *testing.T) {
	var a AtomicCounter
	a.Increment()
	assert.Equal(t, int64(1), a.Get())

	var m MutexCounter
	m.Decrement()
	assert.Equal(t, int64(-1), m.Get())
}

func TestLoopCounterOnlyUsesSwapper(t *testing.T) {
	f := &flakySwapper{AtomicCounter: NewAtomicCounter(0), lose: 3}
	c := NewLoopCounter(f)
	c.Increment()
	assert.Equal(t, int64(1), c.Get())
	assert.Equal(t, int64(11), c.AddAndGet(10))
	c.Set(-4)
	c.Decrement()
	assert.Equal(t, int64(-5), f.Get())
}
