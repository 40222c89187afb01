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
	"context"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// losingSwapper never wins a compare-and-set.
type losingSwapper struct {
	attempts int
}

func (l *losingSwapper) Get() int64 { return 0 }

func (l *losingSwapper) CompareAndSet(int64, int64) bool {
	l.attempts++
	return false
}

// flakySwapper loses the first n compare-and-sets.
type flakySwapper struct {
	*AtomicCounter
	lose int
}

func (f *flakySwapper) CompareAndSet(expected, new int64) bool {
	if f.lose > 0 {
		f.lose--
		return false
	}
	return f.AtomicCounter.CompareAndSet(expected, new)
}

func TestUpdateReturnsOldAndNew(t *testing.T) {
	c := NewAtomicCounter(4)
	old, next := Update(c, func(v int64) int64 { return v * 10 })
	assert.Equal(t, int64(4), old)
	assert.Equal(t, int64(40), next)
	assert.Equal(t, int64(40), c.Get())
}

func TestUpdateRetriesLostRaces(t *testing.T) {
	f := &flakySwapper{AtomicCounter: NewAtomicCounter(1), lose: 5}
	calls := 0
	_, next := Update(f, func(v int64) int64 { calls++; return v + 1 })
	assert.Equal(t, int64(2), next)
	assert.Equal(t, 6, calls)
}

func TestUpdateWithBackoff(t *testing.T) {
	f := &flakySwapper{AtomicCounter: NewAtomicCounter(10), lose: 2}
	v, err := UpdateWithBackoff(context.Background(), f, func(v int64) int64 { return v - 3 },
		backoff.NewConstantBackOff(time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, int64(7), v)
	assert.Equal(t, int64(7), f.Get())
}

func TestUpdateWithBackoffGivesUp(t *testing.T) {
	l := &losingSwapper{}
	_, err := UpdateWithBackoff(context.Background(), l, func(v int64) int64 { return v + 1 },
		backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Millisecond), 3))
	assert.ErrorIs(t, err, ErrContended)
	assert.Equal(t, 4, l.attempts)
}

func TestUpdateWithBackoffHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := &losingSwapper{}
	_, err := UpdateWithBackoff(ctx, l, func(v int64) int64 { return v + 1 },
		backoff.NewConstantBackOff(time.Millisecond))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, l.attempts)

	ctx, cancel = context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = UpdateWithBackoff(ctx, l, func(v int64) int64 { return v + 1 },
		backoff.NewConstantBackOff(time.Millisecond))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
