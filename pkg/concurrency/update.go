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

	"github.com/cenkalti/backoff/v4"

	"github.com/srediag/stately/api"
)

// Update applies fn to the current value of s with a compare-and-set retry
// loop and returns the value it replaced and the value it stored. fn may run
// more than once and must not have side effects. The loop is unbounded: under
// sustained contention a caller can be starved.
func Update(s api.Swapper, fn func(int64) int64) (old, new int64) {
	for {
		old = s.Get()
		new = fn(old)
		if s.CompareAndSet(old, new) {
			return old, new
		}
	}
}

// UpdateWithBackoff is Update with b pacing the retries after each lost
// compare-and-set. It returns the stored value, ctx.Err() once ctx is done, or
// ErrContended when b gives up.
func UpdateWithBackoff(ctx context.Context, s api.Swapper, fn func(int64) int64, b backoff.BackOff) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return backoff.RetryWithData(func() (int64, error) {
		old := s.Get()
		next := fn(old)
		if s.CompareAndSet(old, next) {
			return next, nil
		}
		return 0, ErrContended
	}, backoff.WithContext(b, ctx))
}
