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

//go:build stately_cooperative

package concurrency

// Counter cells for cooperative runtimes. The cell is not actually atomic; it
// assumes an operation cannot be interrupted by another task or interrupt
// running at the same time.

// Implementation names the cell selected for this build.
const Implementation = "cooperative"

type cell struct {
	v int64
}

func (x *cell) Add(delta int64) int64 { x.v += delta; return x.v }
func (x *cell) Load() int64           { return x.v }
func (x *cell) Store(val int64)       { x.v = val }
func (x *cell) CompareAndSwap(old, new int64) (swapped bool) {
	if x.v != old {
		return false
	}
	x.v = new
	return true
}
