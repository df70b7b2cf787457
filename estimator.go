/*

  Copyright 2012 Dmitry Kolesnikov, All Rights Reserved

  Licensed under the Apache License, Version 2.0 (the "License");
  you may not use this file except in compliance with the License.
  You may obtain a copy of the License at

      http://www.apache.org/licenses/LICENSE-2.0

  Unless required by applicable law or agreed to in writing, software
  distributed under the License is distributed on an "AS IS" BASIS,
  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
  See the License for the specific language governing permissions and
  limitations under the License.

*/

package gdid

import (
	"math"
	"time"
)

// tuning constants of block allocation
const (
	// remaining fraction of block that triggers prefetch of the next one
	lwmRatio = 0.25

	// blocks of this size or smaller are never prefetched
	lwmMinBlockSize = 7

	// smallest block requested by adaptive sizing
	minBlockSize = 2

	// desired interval between calls to authority
	callIntervalTarget = 1 * time.Second

	// ids per second expected to be served within single target interval
	targetIDsPerSec = 16

	// inter-allocation intervals are floored at this slice
	minTimeSlice = 10 * time.Millisecond

	// number of intervals in the moving average
	estimatorWindow = 3
)

/*

estimator measures intervals between block allocations of a sequence and
derives the size of the next block so that the authority is contacted
roughly once per callIntervalTarget regardless of load.
*/
type estimator struct {
	last   time.Time
	window [estimatorWindow]time.Duration
}

func newEstimator() estimator {
	e := estimator{}
	for i := range e.window {
		e.window[i] = callIntervalTarget
	}
	return e
}

// observe records allocation at the given time. The very first allocation
// of the sequence has nothing to measure against.
func (e *estimator) observe(now time.Time) {
	if now.Before(e.last) {
		return
	}

	if !e.last.IsZero() {
		elapsed := now.Sub(e.last)
		if elapsed < minTimeSlice {
			elapsed = minTimeSlice
		}
		copy(e.window[:], e.window[1:])
		e.window[estimatorWindow-1] = elapsed
	}
	e.last = now
}

func (e *estimator) average() time.Duration {
	var sum time.Duration
	for _, x := range e.window {
		sum += x
	}
	return sum / estimatorWindow
}

// blockSize of the next allocation
func (e *estimator) blockSize() int {
	return blockSizeFor(e.average())
}

// blockSizeAt is the size of allocation made at now, the estimator is not
// changed until the allocation succeeds
func (e *estimator) blockSizeAt(now time.Time) int {
	x := *e
	x.observe(now)
	return x.blockSize()
}

func blockSizeFor(interval time.Duration) int {
	if interval < minTimeSlice {
		interval = minTimeSlice
	}

	ids := callIntervalTarget.Seconds() * targetIDsPerSec / interval.Seconds()
	return minBlockSize + int(math.Floor(ids))
}
