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
	"testing"
	"time"

	"github.com/fogfish/it/v2"
)

func feed(interval time.Duration, n int) int {
	e := newEstimator()
	t := time.Unix(1700000000, 0)
	for i := 0; i < n; i++ {
		e.observe(t)
		t = t.Add(interval)
	}
	return e.blockSize()
}

func TestEstimatorDefault(t *testing.T) {
	e := newEstimator()
	e.observe(time.Now())

	it.Then(t).Should(
		it.Equal(e.blockSize(), minBlockSize+targetIDsPerSec),
	)
}

func TestEstimatorMonotonic(t *testing.T) {
	busy := feed(time.Millisecond, 10)
	idle := feed(time.Second, 10)
	sleepy := feed(time.Minute, 10)

	it.Then(t).Should(
		it.True(busy > idle),
		it.True(idle > sleepy),
		it.Equal(busy, minBlockSize+1600),
		it.Equal(idle, minBlockSize+16),
		it.Equal(sleepy, minBlockSize),
	)
}

func TestEstimatorWindow(t *testing.T) {
	e := newEstimator()
	t0 := time.Unix(1700000000, 0)

	// 1s, 1s, 1s → 100ms, 1s, 1s
	e.observe(t0)
	e.observe(t0.Add(100 * time.Millisecond))
	avg := e.average()

	it.Then(t).Should(
		it.Equal(avg, 700*time.Millisecond),
		it.Equal(e.blockSize(), minBlockSize+22),
	)

	// window is saturated by latest intervals
	e.observe(t0.Add(200 * time.Millisecond))
	e.observe(t0.Add(300 * time.Millisecond))
	it.Then(t).Should(
		it.Equal(e.average(), 100*time.Millisecond),
		it.Equal(e.blockSize(), minBlockSize+160),
	)
}

func TestEstimatorNeverBelowMin(t *testing.T) {
	for _, interval := range []time.Duration{0, time.Nanosecond, time.Hour, 24 * 365 * time.Hour} {
		it.Then(t).Should(
			it.True(blockSizeFor(interval) >= minBlockSize),
		)
	}

	it.Then(t).Should(
		it.Equal(blockSizeFor(0), blockSizeFor(minTimeSlice)),
	)
}

func TestEstimatorBlockSizeAt(t *testing.T) {
	e := newEstimator()
	t0 := time.Unix(1700000000, 0)
	e.observe(t0)

	size := e.blockSizeAt(t0.Add(100 * time.Millisecond))
	again := e.blockSizeAt(t0.Add(100 * time.Millisecond))

	it.Then(t).Should(
		it.Equal(size, minBlockSize+22),
		it.Equal(again, size),
		it.Equal(e.blockSize(), minBlockSize+targetIDsPerSec),
		it.Equal(e.last, t0),
	)
}

func TestEstimatorOutOfOrder(t *testing.T) {
	e := newEstimator()
	t0 := time.Unix(1700000000, 0)
	e.observe(t0)
	e.observe(t0.Add(-time.Second))

	it.Then(t).Should(
		it.Equal(e.last, t0),
		it.Equal(e.average(), callIntervalTarget),
	)
}
