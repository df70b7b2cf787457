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
	"sort"
	"sync"
	"time"

	"go.uber.org/atomic"
)

/*

sequence is allocation state of a single counter stream.

  Empty ──▶ Active ──▶ ActiveLWM ──▶ ActiveLWMReady
              ▲  ▲          │              │
              │  └──────────┼──────────────┘ promote prefetched block
              │             ▼
              └─────── Allocating (sync call under lock)

The current block is guarded by mu. The prefetch slots are written by
background allocation without the lock.
*/
type sequence struct {
	scope string
	name  string

	mu      sync.Mutex
	current *Block
	sizing  estimator

	// marker: prefetch is launched and not yet promoted or failed
	prefetching atomic.Bool
	// mailbox: block fetched in background
	prefetched atomic.Pointer[Block]
}

func newSequence(scope, name string) *sequence {
	return &sequence{
		scope:  scope,
		name:   name,
		sizing: newEstimator(),
	}
}

// nextBlockSize returns the size to request at now,
// requested > 0 overrides adaptive sizing.
func (seq *sequence) nextBlockSize(now time.Time, requested int) int {
	if requested > 0 {
		return requested
	}
	return seq.sizing.blockSizeAt(now)
}

// allocated records successful allocation requested at now.
// Caller holds seq.mu.
func (seq *sequence) allocated(now time.Time) {
	seq.sizing.observe(now)
}

// promote installs prefetched block, if any
func (seq *sequence) promote() bool {
	block := seq.prefetched.Swap(nil)
	if block == nil {
		return false
	}

	seq.current = block
	seq.prefetching.Store(false)
	return true
}

/*

SequenceInfo is a snapshot of sequence allocation state
*/
type SequenceInfo struct {
	Scope          string
	Name           string
	Era            uint32
	Authority      int
	AuthorityHost  string
	NextCounter    uint64
	Remaining      int
	BlockSize      int
	PrefetchActive bool
	PrefetchReady  bool
	LastAllocation time.Time
}

func (seq *sequence) info() SequenceInfo {
	seq.mu.Lock()
	defer seq.mu.Unlock()

	info := SequenceInfo{
		Scope:          seq.scope,
		Name:           seq.name,
		PrefetchActive: seq.prefetching.Load(),
		PrefetchReady:  seq.prefetched.Load() != nil,
		LastAllocation: seq.sizing.last,
	}

	if b := seq.current; b != nil {
		info.Era = b.Era
		info.Authority = b.Authority
		info.AuthorityHost = b.AuthorityHost
		info.NextCounter = b.StartCounter + uint64(b.BlockSize-b.remaining)
		info.Remaining = b.remaining
		info.BlockSize = b.BlockSize
	}

	return info
}

func infos(s *scope) []SequenceInfo {
	seqs := s.sequences.values()
	seq := make([]SequenceInfo, 0, len(seqs))
	for _, x := range seqs {
		seq = append(seq, x.info())
	}

	sort.Slice(seq, func(i, j int) bool { return seq[i].Name < seq[j].Name })
	return seq
}
