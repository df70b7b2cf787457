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

/*

Package memory implements in-process allocation authority. It hands out
non-overlapping counter ranges per scope and sequence, the state is lost
on restart. It suits tests and local development only.
*/
package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fogfish/gdid"
)

// Authority is in-process allocation authority
type Authority struct {
	mu           sync.Mutex
	name         string
	era          uint32
	authority    int
	maxBlockSize int
	start        uint64
	counters     map[string]uint64
	clock        func() time.Time
}

// Option of in-process authority
type Option func(*Authority)

// WithName of the authority host stamped into blocks
func WithName(name string) Option {
	return func(a *Authority) { a.name = name }
}

// WithEra configures era of issued blocks
func WithEra(era uint32) Option {
	return func(a *Authority) { a.era = era }
}

// WithAuthority configures authority id of issued blocks
func WithAuthority(id int) Option {
	return func(a *Authority) { a.authority = id }
}

// WithMaxBlockSize caps size of granted blocks, requests above the cap
// receive smaller blocks.
func WithMaxBlockSize(n int) Option {
	return func(a *Authority) { a.maxBlockSize = n }
}

// WithStart configures the first counter of every sequence
func WithStart(counter uint64) Option {
	return func(a *Authority) {
		a.start = counter
	}
}

// New creates in-process authority
func New(opts ...Option) (*Authority, error) {
	a := &Authority{
		name:     "memory",
		counters: map[string]uint64{},
		clock:    time.Now,
	}

	for _, opt := range opts {
		opt(a)
	}

	if a.authority < 0 || a.authority > gdid.MaxAuthority {
		return nil, fmt.Errorf("%w: authority %d is out of range", gdid.ErrInvalidArgument, a.authority)
	}

	return a, nil
}

/*

AllocateBlock grants the next range of the sequence. Vicinity is ignored.
*/
func (a *Authority) AllocateBlock(ctx context.Context, scope, sequence string, blockSize int, vicinity uint64) (gdid.Block, error) {
	return a.allocate(ctx, a.name, scope, sequence, blockSize)
}

/*

AllocateBlockAt grants the next range of the sequence on behalf of the host.
All hosts share the same counter space.
*/
func (a *Authority) AllocateBlockAt(ctx context.Context, host gdid.AuthorityHost, scope, sequence string, blockSize int, vicinity uint64) (gdid.Block, error) {
	return a.allocate(ctx, host.Name, scope, sequence, blockSize)
}

func (a *Authority) allocate(ctx context.Context, host, scope, sequence string, blockSize int) (gdid.Block, error) {
	if err := ctx.Err(); err != nil {
		return gdid.Block{}, err
	}

	if blockSize < 1 {
		return gdid.Block{}, fmt.Errorf("%w: block size %d", gdid.ErrInvalidArgument, blockSize)
	}

	if a.maxBlockSize > 0 && blockSize > a.maxBlockSize {
		blockSize = a.maxBlockSize
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := scope + "/" + sequence
	start, has := a.counters[key]
	if !has {
		start = a.start
	}

	if start > gdid.MaxCounter {
		return gdid.Block{}, fmt.Errorf("counter space of %s is exhausted", key)
	}

	if left := gdid.MaxCounter - start + 1; uint64(blockSize) > left {
		blockSize = int(left)
	}

	a.counters[key] = start + uint64(blockSize)

	return gdid.Block{
		Era:           a.era,
		Authority:     a.authority,
		AuthorityHost: host,
		StartCounter:  start,
		BlockSize:     blockSize,
		ServerTime:    a.clock().UTC(),
	}, nil
}
