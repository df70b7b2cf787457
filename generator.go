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
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/atomic"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

/*

Generator issues GDIDs under (scope, sequence) out of locally held blocks,
reserving new blocks from the authority on demand.

Authority is reached by one of three strategies, chosen once per instance:
the testing authority host, the pluggable accessor, or direct failover over
authority hosts ordered by distance.
*/
type Generator struct {
	registry  registry
	accessor  Accessor
	transport Transport
	hosts     []AuthorityHost
	logger    *zap.Logger
	clock     func() time.Time

	// guards the testing authority latch and launch of prefetches
	mu      sync.Mutex
	testing atomic.Pointer[AuthorityHost]
	latched atomic.Bool
	closed  bool

	// background prefetches
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

/*

New creates generator
*/
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		logger: zap.NewNop(),
		clock:  time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	if err := checkPrefix(g.registry.scopePrefix); err != nil {
		return nil, fmt.Errorf("scope prefix: %w", err)
	}

	if err := checkPrefix(g.registry.sequencePrefix); err != nil {
		return nil, fmt.Errorf("sequence prefix: %w", err)
	}

	for i, h := range g.hosts {
		host, err := NewAuthorityHost(h.Name, h.DistanceKm)
		if err != nil {
			return nil, err
		}
		g.hosts[i] = host
	}
	g.hosts = SortByDistance(g.hosts)

	testing := g.testing.Load()
	switch {
	case testing != nil && g.transport == nil:
		return nil, fmt.Errorf("%w: testing authority %s requires transport", ErrNoAuthority, testing.Name)
	case testing == nil && g.accessor == nil && len(g.hosts) == 0:
		return nil, fmt.Errorf("%w: neither accessor nor hosts are defined", ErrNoAuthority)
	case g.accessor == nil && len(g.hosts) > 0 && g.transport == nil:
		return nil, fmt.Errorf("%w: authority hosts require transport", ErrNoAuthority)
	}

	g.logger = g.logger.Named("gdid")
	g.ctx, g.cancel = context.WithCancel(context.Background())

	return g, nil
}

// Close stops background prefetches and waits for them to finish.
// Generator keeps serving identifiers without prefetch afterwards.
func (g *Generator) Close() error {
	g.mu.Lock()
	g.closed = true
	g.cancel()
	g.mu.Unlock()

	g.wg.Wait()
	return nil
}

// Hosts returns authority hosts in failover order
func (g *Generator) Hosts() []AuthorityHost {
	return append([]AuthorityHost(nil), g.hosts...)
}

/*

SetTestingAuthority routes every allocation to the given host, nil removes
the override. It fails with ErrTestingOverrideMisuse once the generator has
allocated any block.
*/
func (g *Generator) SetTestingAuthority(host *AuthorityHost) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.latched.Load() {
		return ErrTestingOverrideMisuse
	}

	if host == nil {
		g.testing.Store(nil)
		return nil
	}

	if g.transport == nil {
		return fmt.Errorf("%w: testing authority %s requires transport", ErrNoAuthority, host.Name)
	}

	h := *host
	g.testing.Store(&h)
	return nil
}

// TestingAuthority returns the testing authority host, if configured
func (g *Generator) TestingAuthority() (AuthorityHost, bool) {
	if h := g.testing.Load(); h != nil {
		return *h, true
	}
	return AuthorityHost{}, false
}

// Scopes lists names of known scopes, prefix included
func (g *Generator) Scopes() []string {
	return g.registry.scopes.names()
}

// Sequences returns snapshot of sequences allocated within the scope
func (g *Generator) Sequences(scopeName string) ([]SequenceInfo, error) {
	s, err := g.registry.lookup(scopeName)
	if err != nil || s == nil {
		return nil, err
	}

	return infos(s), nil
}

/*

GenerateOne issues exactly one identifier for the sequence.

The block is promoted from prefetch or allocated synchronously when the
current one is exhausted. Synchronous allocation blocks other callers of
the same sequence only.
*/
func (g *Generator) GenerateOne(ctx context.Context, scopeName, sequenceName string, hints ...Hint) (GDID, error) {
	h := makeHint(hints)

	seq, err := g.registry.resolve(scopeName, sequenceName)
	if err != nil {
		return Zero, err
	}

	seq.mu.Lock()
	defer seq.mu.Unlock()

	if seq.current == nil || seq.current.exhausted() {
		if seq.promote() {
			prefetchPromotions.Inc()
			g.logger.Debug("prefetched block promoted",
				zap.String("scope", seq.scope),
				zap.String("sequence", seq.name),
				zap.Uint64("start", seq.current.StartCounter),
				zap.Int("size", seq.current.BlockSize),
			)
		} else {
			now := g.clock()
			size := seq.nextBlockSize(now, h.blockSize)
			block, err := g.allocateBlock(ctx, seq.scope, seq.name, size, h.vicinity)
			if err != nil {
				return Zero, err
			}
			seq.allocated(now)
			seq.current = block
			blockAllocations.WithLabelValues("sync").Inc()
		}
	}

	id := seq.current.next()
	idsIssued.Inc()

	if !h.noLWM {
		g.lowWaterMark(seq, h)
	}

	return id, nil
}

/*

TryGenerateManyConsecutive issues up to count consecutive identifiers out of
a single block. The result might be shorter than requested.

A new block sized to count is allocated if the current one holds no more than
half of the request. The remainder of the old block is abandoned. Bulk
allocation never triggers prefetch.
*/
func (g *Generator) TryGenerateManyConsecutive(ctx context.Context, scopeName, sequenceName string, count int, hints ...Hint) ([]GDID, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrInvalidArgument, count)
	}

	h := makeHint(hints)

	seq, err := g.registry.resolve(scopeName, sequenceName)
	if err != nil {
		return nil, err
	}

	seq.mu.Lock()
	defer seq.mu.Unlock()

	if seq.current == nil || seq.current.remaining <= count/2 {
		now := g.clock()
		size := seq.nextBlockSize(now, count)
		block, err := g.allocateBlock(ctx, seq.scope, seq.name, size, h.vicinity)
		if err != nil {
			return nil, err
		}
		seq.allocated(now)
		seq.current = block
		blockAllocations.WithLabelValues("bulk").Inc()
	}

	ids := make([]GDID, min(count, seq.current.remaining))
	for i := range ids {
		ids[i] = seq.current.next()
	}
	idsIssued.Add(float64(len(ids)))

	return ids, nil
}

// lowWaterMark launches background allocation of the next block once the
// current one drops below the threshold. Caller holds seq.mu.
func (g *Generator) lowWaterMark(seq *sequence, h hint) {
	block := seq.current
	if block.BlockSize <= lwmMinBlockSize || block.level() > lwmRatio {
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.closed {
		return
	}

	if !seq.prefetching.CompareAndSwap(false, true) {
		return
	}

	now := g.clock()
	size := seq.nextBlockSize(now, h.blockSize)

	g.wg.Add(1)
	go g.prefetch(seq, now, size, h.vicinity)
}

func (g *Generator) prefetch(seq *sequence, now time.Time, size int, vicinity uint64) {
	defer g.wg.Done()

	block, err := g.allocateBlock(g.ctx, seq.scope, seq.name, size, vicinity)
	if err != nil {
		prefetchFailures.Inc()
		g.logger.Warn("block prefetch failed",
			zap.String("scope", seq.scope),
			zap.String("sequence", seq.name),
			zap.Int("size", size),
			zap.Error(err),
		)
		seq.prefetching.Store(false)
		return
	}

	seq.mu.Lock()
	seq.allocated(now)
	seq.mu.Unlock()

	seq.prefetched.Store(block)
	blockAllocations.WithLabelValues("prefetch").Inc()
}

/*

allocateBlock obtains fresh block from authority using the strategy of the
generator. It is not retried: per-host failures are logged and the next host
is tried, failure of all of them is returned to the caller.
*/
func (g *Generator) allocateBlock(ctx context.Context, scopeName, sequenceName string, size int, vicinity uint64) (*Block, error) {
	g.latch()

	if host := g.testing.Load(); host != nil {
		block, err := g.allocateBlockAt(ctx, *host, scopeName, sequenceName, size, vicinity)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrAllAuthoritiesExhausted, err)
		}
		return block, nil
	}

	if g.accessor != nil {
		block, err := g.accessor.AllocateBlock(ctx, scopeName, sequenceName, size, vicinity)
		if err == nil {
			err = block.validate()
		}
		if err != nil {
			authorityFailures.WithLabelValues("accessor").Inc()
			g.logger.Warn("authority accessor failed to allocate block",
				zap.String("scope", scopeName),
				zap.String("sequence", sequenceName),
				zap.Error(err),
			)
			return nil, fmt.Errorf("%w: %w", ErrAllAuthoritiesExhausted, err)
		}
		g.installed(scopeName, sequenceName, &block)
		return block.reset(), nil
	}

	var errs error
	for _, host := range g.hosts {
		block, err := g.allocateBlockAt(ctx, host, scopeName, sequenceName, size, vicinity)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		return block, nil
	}

	return nil, fmt.Errorf("%w: %w", ErrAllAuthoritiesExhausted, errs)
}

func (g *Generator) allocateBlockAt(ctx context.Context, host AuthorityHost, scopeName, sequenceName string, size int, vicinity uint64) (*Block, error) {
	block, err := g.transport.AllocateBlockAt(ctx, host, scopeName, sequenceName, size, vicinity)
	if err == nil {
		if block.AuthorityHost == "" {
			block.AuthorityHost = host.Name
		}
		err = block.validate()
	}

	if err != nil {
		authorityFailures.WithLabelValues(host.Name).Inc()
		g.logger.Warn("authority host failed to allocate block",
			zap.Stringer("host", host),
			zap.String("scope", scopeName),
			zap.String("sequence", sequenceName),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%s: %w", host.Name, err)
	}

	g.installed(scopeName, sequenceName, &block)
	return block.reset(), nil
}

func (g *Generator) installed(scopeName, sequenceName string, block *Block) {
	g.logger.Debug("block allocated",
		zap.String("scope", scopeName),
		zap.String("sequence", sequenceName),
		zap.String("host", block.AuthorityHost),
		zap.Uint32("era", block.Era),
		zap.Int("authority", block.Authority),
		zap.Uint64("start", block.StartCounter),
		zap.Int("size", block.BlockSize),
	)
}

// latch freezes the testing authority
func (g *Generator) latch() {
	if g.latched.Load() {
		return
	}

	g.mu.Lock()
	g.latched.Store(true)
	g.mu.Unlock()
}
