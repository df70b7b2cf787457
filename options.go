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
	"time"

	"go.uber.org/zap"
)

/*

Option of generator behavior. Options define prefixes of names and the way
generator reaches an authority.
*/
type Option func(*Generator)

// WithScopePrefix prepends prefix to every scope name (multi-tenant namespacing)
func WithScopePrefix(prefix string) Option {
	return func(g *Generator) {
		g.registry.scopePrefix = prefix
	}
}

// WithSequencePrefix prepends prefix to every sequence name
func WithSequencePrefix(prefix string) Option {
	return func(g *Generator) {
		g.registry.sequencePrefix = prefix
	}
}

// WithAccessor configures pluggable accessor, hosts are not iterated
func WithAccessor(accessor Accessor) Option {
	return func(g *Generator) {
		g.accessor = accessor
	}
}

// WithTransport configures transport to reach authority hosts
func WithTransport(transport Transport) Option {
	return func(g *Generator) {
		g.transport = transport
	}
}

// WithHosts appends authority hosts, failover order is ascending distance
func WithHosts(hosts ...AuthorityHost) Option {
	return func(g *Generator) {
		g.hosts = append(g.hosts, hosts...)
	}
}

// WithTestingAuthority routes every allocation to the single host,
// requires transport.
func WithTestingAuthority(host AuthorityHost) Option {
	return func(g *Generator) {
		g.testing.Store(&host)
	}
}

// WithLogger configures logger, default is no-op one
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithClock configures a custom time source used to measure intervals
// between allocations.
func WithClock(clock func() time.Time) Option {
	return func(g *Generator) {
		g.clock = clock
	}
}

// WithConfig applies file based configuration
func WithConfig(cfg *Config) Option {
	return func(g *Generator) {
		g.registry.scopePrefix = cfg.ScopePrefix
		g.registry.sequencePrefix = cfg.SequencePrefix

		for _, h := range cfg.Hosts {
			g.hosts = append(g.hosts, AuthorityHost{Name: h.Name, DistanceKm: h.DistanceKm})
		}

		if cfg.TestingAuthority != "" {
			g.testing.Store(&AuthorityHost{Name: cfg.TestingAuthority})
		}
	}
}

/*

Hint of single allocation call
*/
type Hint func(*hint)

type hint struct {
	blockSize int
	vicinity  uint64
	noLWM     bool
}

func makeHint(hints []Hint) hint {
	h := hint{vicinity: MaxCounter}
	for _, f := range hints {
		f(&h)
	}
	return h
}

// BlockSize requests block of the given size, 0 enables adaptive sizing
func BlockSize(n int) Hint {
	return func(h *hint) {
		if n > 0 {
			h.blockSize = n
		}
	}
}

// Vicinity is advisory upper bound on counter placement
func Vicinity(v uint64) Hint {
	return func(h *hint) {
		h.vicinity = min(v, MaxCounter)
	}
}

// NoLWM disables background prefetch of the next block for this call
func NoLWM() Hint {
	return func(h *hint) {
		h.noLWM = true
	}
}
