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
)

// namespace is get-or-create registry of named entries
type namespace[T any] struct {
	mu      sync.RWMutex
	entries map[string]*T
}

func (ns *namespace[T]) get(name string) (*T, bool) {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	x, has := ns.entries[name]
	return x, has
}

// getOrCreate returns the same entry to all concurrent callers of the name
func (ns *namespace[T]) getOrCreate(name string, create func() *T) *T {
	if x, has := ns.get(name); has {
		return x
	}

	ns.mu.Lock()
	defer ns.mu.Unlock()

	if x, has := ns.entries[name]; has {
		return x
	}

	if ns.entries == nil {
		ns.entries = make(map[string]*T)
	}

	x := create()
	ns.entries[name] = x
	return x
}

func (ns *namespace[T]) names() []string {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	seq := make([]string, 0, len(ns.entries))
	for name := range ns.entries {
		seq = append(seq, name)
	}
	sort.Strings(seq)
	return seq
}

func (ns *namespace[T]) values() []*T {
	ns.mu.RLock()
	defer ns.mu.RUnlock()

	seq := make([]*T, 0, len(ns.entries))
	for _, x := range ns.entries {
		seq = append(seq, x)
	}
	return seq
}

// scope is the first level of the namespace
type scope struct {
	name      string
	sequences namespace[sequence]
}

// registry of scopes, each holding sequences
type registry struct {
	scopePrefix    string
	sequencePrefix string
	scopes         namespace[scope]
}

// resolve finds or creates the sequence, it never allocates a block
func (r *registry) resolve(scopeName, sequenceName string) (*sequence, error) {
	scopeName, err := qualify(r.scopePrefix, scopeName)
	if err != nil {
		return nil, err
	}

	sequenceName, err = qualify(r.sequencePrefix, sequenceName)
	if err != nil {
		return nil, err
	}

	s := r.scopes.getOrCreate(scopeName, func() *scope {
		return &scope{name: scopeName}
	})

	return s.sequences.getOrCreate(sequenceName, func() *sequence {
		return newSequence(scopeName, sequenceName)
	}), nil
}

// lookup finds existing scope by user supplied name
func (r *registry) lookup(scopeName string) (*scope, error) {
	scopeName, err := qualify(r.scopePrefix, scopeName)
	if err != nil {
		return nil, err
	}

	s, _ := r.scopes.get(scopeName)
	return s, nil
}
