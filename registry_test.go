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
	"errors"
	"sync"
	"testing"

	"github.com/fogfish/it/v2"
)

func TestRegistryResolve(t *testing.T) {
	r := registry{scopePrefix: "t1-", sequencePrefix: "s-"}

	a, errA := r.resolve("billing", "invoice")
	b, errB := r.resolve("  billing ", "\tinvoice\n")
	c, errC := r.resolve("billing", "receipt")

	it.Then(t).Should(
		it.Nil(errA),
		it.Nil(errB),
		it.Nil(errC),
		it.True(a == b),
		it.True(a != c),
		it.Equal(a.scope, "t1-billing"),
		it.Equal(a.name, "s-invoice"),
		it.True(a.current == nil),
		it.Equal(len(r.scopes.names()), 1),
	)
}

func TestRegistryResolveInvalid(t *testing.T) {
	r := registry{}

	_, errA := r.resolve("", "invoice")
	_, errB := r.resolve("billing", " ")
	_, errC := r.resolve("bill ing", "invoice")

	it.Then(t).Should(
		it.True(errors.Is(errA, ErrNameInvalid)),
		it.True(errors.Is(errB, ErrNameInvalid)),
		it.True(errors.Is(errC, ErrNameInvalid)),
		it.Equal(len(r.scopes.names()), 0),
	)
}

func TestRegistryConcurrentResolve(t *testing.T) {
	r := registry{}

	const n = 64
	seqs := make([]*sequence, n)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			seqs[i], _ = r.resolve("scope", "sequence")
		}(i)
	}
	wg.Wait()

	for _, seq := range seqs {
		it.Then(t).Should(
			it.True(seq != nil),
			it.True(seq == seqs[0]),
		)
	}
}
