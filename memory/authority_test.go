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

package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fogfish/gdid"
	"github.com/fogfish/gdid/memory"
	"github.com/fogfish/it/v2"
)

func TestAuthority(t *testing.T) {
	a, err := memory.New(memory.WithEra(2), memory.WithAuthority(5), memory.WithStart(100))
	it.Then(t).Should(it.Nil(err))

	ctx := context.Background()
	b1, err1 := a.AllocateBlock(ctx, "scope", "seq", 10, gdid.MaxCounter)
	b2, err2 := a.AllocateBlock(ctx, "scope", "seq", 5, gdid.MaxCounter)
	b3, err3 := a.AllocateBlock(ctx, "scope", "other", 5, gdid.MaxCounter)

	it.Then(t).Should(
		it.Nil(err1),
		it.Nil(err2),
		it.Nil(err3),
		it.Equal(b1.Era, 2),
		it.Equal(b1.Authority, 5),
		it.Equal(b1.AuthorityHost, "memory"),
		it.Equal(b1.StartCounter, 100),
		it.Equal(b1.BlockSize, 10),
		it.Equal(b2.StartCounter, 110),
		it.Equal(b3.StartCounter, 100),
	)
}

func TestAuthorityAt(t *testing.T) {
	a, _ := memory.New()

	ctx := context.Background()
	b1, _ := a.AllocateBlockAt(ctx, gdid.AuthorityHost{Name: "h1"}, "scope", "seq", 10, gdid.MaxCounter)
	b2, _ := a.AllocateBlockAt(ctx, gdid.AuthorityHost{Name: "h2"}, "scope", "seq", 10, gdid.MaxCounter)

	it.Then(t).Should(
		it.Equal(b1.AuthorityHost, "h1"),
		it.Equal(b2.AuthorityHost, "h2"),
		it.Equal(b2.StartCounter, 10),
	)
}

func TestAuthorityMaxBlockSize(t *testing.T) {
	a, _ := memory.New(memory.WithMaxBlockSize(8))

	b, err := a.AllocateBlock(context.Background(), "scope", "seq", 100, gdid.MaxCounter)
	it.Then(t).Should(
		it.Nil(err),
		it.Equal(b.BlockSize, 8),
	)
}

func TestAuthorityCounterSpace(t *testing.T) {
	a, _ := memory.New(memory.WithStart(gdid.MaxCounter - 4))

	ctx := context.Background()
	b, err := a.AllocateBlock(ctx, "scope", "seq", 10, gdid.MaxCounter)
	it.Then(t).Should(
		it.Nil(err),
		it.Equal(b.BlockSize, 5),
	)

	_, err = a.AllocateBlock(ctx, "scope", "seq", 10, gdid.MaxCounter)
	it.Then(t).ShouldNot(it.Nil(err))
}

func TestAuthorityInvalid(t *testing.T) {
	_, errA := memory.New(memory.WithAuthority(16))

	a, _ := memory.New()
	_, errB := a.AllocateBlock(context.Background(), "scope", "seq", 0, gdid.MaxCounter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, errC := a.AllocateBlock(ctx, "scope", "seq", 1, gdid.MaxCounter)

	it.Then(t).Should(
		it.True(errors.Is(errA, gdid.ErrInvalidArgument)),
		it.True(errors.Is(errB, gdid.ErrInvalidArgument)),
		it.True(errors.Is(errC, context.Canceled)),
	)
}
