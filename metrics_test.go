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
	"testing"

	"github.com/fogfish/it/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.uber.org/zap/zaptest"
)

type sequential struct{ next uint64 }

func (s *sequential) AllocateBlock(ctx context.Context, scope, sequence string, blockSize int, vicinity uint64) (Block, error) {
	block := Block{StartCounter: s.next, BlockSize: blockSize}
	s.next += uint64(blockSize)
	return block, nil
}

func TestMetrics(t *testing.T) {
	g, err := New(WithAccessor(&sequential{}), WithLogger(zaptest.NewLogger(t)))
	it.Then(t).Should(it.Nil(err))
	defer g.Close()

	issued := testutil.ToFloat64(idsIssued)
	sync := testutil.ToFloat64(blockAllocations.WithLabelValues("sync"))
	bulk := testutil.ToFloat64(blockAllocations.WithLabelValues("bulk"))

	for i := 0; i < 5; i++ {
		_, err := g.GenerateOne(context.Background(), "metrics", "sequence", BlockSize(5), NoLWM())
		it.Then(t).Should(it.Nil(err))
	}

	ids, err := g.TryGenerateManyConsecutive(context.Background(), "metrics", "sequence", 4)
	it.Then(t).Should(
		it.Nil(err),
		it.Equal(len(ids), 4),
	)

	it.Then(t).Should(
		it.Equal(testutil.ToFloat64(idsIssued)-issued, 9.0),
		it.Equal(testutil.ToFloat64(blockAllocations.WithLabelValues("sync"))-sync, 1.0),
		it.Equal(testutil.ToFloat64(blockAllocations.WithLabelValues("bulk"))-bulk, 1.0),
	)
}
