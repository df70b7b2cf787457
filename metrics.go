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

import "github.com/prometheus/client_golang/prometheus"

var (
	idsIssued = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gdid",
		Subsystem: "generator",
		Name:      "ids_issued_total",
		Help:      "The total number of identifiers issued.",
	})
	blockAllocations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gdid",
			Subsystem: "generator",
			Name:      "block_allocations_total",
			Help:      "The total number of blocks obtained from authority by allocation mode (sync, prefetch, bulk).",
		},
		[]string{"mode"},
	)
	prefetchPromotions = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gdid",
		Subsystem: "generator",
		Name:      "prefetch_promotions_total",
		Help:      "The total number of prefetched blocks installed without a synchronous call.",
	})
	prefetchFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gdid",
		Subsystem: "generator",
		Name:      "prefetch_failures_total",
		Help:      "The total number of failed background block allocations.",
	})
	authorityFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "gdid",
			Subsystem: "generator",
			Name:      "authority_failures_total",
			Help:      "The total number of failed block allocation calls by authority host.",
		},
		[]string{"host"},
	)
)

func init() {
	prometheus.MustRegister(idsIssued)
	prometheus.MustRegister(blockAllocations)
	prometheus.MustRegister(prefetchPromotions)
	prometheus.MustRegister(prefetchFailures)
	prometheus.MustRegister(authorityFailures)
}
