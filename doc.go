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

Package gdid implements client side generator of globally distributed
identifiers (GDID). Identifiers are issued locally and cheaply out of
contiguous counter ranges ("blocks") pre-reserved from a remote allocation
authority.

Identity Schema

GDID is a triple ⟨era, authority, counter⟩

  32 bit       4 bit        60 bit
  |----------|-----|------------------------|
    ⟨era⟩    ⟨auth⟩          ⟨counter⟩

↣ ⟨era⟩ is incremented by authority when counter space is re-based.

↣ ⟨auth⟩ is identity of the authority that granted the counter range.

↣ ⟨counter⟩ is monotonic integer within the era and authority.

The library trusts the authority never issues overlapping ranges for the
same era and authority, across all generator instances. This precondition
cannot be verified on the client side.

Namespaces

Counters are partitioned by two-level namespace: scope → sequence. Each
sequence owns its blocks and its lock, sequences never contend with each
other. Names are limited to [A-Za-z0-9_.-] and might be prefixed by the
generator instance for multi-tenant deployments.

Allocation

↣ single id is served from the current block. Once the block drops below
25% (low-water-mark) the next block is fetched in background, so that
exhaustion swaps it in without a network call.

↣ bulk ids are served from one block only, the result might be shorter than
requested.

↣ the size of the block adapts to the load of the sequence, so that the
authority is contacted roughly once per second.

↣ the authority is reached via pluggable Accessor, or by iterating authority
hosts in order of ascending distance until one of them succeeds.

  g, err := gdid.New(
    gdid.WithTransport(web.New()),
    gdid.WithHosts(
      gdid.AuthorityHost{Name: "https://gdid-east.example.com", DistanceKm: 10},
      gdid.AuthorityHost{Name: "https://gdid-west.example.com", DistanceKm: 3500},
    ),
  )

  id, err := g.GenerateOne(ctx, "billing", "invoice")

*/
package gdid
