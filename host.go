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
	"fmt"
	"sort"
	"strconv"
	"strings"
)

/*

AuthorityHost is a named remote endpoint of the authority service together
with relative network distance. Hosts are compared by region-aware,
case-insensitive path match, e.g. "/US/East/cle/gdid01" equals
"us/east//CLE/gdid01/".
*/
type AuthorityHost struct {
	Name       string
	DistanceKm float64
}

// NewAuthorityHost creates host
func NewAuthorityHost(name string, distanceKm float64) (AuthorityHost, error) {
	if hostPath(name) == "" {
		return AuthorityHost{}, fmt.Errorf("%w: authority host name is blank", ErrInvalidArgument)
	}

	if distanceKm < 0 {
		return AuthorityHost{}, fmt.Errorf("%w: authority host %q has negative distance", ErrInvalidArgument, name)
	}

	return AuthorityHost{Name: strings.TrimSpace(name), DistanceKm: distanceKm}, nil
}

/*

ParseHost parses "name@distance" notation, distance is optional
*/
func ParseHost(text string) (AuthorityHost, error) {
	name, dist, found := strings.Cut(text, "@")
	if !found {
		return NewAuthorityHost(name, 0)
	}

	km, err := strconv.ParseFloat(strings.TrimSpace(dist), 64)
	if err != nil {
		return AuthorityHost{}, fmt.Errorf("%w: authority host %q: %s", ErrInvalidArgument, text, err)
	}

	return NewAuthorityHost(name, km)
}

// Key is normalized region path of the host, suitable as map key
func (h AuthorityHost) Key() string {
	return strings.ToLower(hostPath(h.Name))
}

// Equal matches hosts by region path, ignoring case
func (h AuthorityHost) Equal(x AuthorityHost) bool {
	return strings.EqualFold(hostPath(h.Name), hostPath(x.Name))
}

func (h AuthorityHost) String() string {
	return fmt.Sprintf("%s@%gkm", h.Name, h.DistanceKm)
}

// hostPath drops empty segments of the region path. Names that are not
// region paths (e.g. URLs) are only trimmed.
func hostPath(name string) string {
	name = strings.TrimSpace(name)
	if strings.Contains(name, "://") {
		return strings.TrimRight(name, "/")
	}

	seq := strings.Split(name, "/")
	path := seq[:0]
	for _, x := range seq {
		if x = strings.TrimSpace(x); x != "" {
			path = append(path, x)
		}
	}

	return strings.Join(path, "/")
}

/*

SortByDistance returns copy of hosts ordered by ascending distance,
duplicates (by region path) are dropped keeping the nearest one. It defines
failover order.
*/
func SortByDistance(hosts []AuthorityHost) []AuthorityHost {
	sorted := append([]AuthorityHost(nil), hosts...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DistanceKm < sorted[j].DistanceKm
	})

	seq := make([]AuthorityHost, 0, len(sorted))
	seen := make(map[string]struct{}, len(sorted))
	for _, h := range sorted {
		if _, has := seen[h.Key()]; has {
			continue
		}
		seen[h.Key()] = struct{}{}
		seq = append(seq, h)
	}

	return seq
}
