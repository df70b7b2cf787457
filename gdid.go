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
	"encoding/json"
	"fmt"
)

const (
	// MaxAuthority is the largest authority id representable by GDID
	MaxAuthority = 0xf

	// MaxCounter is the largest counter value representable by GDID.
	// It is also the default vicinity hint, meaning "anywhere".
	MaxCounter uint64 = 1<<60 - 1
)

/*

GDID is globally distributed identifier, the immutable triple ⟨era, authority, counter⟩.

  32 bit       4 bit        60 bit
  |----------|-----|------------------------|
    ⟨era⟩    ⟨auth⟩          ⟨counter⟩

The value is unique only if authority never issues overlapping counter ranges
for the same era and authority.
*/
type GDID struct {
	era       uint32
	authority int
	counter   uint64
}

// Zero is "zero" identifier
var Zero GDID

/*

FromParts builds identifier from its fractions
*/
func FromParts(era uint32, authority int, counter uint64) (GDID, error) {
	if authority < 0 || authority > MaxAuthority {
		return Zero, fmt.Errorf("%w: authority %d is out of range [0, %d]", ErrInvalidArgument, authority, MaxAuthority)
	}

	if counter > MaxCounter {
		return Zero, fmt.Errorf("%w: counter %d exceeds %d", ErrInvalidArgument, counter, MaxCounter)
	}

	return GDID{era: era, authority: authority, counter: counter}, nil
}

// Era returns ⟨era⟩ fraction
func (id GDID) Era() uint32 { return id.era }

// Authority returns ⟨authority⟩ fraction
func (id GDID) Authority() int { return id.authority }

// Counter returns ⟨counter⟩ fraction
func (id GDID) Counter() uint64 { return id.counter }

// ID composes authority and counter into single 64-bit value
func (id GDID) ID() uint64 {
	return uint64(id.authority)<<60 | id.counter
}

// IsZero returns true if identifier is "zero"
func (id GDID) IsZero() bool { return id == Zero }

/*

Equal compares identifiers, returns true if values are equal
*/
func Equal(a, b GDID) bool {
	return a == b
}

/*

Less compares identifiers, return true if value a is less than b.
Identifiers are ordered by era, authority and then counter.
*/
func Less(a, b GDID) bool {
	switch {
	case a.era != b.era:
		return a.era < b.era
	case a.authority != b.authority:
		return a.authority < b.authority
	default:
		return a.counter < b.counter
	}
}

/*******************************************************************************

Codec

*******************************************************************************/

/*

Bytes encodes identifier to 12 bytes, era followed by composed id (big-endian)
*/
func Bytes(id GDID) []byte {
	return split(uint64(id.era), id.ID(), 96, 8)
}

/*

FromBytes decodes identifier from bytes
*/
func FromBytes(val []byte) (GDID, error) {
	if len(val) != 12 {
		return Zero, fmt.Errorf("%w: gdid requires 12 bytes, got %d", ErrMalformed, len(val))
	}

	hi, lo := fold(96, 8, val)
	return fromHiLo(hi, lo), nil
}

/*

String encodes identifier to lexicographically sortable string
*/
func String(id GDID) string {
	return encode64(split(uint64(id.era), id.ID(), 96, 6))
}

/*

FromString decodes identifier from lexicographically sortable string
*/
func FromString(val string) (GDID, error) {
	bytes, err := decode64(val)
	if err != nil {
		return Zero, err
	}

	hi, lo := fold(96, 6, bytes)
	return fromHiLo(hi, lo), nil
}

func fromHiLo(hi, lo uint64) GDID {
	return GDID{
		era:       uint32(hi),
		authority: int(lo >> 60),
		counter:   lo & MaxCounter,
	}
}

// String encoding of identifier
func (id GDID) String() string {
	return String(id)
}

// Triple renders identifier as human readable triple era:authority:counter
func (id GDID) Triple() string {
	return fmt.Sprintf("%d:%d:%d", id.era, id.authority, id.counter)
}

/*

UnmarshalJSON decodes lexicographically sortable strings to identifier
*/
func (id *GDID) UnmarshalJSON(b []byte) (err error) {
	var val string
	if err = json.Unmarshal(b, &val); err != nil {
		return
	}
	*id, err = FromString(val)
	return
}

/*

MarshalJSON encodes identifier to lexicographically sortable JSON strings
*/
func (id GDID) MarshalJSON() (bytes []byte, err error) {
	return json.Marshal(String(id))
}
