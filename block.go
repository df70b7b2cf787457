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
	"time"
)

/*

Block is a contiguous counter range [StartCounter, StartCounter+BlockSize)
granted by the authority to a single sequence. The authority guarantees the
range is never re-issued to anyone else.
*/
type Block struct {
	Era           uint32
	Authority     int
	AuthorityHost string
	StartCounter  uint64
	BlockSize     int
	ServerTime    time.Time

	// counters left to hand out, owned by the sequence
	remaining int
}

// Remaining returns number of counters left in the block
func (b *Block) Remaining() int { return b.remaining }

// exhausted block has no counters left
func (b *Block) exhausted() bool { return b.remaining <= 0 }

// next counter to hand out, the caller checks exhaustion
func (b *Block) next() GDID {
	counter := b.StartCounter + uint64(b.BlockSize-b.remaining)
	b.remaining--
	return GDID{era: b.Era, authority: b.Authority, counter: counter}
}

// level is the remaining fraction of the block
func (b *Block) level() float64 {
	return float64(b.remaining) / float64(b.BlockSize)
}

// reset makes fresh block out of authority reply
func (b *Block) reset() *Block {
	b.remaining = b.BlockSize
	return b
}

func (b *Block) validate() error {
	switch {
	case b.BlockSize < 1:
		return fmt.Errorf("authority %q returned block of size %d", b.AuthorityHost, b.BlockSize)
	case b.Authority < 0 || b.Authority > MaxAuthority:
		return fmt.Errorf("authority %q returned authority id %d", b.AuthorityHost, b.Authority)
	case b.StartCounter > MaxCounter-uint64(b.BlockSize-1):
		return fmt.Errorf("authority %q returned range [%d, +%d) beyond counter space", b.AuthorityHost, b.StartCounter, b.BlockSize)
	}
	return nil
}
