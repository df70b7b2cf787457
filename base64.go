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

import "fmt"

var alphabet = []rune{
	'.', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'A', 'B', 'C', 'D', 'E',
	'F', 'G', 'H', 'I', 'J', 'K', 'L', 'M', 'N', 'O', 'P', 'Q', 'R', 'S', 'T', 'U',
	'V', 'W', 'X', 'Y', 'Z', '_', 'a', 'b', 'c', 'd', 'e', 'f', 'g', 'h', 'i', 'j',
	'k', 'l', 'm', 'n', 'o', 'p', 'q', 'r', 's', 't', 'u', 'v', 'w', 'x', 'y', 'z',
}

// 96 bits encoded as 6-bit cells
const encodedLen = 16

func encode64(cells []byte) string {
	b := make([]rune, len(cells))
	for i, x := range cells {
		b[i] = alphabet[x]
	}
	return string(b)
}

func decode64(val string) ([]byte, error) {
	if len(val) != encodedLen {
		return nil, fmt.Errorf("%w: gdid string requires %d chars, got %d", ErrMalformed, encodedLen, len(val))
	}

	b := make([]byte, encodedLen)
	for i, x := range val {
		switch {
		case x == '.':
			b[i] = 0
		case x >= '0' && x <= '9':
			b[i] = byte(x-'0') + 1
		case x >= 'A' && x <= 'Z':
			b[i] = byte(x-'A') + 11
		case x == '_':
			b[i] = 37
		case x >= 'a' && x <= 'z':
			b[i] = byte(x-'a') + 38
		default:
			return nil, fmt.Errorf("%w: invalid char %q in %q", ErrMalformed, x, val)
		}
	}

	return b, nil
}
