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
	"strings"
)

// MaxNameLen is the longest scope or sequence name, prefix included
const MaxNameLen = 64

// CheckName validates scope or sequence name
func CheckName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name is blank", ErrNameInvalid)
	}

	if len(name) > MaxNameLen {
		return fmt.Errorf("%w: %q is longer than %d", ErrNameInvalid, name, MaxNameLen)
	}

	for _, x := range name {
		if !isNameRune(x) {
			return fmt.Errorf("%w: %q contains %q", ErrNameInvalid, name, x)
		}
	}

	return nil
}

func isNameRune(x rune) bool {
	switch {
	case x >= 'a' && x <= 'z', x >= 'A' && x <= 'Z', x >= '0' && x <= '9':
		return true
	case x == '_', x == '-', x == '.':
		return true
	default:
		return false
	}
}

// checkPrefix validates optional name prefix
func checkPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	return CheckName(prefix)
}

// qualify trims and validates user supplied name and applies prefix
func qualify(prefix, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: name is blank", ErrNameInvalid)
	}

	name = prefix + name
	if err := CheckName(name); err != nil {
		return "", err
	}

	return name, nil
}
