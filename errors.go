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

import "errors"

var (
	// ErrNameInvalid is returned when scope or sequence name is blank or
	// contains forbidden characters. It is never retried.
	ErrNameInvalid = errors.New("gdid: name invalid")

	// ErrInvalidArgument is returned on malformed call arguments, e.g. bulk count ≤ 0
	ErrInvalidArgument = errors.New("gdid: invalid argument")

	// ErrAllAuthoritiesExhausted is returned when every configured authority
	// failed to allocate a block. The caller owns the retry.
	ErrAllAuthoritiesExhausted = errors.New("gdid: all authorities exhausted")

	// ErrTestingOverrideMisuse is returned on attempt to change testing
	// authority after the first allocation.
	ErrTestingOverrideMisuse = errors.New("gdid: testing authority is latched")

	// ErrNoAuthority is returned by constructor if generator has no way to
	// reach an authority.
	ErrNoAuthority = errors.New("gdid: no authority configured")

	// ErrMalformed is returned by codec on corrupted input
	ErrMalformed = errors.New("gdid: malformed identifier")
)
