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

package gdid_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/fogfish/gdid"
	"github.com/fogfish/it/v2"
)

func TestCheckName(t *testing.T) {
	valid := []string{"a", "billing", "invoice-2024", "tenant_1.orders", strings.Repeat("x", gdid.MaxNameLen)}
	for _, name := range valid {
		it.Then(t).Should(
			it.Nil(gdid.CheckName(name)),
		)
	}

	invalid := []string{"", "   ", "bad name", "slash/name", "ünïcode", "semi;colon", strings.Repeat("x", gdid.MaxNameLen+1)}
	for _, name := range invalid {
		it.Then(t).Should(
			it.True(errors.Is(gdid.CheckName(name), gdid.ErrNameInvalid)),
		)
	}
}
