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

Package web implements JSON over HTTP transport to the allocation authority.

  POST /gdid/v1/allocate
  {"scope": "billing", "sequence": "invoice", "block-size": 16, "vicinity": 1152921504606846975}

  200 OK
  {"era": 1, "authority": 3, "host": "gdid01", "start": 1024, "block-size": 16, "server-time": "..."}

Failures are reported with non-2xx status code and {"error": "..."} payload.
*/
package web

import (
	"time"

	"github.com/fogfish/gdid"
)

// Path of allocation endpoint
const Path = "/gdid/v1/allocate"

// HeaderRequestID carries unique id of the allocation request
const HeaderRequestID = "X-Request-Id"

// Request to allocate block
type Request struct {
	Scope     string `json:"scope"`
	Sequence  string `json:"sequence"`
	BlockSize int    `json:"block-size"`
	Vicinity  uint64 `json:"vicinity"`
}

// Reply with allocated block
type Reply struct {
	Era        uint32    `json:"era"`
	Authority  int       `json:"authority"`
	Host       string    `json:"host,omitempty"`
	Start      uint64    `json:"start"`
	BlockSize  int       `json:"block-size"`
	ServerTime time.Time `json:"server-time"`
}

// Failure payload
type Failure struct {
	Error string `json:"error"`
}

func replyOf(block gdid.Block) Reply {
	return Reply{
		Era:        block.Era,
		Authority:  block.Authority,
		Host:       block.AuthorityHost,
		Start:      block.StartCounter,
		BlockSize:  block.BlockSize,
		ServerTime: block.ServerTime,
	}
}

func (r Reply) block() gdid.Block {
	return gdid.Block{
		Era:           r.Era,
		Authority:     r.Authority,
		AuthorityHost: r.Host,
		StartCounter:  r.Start,
		BlockSize:     r.BlockSize,
		ServerTime:    r.ServerTime,
	}
}
