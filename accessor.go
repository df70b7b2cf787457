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

import "context"

/*

Accessor performs the remote "give me blockSize ids for sequence" call.
It is the extension point to plug a transport (HTTP, RPC, in-memory).
The vicinity is advisory, MaxCounter means "anywhere".
*/
type Accessor interface {
	AllocateBlock(ctx context.Context, scope, sequence string, blockSize int, vicinity uint64) (Block, error)
}

// AccessorFunc is an adapter to use ordinary functions as Accessor
type AccessorFunc func(ctx context.Context, scope, sequence string, blockSize int, vicinity uint64) (Block, error)

// AllocateBlock calls f(ctx, scope, sequence, blockSize, vicinity)
func (f AccessorFunc) AllocateBlock(ctx context.Context, scope, sequence string, blockSize int, vicinity uint64) (Block, error) {
	return f(ctx, scope, sequence, blockSize, vicinity)
}

/*

Transport makes the allocation call to the given authority host. It is used
by direct multi-host failover and by the testing authority override.
*/
type Transport interface {
	AllocateBlockAt(ctx context.Context, host AuthorityHost, scope, sequence string, blockSize int, vicinity uint64) (Block, error)
}

// TransportFunc is an adapter to use ordinary functions as Transport
type TransportFunc func(ctx context.Context, host AuthorityHost, scope, sequence string, blockSize int, vicinity uint64) (Block, error)

// AllocateBlockAt calls f(ctx, host, scope, sequence, blockSize, vicinity)
func (f TransportFunc) AllocateBlockAt(ctx context.Context, host AuthorityHost, scope, sequence string, blockSize int, vicinity uint64) (Block, error) {
	return f(ctx, host, scope, sequence, blockSize, vicinity)
}
