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

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fogfish/gdid"
)

// Client is HTTP transport to authority hosts
type Client struct {
	http    *http.Client
	resolve func(gdid.AuthorityHost) (string, error)
}

// Option of HTTP client
type Option func(*Client)

// WithHTTPClient configures underlying HTTP client, it owns timeouts
func WithHTTPClient(c *http.Client) Option {
	return func(client *Client) {
		client.http = c
	}
}

// WithResolver configures mapping of authority host to its base URL.
// By default host name has to be the URL.
func WithResolver(resolve func(gdid.AuthorityHost) (string, error)) Option {
	return func(client *Client) {
		client.resolve = resolve
	}
}

// New creates HTTP transport
func New(opts ...Option) *Client {
	c := &Client{
		http:    &http.Client{Timeout: 5 * time.Second},
		resolve: hostURL,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func hostURL(host gdid.AuthorityHost) (string, error) {
	name := strings.TrimSpace(host.Name)
	if !strings.HasPrefix(name, "http://") && !strings.HasPrefix(name, "https://") {
		return "", fmt.Errorf("authority host %q is not http(s) url", host.Name)
	}
	return name, nil
}

// AllocateBlockAt requests block from the given authority host
func (c *Client) AllocateBlockAt(ctx context.Context, host gdid.AuthorityHost, scope, sequence string, blockSize int, vicinity uint64) (gdid.Block, error) {
	url, err := c.resolve(host)
	if err != nil {
		return gdid.Block{}, err
	}

	block, err := c.allocate(ctx, url, Request{
		Scope:     scope,
		Sequence:  sequence,
		BlockSize: blockSize,
		Vicinity:  vicinity,
	})
	if err != nil {
		return gdid.Block{}, err
	}

	if block.AuthorityHost == "" {
		block.AuthorityHost = host.Name
	}

	return block, nil
}

func (c *Client) allocate(ctx context.Context, url string, req Request) (gdid.Block, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return gdid.Block{}, err
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(url, "/")+Path, bytes.NewReader(body))
	if err != nil {
		return gdid.Block{}, err
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	hreq.Header.Set(HeaderRequestID, uuid.NewString())

	in, err := c.http.Do(hreq)
	if err != nil {
		return gdid.Block{}, err
	}
	defer in.Body.Close()

	if in.StatusCode != http.StatusOK {
		return gdid.Block{}, failure(in)
	}

	var reply Reply
	if err := json.NewDecoder(in.Body).Decode(&reply); err != nil {
		return gdid.Block{}, fmt.Errorf("malformed reply of %s: %w", url, err)
	}

	return reply.block(), nil
}

func failure(in *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(in.Body, 4096))

	var reason Failure
	if err := json.Unmarshal(data, &reason); err != nil || reason.Error == "" {
		reason.Error = strings.TrimSpace(string(data))
	}

	return fmt.Errorf("authority %s responded %d: %s", in.Request.URL.Host, in.StatusCode, reason.Error)
}

/*

Accessor binds HTTP transport to single authority URL. The authority behind
the URL is responsible for its own failover (e.g. load balancer).
*/
type Accessor struct {
	client *Client
	url    string
}

// NewAccessor creates accessor of authority at the url
func NewAccessor(url string, opts ...Option) *Accessor {
	return &Accessor{client: New(opts...), url: url}
}

// AllocateBlock requests block from the authority
func (a *Accessor) AllocateBlock(ctx context.Context, scope, sequence string, blockSize int, vicinity uint64) (gdid.Block, error) {
	return a.client.AllocateBlockAt(ctx, gdid.AuthorityHost{Name: a.url}, scope, sequence, blockSize, vicinity)
}
