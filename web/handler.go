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
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/fogfish/gdid"
)

/*

NewHandler exposes accessor over HTTP. It is the server side of the wire
protocol, suitable to relay allocations or to serve development authority.
*/
func NewHandler(accessor gdid.Accessor, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{accessor: accessor, logger: logger.Named("gdid.web")}

	mux := http.NewServeMux()
	mux.Handle(Path, h)
	return mux
}

type handler struct {
	accessor gdid.Accessor
	logger   *zap.Logger
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		h.fail(w, r, http.StatusMethodNotAllowed, fmt.Errorf("method %s is not allowed", r.Method))
		return
	}

	var req Request
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64*1024)).Decode(&req); err != nil {
		h.fail(w, r, http.StatusBadRequest, fmt.Errorf("malformed request: %w", err))
		return
	}

	if err := validate(req); err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}

	block, err := h.accessor.AllocateBlock(r.Context(), req.Scope, req.Sequence, req.BlockSize, req.Vicinity)
	if err != nil {
		h.fail(w, r, http.StatusServiceUnavailable, err)
		return
	}

	h.logger.Debug("block allocated",
		zap.String("request", r.Header.Get(HeaderRequestID)),
		zap.String("scope", req.Scope),
		zap.String("sequence", req.Sequence),
		zap.Uint64("start", block.StartCounter),
		zap.Int("size", block.BlockSize),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(replyOf(block)); err != nil {
		h.logger.Warn("failed to write reply", zap.Error(err))
	}
}

func validate(req Request) error {
	if err := gdid.CheckName(req.Scope); err != nil {
		return fmt.Errorf("scope: %w", err)
	}

	if err := gdid.CheckName(req.Sequence); err != nil {
		return fmt.Errorf("sequence: %w", err)
	}

	if req.BlockSize < 1 {
		return fmt.Errorf("block-size must be positive, got %d", req.BlockSize)
	}

	return nil
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	h.logger.Warn("allocation request failed",
		zap.String("request", r.Header.Get(HeaderRequestID)),
		zap.Int("code", code),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(Failure{Error: err.Error()})
}
