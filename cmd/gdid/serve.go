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

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fogfish/gdid/memory"
	"github.com/fogfish/gdid/web"
)

type serveFlags struct {
	Addr         string
	Name         string
	Era          uint32
	Authority    int
	Start        uint64
	MaxBlockSize int
}

func newServeCommand() *cobra.Command {
	var flags serveFlags

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serves in-process development authority over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(flags)
		},
	}

	cmd.Flags().StringVar(&flags.Addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&flags.Name, "name", "dev", "authority host name stamped into blocks")
	cmd.Flags().Uint32Var(&flags.Era, "era", 0, "era of issued blocks")
	cmd.Flags().IntVar(&flags.Authority, "authority", 0, "authority id of issued blocks (0..15)")
	cmd.Flags().Uint64Var(&flags.Start, "start", 0, "first counter of every sequence")
	cmd.Flags().IntVar(&flags.MaxBlockSize, "max-block-size", 0, "caps size of granted blocks, 0 is unlimited")

	return cmd
}

func serve(flags serveFlags) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	authority, err := memory.New(
		memory.WithName(flags.Name),
		memory.WithEra(flags.Era),
		memory.WithAuthority(flags.Authority),
		memory.WithStart(flags.Start),
		memory.WithMaxBlockSize(flags.MaxBlockSize),
	)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	mux.Handle(web.Path, web.NewHandler(authority, logger))
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              flags.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			logger.Warn("shutdown failed", zap.Error(err))
		}
	}()

	logger.Info("serving development authority",
		zap.String("addr", flags.Addr),
		zap.Uint32("era", flags.Era),
		zap.Int("authority", flags.Authority),
	)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
