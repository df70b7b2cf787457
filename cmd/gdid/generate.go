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
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fogfish/gdid"
	"github.com/fogfish/gdid/memory"
	"github.com/fogfish/gdid/web"
)

type generateFlags struct {
	Scope     string
	Sequence  string
	Count     int
	BlockSize int
	Vicinity  uint64
	Bulk      bool
	Local     bool
	Hosts     []string
	Format    string
}

func newGenerateCommand() *cobra.Command {
	var flags generateFlags

	cmd := &cobra.Command{
		Use:   "generate --scope <scope> --sequence <sequence>",
		Short: "Generates identifiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return generate(cmd.Context(), cmd.OutOrStdout(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.Scope, "scope", "", "scope name")
	cmd.Flags().StringVar(&flags.Sequence, "sequence", "", "sequence name")
	cmd.Flags().IntVarP(&flags.Count, "count", "n", 1, "number of identifiers")
	cmd.Flags().IntVar(&flags.BlockSize, "block-size", 0, "block size to request, 0 enables adaptive sizing")
	cmd.Flags().Uint64Var(&flags.Vicinity, "vicinity", gdid.MaxCounter, "advisory placement of counter range")
	cmd.Flags().BoolVar(&flags.Bulk, "bulk", false, "issue consecutive identifiers out of single block")
	cmd.Flags().BoolVar(&flags.Local, "local", false, "use in-process authority")
	cmd.Flags().StringSliceVar(&flags.Hosts, "host", nil, "authority host as url@distance-km")
	cmd.Flags().StringVarP(&flags.Format, "write-out", "w", "string", "output format (string, triple, id)")

	_ = cmd.MarkFlagRequired("scope")
	_ = cmd.MarkFlagRequired("sequence")

	return cmd
}

func generate(ctx context.Context, w io.Writer, flags generateFlags) error {
	printer, err := newPrinter(flags.Format)
	if err != nil {
		return err
	}

	logger, err := newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	g, err := newGenerator(logger, flags)
	if err != nil {
		return err
	}
	defer g.Close()

	if ctx == nil {
		ctx = context.Background()
	}

	if flags.Bulk {
		for left := flags.Count; left > 0; {
			ids, err := g.TryGenerateManyConsecutive(ctx, flags.Scope, flags.Sequence, left, gdid.Vicinity(flags.Vicinity))
			if err != nil {
				return err
			}
			for _, id := range ids {
				fmt.Fprintln(w, printer(id))
			}
			left -= len(ids)
		}
		return nil
	}

	hints := []gdid.Hint{gdid.BlockSize(flags.BlockSize), gdid.Vicinity(flags.Vicinity)}
	for i := 0; i < flags.Count; i++ {
		id, err := g.GenerateOne(ctx, flags.Scope, flags.Sequence, hints...)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, printer(id))
	}

	return nil
}

func newGenerator(logger *zap.Logger, flags generateFlags) (*gdid.Generator, error) {
	opts := []gdid.Option{gdid.WithLogger(logger)}

	var cfg *gdid.Config
	if globalFlags.Config != "" {
		c, err := gdid.LoadConfig(globalFlags.Config)
		if err != nil {
			return nil, err
		}
		cfg = c
		opts = append(opts, gdid.WithConfig(cfg))
	}

	for _, arg := range flags.Hosts {
		host, err := gdid.ParseHost(arg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, gdid.WithHosts(host))
	}

	switch {
	case flags.Local:
		authority, err := memory.New(memory.WithName("local"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, gdid.WithAccessor(authority), gdid.WithTransport(authority))
	case cfg != nil && cfg.AuthorityURL != "":
		opts = append(opts, gdid.WithAccessor(web.NewAccessor(cfg.AuthorityURL)))
	default:
		opts = append(opts, gdid.WithTransport(web.New()))
	}

	return gdid.New(opts...)
}

func newPrinter(format string) (func(gdid.GDID) string, error) {
	switch format {
	case "string":
		return gdid.String, nil
	case "triple":
		return func(id gdid.GDID) string { return id.Triple() }, nil
	case "id":
		return func(id gdid.GDID) string { return strconv.FormatUint(id.ID(), 10) }, nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
