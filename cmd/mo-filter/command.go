// Copyright 2022 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/config"
	"github.com/matrixorigin/mofilter/pkg/container/batch"
	"github.com/matrixorigin/mofilter/pkg/logutil"
	"github.com/matrixorigin/mofilter/pkg/sql/colexec/restrict"
	"github.com/matrixorigin/mofilter/pkg/sql/plan"
	"github.com/matrixorigin/mofilter/pkg/sql/util/csvparser"
	v2 "github.com/matrixorigin/mofilter/pkg/util/metric/v2"
)

const longHelp = `Read a CSV stream whose header declares name:type columns, keep the rows
matching every comparison of --where and print them, or print a 0/1 mask.`

type options struct {
	configFile string
	where      string
	output     string
	blockSize  int
	workers    int
	statusAddr string
}

func newRootCommand(stdin io.Reader, stdout io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "mo-filter [input.csv]",
		Short:         "Filter a typed CSV stream with comparison predicates",
		Long:          longHelp,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(ctx, cmd, opts)
			if err != nil {
				return err
			}

			in := stdin
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return moerr.ConvertGoError(ctx, err)
				}
				defer f.Close()
				in = f
			}
			return run(ctx, cfg, opts.where, in, stdout)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "toml configuration file")
	flags.StringVarP(&opts.where, "where", "w", "", "predicates joined by AND, e.g. \"a > 12 AND s = 'x'\"")
	flags.StringVarP(&opts.output, "output", "o", config.OutputRows, "output mode, rows or mask")
	flags.IntVar(&opts.blockSize, "block-size", 0, "rows per block, overrides filter.block-size")
	flags.IntVar(&opts.workers, "workers", 0, "concurrent blocks, overrides filter.workers")
	flags.StringVar(&opts.statusAddr, "status-addr", "", "serve prometheus metrics on this address")
	return cmd
}

// loadConfig reads the config file and applies the flags that were set.
func loadConfig(ctx context.Context, cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.LoadConfig(ctx, opts.configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Filter.Output = opts.output
	}
	if flags.Changed("block-size") {
		cfg.Filter.BlockSize = opts.blockSize
	}
	if flags.Changed("workers") {
		cfg.Filter.Workers = opts.workers
	}
	if flags.Changed("status-addr") {
		cfg.Observability.StatusAddress = opts.statusAddr
	}
	if err := cfg.Validate(ctx); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, where string, in io.Reader, out io.Writer) error {
	logutil.SetupMOLogger(&cfg.Log)
	ctx = logutil.WithQueryID(ctx, uuid.New().String())

	if addr := cfg.Observability.StatusAddress; addr != "" {
		stop := serveStatus(ctx, addr)
		defer stop()
	}

	reader, err := csvparser.NewReader(ctx, in, cfg.Filter.BlockSize)
	if err != nil {
		return err
	}
	schema := reader.Schema()

	runner, err := restrict.NewRunner(ctx, cfg.Filter.Workers, func(ctx context.Context) (*restrict.Argument, error) {
		if strings.TrimSpace(where) == "" {
			return restrict.NewArgument(nil), nil
		}
		preds, err := plan.BuildPredicates(ctx, where, schema)
		if err != nil {
			return nil, err
		}
		return restrict.NewArgument(preds), nil
	})
	if err != nil {
		return err
	}
	defer runner.Close()

	writer := csvparser.NewWriter(ctx, out)
	var sink restrict.Sink
	switch cfg.Filter.Output {
	case config.OutputMask:
		sink = writer.WriteMask
	default:
		if err := writer.WriteHeader(schema); err != nil {
			return err
		}
		sink = writer.WriteRows
	}

	var blocks, rows, kept uint64
	start := time.Now()
	err = runner.Run(ctx, reader, func(bat *batch.Batch, bm *roaring.Bitmap) error {
		blocks++
		rows += uint64(bat.RowCount())
		kept += bm.GetCardinality()
		return sink(bat, bm)
	})
	if ferr := writer.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		return err
	}

	logutil.Info("filter done",
		zap.String("where", where),
		zap.Uint64("blocks", blocks),
		zap.Uint64("rows", rows),
		zap.Uint64("kept", kept),
		zap.Duration("cost", time.Since(start)),
		logutil.GetContextFieldFunc()(ctx))
	return nil
}

func serveStatus(ctx context.Context, addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(v2.GetPrometheusGatherer(), promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logutil.Error("status server failed", zap.String("addr", addr), zap.Error(err))
		}
	}()
	logutil.Info("status server started", zap.String("addr", addr), logutil.GetContextFieldFunc()(ctx))
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}
}

// errorReport prints coded errors with their MySQL code and state.
func errorReport(err error) string {
	var me *moerr.Error
	if errors.As(err, &me) {
		return me.Report()
	}
	return err.Error()
}
