// Copyright 2021 Matrix Origin
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

package restrict

import (
	"context"
	"io"

	"github.com/RoaringBitmap/roaring"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/container/batch"
	"github.com/matrixorigin/mofilter/pkg/logutil"
	v2 "github.com/matrixorigin/mofilter/pkg/util/metric/v2"
)

// Source yields blocks until it returns io.EOF.
type Source interface {
	Next(ctx context.Context) (*batch.Batch, error)
}

// Sink receives every block with the rows that passed, in source order.
type Sink func(bat *batch.Batch, bm *roaring.Bitmap) error

// Factory builds the Argument of one worker.
type Factory func(ctx context.Context) (*Argument, error)

type result struct {
	bat *batch.Batch
	bm  *roaring.Bitmap
	err error
}

// Runner filters blocks on a pool of workers, each with its own Argument.
type Runner struct {
	pool    *ants.Pool
	workers int
	args    chan *Argument
	all     []*Argument
}

func NewRunner(ctx context.Context, workers int, factory Factory) (*Runner, error) {
	if workers <= 0 {
		return nil, moerr.NewInvalidArg(ctx, "filter workers", workers)
	}
	pool, err := ants.NewPool(workers, ants.WithPanicHandler(func(v interface{}) {
		logutil.Error("filter worker panic", zap.Any("panic", v))
	}))
	if err != nil {
		return nil, moerr.ConvertGoError(ctx, err)
	}

	r := &Runner{
		pool:    pool,
		workers: workers,
		args:    make(chan *Argument, workers),
	}
	for i := 0; i < workers; i++ {
		arg, err := factory(ctx)
		if err != nil {
			r.Close()
			return nil, err
		}
		r.all = append(r.all, arg)
		r.args <- arg
	}
	return r, nil
}

func (r *Runner) Workers() int {
	return r.workers
}

// Run reads src to the end and hands each filtered block to sink. At most
// Workers blocks are in flight. It stops at the first error or when ctx is
// done.
func (r *Runner) Run(ctx context.Context, src Source, sink Sink) error {
	var pending []chan result

	drain := func() error {
		res := <-pending[0]
		pending = pending[1:]
		if res.err != nil {
			return res.err
		}
		return sink(res.bat, res.bm)
	}
	wait := func() {
		for _, ch := range pending {
			<-ch
		}
		pending = nil
	}

	for {
		select {
		case <-ctx.Done():
			wait()
			return ctx.Err()
		default:
		}

		for len(pending) >= r.Workers() {
			if err := drain(); err != nil {
				wait()
				return err
			}
		}

		bat, err := src.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			wait()
			return err
		}

		ch := make(chan result, 1)
		arg := <-r.args
		if err := r.pool.Submit(func() { r.filter(ctx, arg, bat, ch) }); err != nil {
			r.args <- arg
			wait()
			return moerr.ConvertGoError(ctx, err)
		}
		pending = append(pending, ch)
	}

	for len(pending) > 0 {
		if err := drain(); err != nil {
			wait()
			return err
		}
	}
	return nil
}

func (r *Runner) filter(ctx context.Context, arg *Argument, bat *batch.Batch, ch chan<- result) {
	v2.FilterRunnerWorkersGauge.Inc()
	defer v2.FilterRunnerWorkersGauge.Dec()
	defer func() {
		r.args <- arg
	}()
	defer func() {
		if e := recover(); e != nil {
			err := moerr.ConvertPanicError(ctx, e)
			logutil.Error("filter block failed",
				zap.Int("rows", bat.RowCount()),
				zap.Stringer("block", bat),
				zap.Error(err),
				logutil.GetContextFieldFunc()(ctx))
			ch <- result{err: err}
		}
	}()
	ch <- result{bat: bat, bm: arg.Call(bat)}
}

// Close releases the pool and the workers' predicates.
func (r *Runner) Close() {
	r.pool.Release()
	for _, arg := range r.all {
		arg.Free()
	}
	r.all = nil
}
