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
	"bytes"
	"time"

	"github.com/RoaringBitmap/roaring"

	"github.com/matrixorigin/mofilter/pkg/container/batch"
	"github.com/matrixorigin/mofilter/pkg/sql/plan/function/operator"
	v2 "github.com/matrixorigin/mofilter/pkg/util/metric/v2"
)

// Argument keeps the rows of a block that satisfy every predicate.
// It is not safe for concurrent use, the predicates own their result buffers.
type Argument struct {
	Preds []*operator.BinaryComparison
}

func NewArgument(preds []*operator.BinaryComparison) *Argument {
	return &Argument{Preds: preds}
}

func (arg *Argument) String(buf *bytes.Buffer) {
	buf.WriteString("σ(")
	for i, p := range arg.Preds {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		buf.WriteString(p.String())
	}
	buf.WriteString(")")
}

// Filter returns the rows of bat that satisfy all predicates. With no
// predicates every row is kept.
func (arg *Argument) Filter(bat *batch.Batch) *roaring.Bitmap {
	if bat.IsEmpty() {
		return roaring.New()
	}
	n := bat.RowCount()
	if len(arg.Preds) == 0 {
		bm := roaring.New()
		bm.AddRange(0, uint64(n))
		return bm
	}

	var bm *roaring.Bitmap
	for _, p := range arg.Preds {
		cur := toBitmap(p.Eval(bat))
		if bm == nil {
			bm = cur
		} else {
			bm.And(cur)
		}
		if bm.IsEmpty() {
			break
		}
	}
	return bm
}

// Call filters bat and records the block in the filter metrics.
func (arg *Argument) Call(bat *batch.Batch) *roaring.Bitmap {
	start := time.Now()
	bm := arg.Filter(bat)
	v2.FilterEvalDurationHistogram.Observe(time.Since(start).Seconds())

	kept := bm.GetCardinality()
	v2.FilterBlockCounter.Inc()
	v2.FilterInputRowCounter.Add(float64(bat.RowCount()))
	v2.FilterOutputRowCounter.Add(float64(kept))
	if kept == 0 {
		v2.FilterEmptyBlockCounter.Inc()
	}
	return bm
}

// Shrink drops the rows of bat missing from bm.
func Shrink(bat *batch.Batch, bm *roaring.Bitmap) {
	rows := bm.ToArray()
	sels := make([]int64, len(rows))
	for i, row := range rows {
		sels[i] = int64(row)
	}
	bat.Shrink(sels)
}

func (arg *Argument) Free() {
	for _, p := range arg.Preds {
		p.Free()
	}
}

// Mask expands bm into one 0/1 value per row.
func Mask(bm *roaring.Bitmap, n int, rs []int32) []int32 {
	if cap(rs) < n {
		rs = make([]int32, n)
	}
	rs = rs[:n]
	for i := range rs {
		rs[i] = 0
	}
	it := bm.Iterator()
	for it.HasNext() {
		rs[it.Next()] = 1
	}
	return rs
}

func toBitmap(rs []int32) *roaring.Bitmap {
	bm := roaring.New()
	for i, r := range rs {
		if r == 1 {
			bm.Add(uint32(i))
		}
	}
	return bm
}
