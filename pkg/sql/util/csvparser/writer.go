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

package csvparser

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/RoaringBitmap/roaring"

	"github.com/matrixorigin/mofilter/pkg/catalog"
	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/container/batch"
)

// Writer prints filter output, either the kept rows as CSV under the input
// header or one 0/1 line per input row.
type Writer struct {
	ctx    context.Context
	w      *csv.Writer
	record []string
}

func NewWriter(ctx context.Context, w io.Writer) *Writer {
	return &Writer{ctx: ctx, w: csv.NewWriter(w)}
}

func (w *Writer) WriteHeader(schema *catalog.Schema) error {
	header := make([]string, schema.Len())
	for i, col := range schema.Cols {
		header[i] = col.String()
	}
	return w.write(header)
}

// WriteRows prints the rows of bat in bm.
func (w *Writer) WriteRows(bat *batch.Batch, bm *roaring.Bitmap) error {
	it := bm.Iterator()
	for it.HasNext() {
		row := int(it.Next())
		w.record = w.record[:0]
		for _, vec := range bat.Vecs {
			w.record = append(w.record, vec.ValueString(row))
		}
		if err := w.write(w.record); err != nil {
			return err
		}
	}
	return nil
}

// WriteMask prints 1 for each row of bat in bm and 0 for the others.
func (w *Writer) WriteMask(bat *batch.Batch, bm *roaring.Bitmap) error {
	for i := 0; i < bat.RowCount(); i++ {
		v := 0
		if bm.Contains(uint32(i)) {
			v = 1
		}
		if err := w.write([]string{strconv.Itoa(v)}); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) Flush() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		return moerr.ConvertGoError(w.ctx, err)
	}
	return nil
}

func (w *Writer) write(record []string) error {
	if err := w.w.Write(record); err != nil {
		return moerr.ConvertGoError(w.ctx, err)
	}
	return nil
}
