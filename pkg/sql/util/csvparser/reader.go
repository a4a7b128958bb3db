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
	"encoding/hex"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/matrixorigin/mofilter/pkg/catalog"
	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/container/batch"
	"github.com/matrixorigin/mofilter/pkg/container/types"
	"github.com/matrixorigin/mofilter/pkg/container/vector"
)

// Reader decodes a CSV stream into blocks of at most blockSize rows. The
// first record is the header, see catalog.ParseSchema.
//
// BYTES cells are hex, with an optional 0x prefix. Multi-valued cells are
// kept as raw text in a VARCHAR vector.
type Reader struct {
	r         *csv.Reader
	schema    *catalog.Schema
	blockSize int
}

func NewReader(ctx context.Context, r io.Reader, blockSize int) (*Reader, error) {
	if blockSize <= 0 {
		return nil, moerr.NewInvalidArg(ctx, "block size", blockSize)
	}
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, moerr.NewInvalidInput(ctx, "missing csv header")
	}
	if err != nil {
		return nil, convertCSVError(ctx, err)
	}
	schema, err := catalog.ParseSchema(ctx, header)
	if err != nil {
		return nil, err
	}
	return &Reader{r: cr, schema: schema, blockSize: blockSize}, nil
}

func (r *Reader) Schema() *catalog.Schema {
	return r.schema
}

// Next returns the next block, or io.EOF once the input is drained.
func (r *Reader) Next(ctx context.Context) (*batch.Batch, error) {
	bat := batch.New(r.schema.Attrs())
	for i, col := range r.schema.Cols {
		bat.SetVector(int32(i), vector.NewVec(storageType(col)))
	}

	rows := 0
	for rows < r.blockSize {
		record, err := r.r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, convertCSVError(ctx, err)
		}
		line, _ := r.r.FieldPos(0)
		for i, col := range r.schema.Cols {
			if err := appendCell(ctx, bat.Vecs[i], col, record[i], line); err != nil {
				return nil, err
			}
		}
		rows++
	}
	if rows == 0 {
		return nil, io.EOF
	}
	bat.SetRowCount(rows)
	return bat, nil
}

func storageType(col *catalog.ColDef) types.Type {
	if !col.SingleValue {
		return types.T_varchar.ToType()
	}
	return col.Typ
}

func appendCell(ctx context.Context, vec *vector.Vector, col *catalog.ColDef, cell string, line int) error {
	if !col.SingleValue {
		return vector.AppendString(vec, cell)
	}

	oid := col.Typ.Oid
	switch {
	case oid.IsInteger():
		v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, int(col.Typ.Size)*8)
		if err != nil {
			return badCell(ctx, col, cell, line)
		}
		switch oid {
		case types.T_int8:
			return vector.AppendFixed(vec, int8(v))
		case types.T_int16:
			return vector.AppendFixed(vec, int16(v))
		case types.T_int32:
			return vector.AppendFixed(vec, int32(v))
		}
		return vector.AppendFixed(vec, v)
	case oid.IsFloat():
		v, err := strconv.ParseFloat(strings.TrimSpace(cell), int(col.Typ.Size)*8)
		if err != nil {
			return badCell(ctx, col, cell, line)
		}
		if oid == types.T_float32 {
			return vector.AppendFixed(vec, float32(v))
		}
		return vector.AppendFixed(vec, v)
	case oid.IsString():
		return vector.AppendString(vec, cell)
	case oid.IsBytes():
		text := strings.TrimPrefix(strings.TrimPrefix(cell, "0x"), "0X")
		bs, err := hex.DecodeString(text)
		if err != nil {
			return badCell(ctx, col, cell, line)
		}
		return vector.AppendBytes(vec, bs)
	}
	return moerr.NewInternalError(ctx, "column %s has unexpected type %s", col.Name, col.Typ)
}

func badCell(ctx context.Context, col *catalog.ColDef, cell string, line int) error {
	return moerr.NewInvalidInput(ctx, "line %d column %s: bad %s value '%s'", line, col.Name, col.Typ, cell)
}

func convertCSVError(ctx context.Context, err error) error {
	var perr *csv.ParseError
	if errors.As(err, &perr) {
		return moerr.NewInvalidInput(ctx, "line %d column %d: %s", perr.Line, perr.Column, perr.Err.Error())
	}
	return moerr.ConvertGoError(ctx, err)
}
