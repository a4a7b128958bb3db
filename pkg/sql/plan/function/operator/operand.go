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

package operator

import (
	"context"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/matrixorigin/mofilter/pkg/catalog"
	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/container/batch"
	"github.com/matrixorigin/mofilter/pkg/container/types"
	"github.com/matrixorigin/mofilter/pkg/container/vector"
)

// Operand supplies one side of a comparison, block by block.
//
// A column returns one value per row of bat, a constant returns a single
// value whatever the block. Only the accessor matching the resolved
// comparison type is called. Returned slices are read-only and valid until
// the next call. Null markers are the value source's business, the values
// are compared as given.
type Operand interface {
	String() string
	Type() types.Type
	IsSingleValued() bool
	IsConstant() bool

	Int64s(bat *batch.Batch) []int64
	Float64s(bat *batch.Batch) []float64
	Strings(bat *batch.Batch) []string
	Bytes(bat *batch.Batch) [][]byte
}

var _ Operand = new(ColumnRef)
var _ Operand = new(Literal)

// ColumnRef reads column pos of each block.
type ColumnRef struct {
	pos int32
	def catalog.ColDef

	// promotion buffers for columns narrower than the comparison type
	i64s []int64
	f64s []float64
}

func NewColumnRef(pos int32, def catalog.ColDef) *ColumnRef {
	return &ColumnRef{pos: pos, def: def}
}

func (c *ColumnRef) String() string       { return c.def.Name }
func (c *ColumnRef) Type() types.Type     { return c.def.Typ }
func (c *ColumnRef) IsSingleValued() bool { return c.def.SingleValue }
func (c *ColumnRef) IsConstant() bool     { return false }
func (c *ColumnRef) Pos() int32           { return c.pos }

func (c *ColumnRef) Int64s(bat *batch.Batch) []int64 {
	vec := bat.GetVector(c.pos)
	if vec.GetType().Oid == types.T_int64 {
		return vector.MustFixedCol[int64](vec)
	}
	c.i64s = vector.ToInt64s(vec, c.i64s)
	return c.i64s
}

func (c *ColumnRef) Float64s(bat *batch.Batch) []float64 {
	vec := bat.GetVector(c.pos)
	if vec.GetType().Oid == types.T_float64 {
		return vector.MustFixedCol[float64](vec)
	}
	c.f64s = vector.ToFloat64s(vec, c.f64s)
	return c.f64s
}

func (c *ColumnRef) Strings(bat *batch.Batch) []string {
	return vector.MustStrCol(bat.GetVector(c.pos))
}

func (c *ColumnRef) Bytes(bat *batch.Batch) [][]byte {
	return vector.MustBytesCol(bat.GetVector(c.pos))
}

// Literal is a constant broadcast over every row.
type Literal struct {
	typ  types.Type
	text string

	i64 []int64
	f64 []float64
	str []string
	bs  [][]byte
}

func NewInt64Literal(v int64) *Literal {
	return &Literal{
		typ:  types.T_int64.ToType(),
		text: strconv.FormatInt(v, 10),
		i64:  []int64{v},
		f64:  []float64{float64(v)},
	}
}

func NewFloat64Literal(v float64) *Literal {
	return &Literal{
		typ:  types.T_float64.ToType(),
		text: strconv.FormatFloat(v, 'g', -1, 64),
		f64:  []float64{v},
	}
}

func NewStringLiteral(v string) *Literal {
	return &Literal{
		typ:  types.T_varchar.ToType(),
		text: "'" + strings.ReplaceAll(v, "'", "''") + "'",
		str:  []string{v},
	}
}

func NewBytesLiteral(v []byte) *Literal {
	return &Literal{
		typ:  types.T_varbinary.ToType(),
		text: "X'" + hex.EncodeToString(v) + "'",
		bs:   [][]byte{v},
	}
}

// ParseLiteral infers a literal from its source text. Quoted text is a
// string, unquoted text is an integer if it parses as one, else a double.
func ParseLiteral(ctx context.Context, text string, quoted bool) (*Literal, error) {
	if quoted {
		return NewStringLiteral(text), nil
	}
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		return NewInt64Literal(v), nil
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		return NewFloat64Literal(v), nil
	}
	return nil, moerr.NewInvalidInput(ctx, "'%s' is not a numeric literal, quote it to compare as a string", text)
}

// ParseHexLiteral decodes the body of an X'..' literal.
func ParseHexLiteral(ctx context.Context, text string) (*Literal, error) {
	bs, err := hex.DecodeString(text)
	if err != nil {
		return nil, moerr.NewInvalidInput(ctx, "bad hex literal X'%s'", text)
	}
	return NewBytesLiteral(bs), nil
}

func (l *Literal) String() string       { return l.text }
func (l *Literal) Type() types.Type     { return l.typ }
func (l *Literal) IsSingleValued() bool { return true }
func (l *Literal) IsConstant() bool     { return true }

func (l *Literal) Int64s(*batch.Batch) []int64 {
	if l.i64 == nil {
		panic(l.noValue(types.T_int64))
	}
	return l.i64
}

func (l *Literal) Float64s(*batch.Batch) []float64 {
	if l.f64 == nil {
		panic(l.noValue(types.T_float64))
	}
	return l.f64
}

func (l *Literal) Strings(*batch.Batch) []string {
	if l.str == nil {
		panic(l.noValue(types.T_varchar))
	}
	return l.str
}

func (l *Literal) Bytes(*batch.Batch) [][]byte {
	if l.bs == nil {
		panic(l.noValue(types.T_varbinary))
	}
	return l.bs
}

func (l *Literal) noValue(want types.T) *moerr.Error {
	return moerr.NewInternalErrorNoCtx("%s literal %s read as %s", l.typ, l.text, want)
}
