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

package vector

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/container/types"
)

// Vector represent a column
type Vector struct {
	// type represent the type of column
	typ types.Type

	// col is []int8 ... []float64 for fixed length types, []string for the
	// string family and [][]byte for the bytes family.
	col any

	length int
}

func (v *Vector) Length() int {
	return v.length
}

func (v *Vector) GetType() *types.Type {
	return &v.typ
}

func NewVec(typ types.Type) *Vector {
	vec := &Vector{typ: typ}
	switch typ.Oid {
	case types.T_int8:
		vec.col = []int8{}
	case types.T_int16:
		vec.col = []int16{}
	case types.T_int32:
		vec.col = []int32{}
	case types.T_int64:
		vec.col = []int64{}
	case types.T_float32:
		vec.col = []float32{}
	case types.T_float64:
		vec.col = []float64{}
	case types.T_char, types.T_varchar, types.T_text:
		vec.col = []string{}
	case types.T_binary, types.T_varbinary, types.T_blob:
		vec.col = [][]byte{}
	default:
		panic(moerr.NewInternalErrorNoCtx("unexpect type %s for function vector.NewVec", typ))
	}
	return vec
}

// NewFixedVec returns a vector holding vs, which must match typ.
func NewFixedVec[T types.FixedSizeT](typ types.Type, vs []T) *Vector {
	vec := NewVec(typ)
	if _, ok := vec.col.([]T); !ok {
		panic(moerr.NewInternalErrorNoCtx("vector of type %s cannot hold %T", typ, vs))
	}
	vec.col = vs
	vec.length = len(vs)
	return vec
}

func NewStrVec(typ types.Type, vs []string) *Vector {
	if !typ.IsString() {
		panic(moerr.NewInternalErrorNoCtx("vector of type %s cannot hold strings", typ))
	}
	return &Vector{typ: typ, col: vs, length: len(vs)}
}

func NewBytesVec(typ types.Type, vs [][]byte) *Vector {
	if !typ.IsBytes() {
		panic(moerr.NewInternalErrorNoCtx("vector of type %s cannot hold bytes", typ))
	}
	return &Vector{typ: typ, col: vs, length: len(vs)}
}

func AppendFixed[T types.FixedSizeT](v *Vector, val T) error {
	vs, ok := v.col.([]T)
	if !ok {
		return moerr.NewInternalErrorNoCtx("append %T to vector of type %s", val, v.typ)
	}
	v.col = append(vs[:v.length], val)
	v.length++
	return nil
}

func AppendString(v *Vector, val string) error {
	vs, ok := v.col.([]string)
	if !ok {
		return moerr.NewInternalErrorNoCtx("append string to vector of type %s", v.typ)
	}
	v.col = append(vs[:v.length], val)
	v.length++
	return nil
}

func AppendBytes(v *Vector, val []byte) error {
	vs, ok := v.col.([][]byte)
	if !ok {
		return moerr.NewInternalErrorNoCtx("append bytes to vector of type %s", v.typ)
	}
	v.col = append(vs[:v.length], val)
	v.length++
	return nil
}

func MustFixedCol[T types.FixedSizeT](v *Vector) []T {
	return v.col.([]T)[:v.length]
}

func MustStrCol(v *Vector) []string {
	return v.col.([]string)[:v.length]
}

func MustBytesCol(v *Vector) [][]byte {
	return v.col.([][]byte)[:v.length]
}

// ToInt64s returns the column as int64s. A BIGINT column is returned as is,
// narrower integers are widened into buf, which grows when it is too small.
func ToInt64s(v *Vector, buf []int64) []int64 {
	switch v.typ.Oid {
	case types.T_int64:
		return MustFixedCol[int64](v)
	case types.T_int32:
		return widen(MustFixedCol[int32](v), buf)
	case types.T_int16:
		return widen(MustFixedCol[int16](v), buf)
	case types.T_int8:
		return widen(MustFixedCol[int8](v), buf)
	}
	panic(moerr.NewInternalErrorNoCtx("cannot decode %s vector as BIGINT", v.typ))
}

// ToFloat64s is ToInt64s for DOUBLE, any numeric column is accepted.
func ToFloat64s(v *Vector, buf []float64) []float64 {
	switch v.typ.Oid {
	case types.T_float64:
		return MustFixedCol[float64](v)
	case types.T_float32:
		return widen(MustFixedCol[float32](v), buf)
	case types.T_int64:
		return widen(MustFixedCol[int64](v), buf)
	case types.T_int32:
		return widen(MustFixedCol[int32](v), buf)
	case types.T_int16:
		return widen(MustFixedCol[int16](v), buf)
	case types.T_int8:
		return widen(MustFixedCol[int8](v), buf)
	}
	panic(moerr.NewInternalErrorNoCtx("cannot decode %s vector as DOUBLE", v.typ))
}

func widen[F, T types.Number](xs []F, buf []T) []T {
	if cap(buf) < len(xs) {
		buf = make([]T, len(xs))
	}
	buf = buf[:len(xs)]
	for i, x := range xs {
		buf[i] = T(x)
	}
	return buf
}

// Shrink use to shrink vectors, sels must be guaranteed to be ordered
func (v *Vector) Shrink(sels []int64) {
	switch v.typ.Oid {
	case types.T_int8:
		shrinkCol[int8](v, sels)
	case types.T_int16:
		shrinkCol[int16](v, sels)
	case types.T_int32:
		shrinkCol[int32](v, sels)
	case types.T_int64:
		shrinkCol[int64](v, sels)
	case types.T_float32:
		shrinkCol[float32](v, sels)
	case types.T_float64:
		shrinkCol[float64](v, sels)
	case types.T_char, types.T_varchar, types.T_text:
		shrinkCol[string](v, sels)
	case types.T_binary, types.T_varbinary, types.T_blob:
		shrinkCol[[]byte](v, sels)
	default:
		panic(fmt.Sprintf("unexpect type %s for function vector.Shrink", v.typ))
	}
	v.length = len(sels)
}

func shrinkCol[T any](v *Vector, sels []int64) {
	vs := v.col.([]T)
	for i, sel := range sels {
		vs[i] = vs[sel]
	}
}

// ValueString formats row i the way the csv reader parses it back.
func (v *Vector) ValueString(i int) string {
	switch v.typ.Oid {
	case types.T_int8:
		return strconv.FormatInt(int64(MustFixedCol[int8](v)[i]), 10)
	case types.T_int16:
		return strconv.FormatInt(int64(MustFixedCol[int16](v)[i]), 10)
	case types.T_int32:
		return strconv.FormatInt(int64(MustFixedCol[int32](v)[i]), 10)
	case types.T_int64:
		return strconv.FormatInt(MustFixedCol[int64](v)[i], 10)
	case types.T_float32:
		return strconv.FormatFloat(float64(MustFixedCol[float32](v)[i]), 'g', -1, 32)
	case types.T_float64:
		return strconv.FormatFloat(MustFixedCol[float64](v)[i], 'g', -1, 64)
	case types.T_char, types.T_varchar, types.T_text:
		return MustStrCol(v)[i]
	case types.T_binary, types.T_varbinary, types.T_blob:
		return hex.EncodeToString(MustBytesCol(v)[i])
	}
	panic(fmt.Sprintf("unexpect type %s for function vector.ValueString", v.typ))
}

// String function is used to visually display the vector,
// which is used to implement the Printf interface
func (v *Vector) String() string {
	switch v.typ.Oid {
	case types.T_int8:
		return vecToString[int8](v)
	case types.T_int16:
		return vecToString[int16](v)
	case types.T_int32:
		return vecToString[int32](v)
	case types.T_int64:
		return vecToString[int64](v)
	case types.T_float32:
		return vecToString[float32](v)
	case types.T_float64:
		return vecToString[float64](v)
	case types.T_char, types.T_varchar, types.T_text:
		col := MustStrCol(v)
		if len(col) == 1 {
			return col[0]
		}
		return fmt.Sprintf("%v", col)
	case types.T_binary, types.T_varbinary, types.T_blob:
		return fmt.Sprintf("%x", MustBytesCol(v))
	default:
		panic("vec to string unknown types.")
	}
}

func vecToString[T types.FixedSizeT](v *Vector) string {
	col := MustFixedCol[T](v)
	if len(col) == 1 {
		return fmt.Sprintf("%v", col[0])
	}
	return fmt.Sprintf("%v", col)
}
