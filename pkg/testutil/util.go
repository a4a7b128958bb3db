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

package testutil

import (
	"fmt"
	"math/rand"
	"strconv"

	"github.com/matrixorigin/mofilter/pkg/container/batch"
	"github.com/matrixorigin/mofilter/pkg/container/types"
	"github.com/matrixorigin/mofilter/pkg/container/vector"
)

func NewBatch(ts []types.Type, random bool, n int) *batch.Batch {
	bat := batch.NewWithSize(len(ts))
	bat.SetRowCount(n)
	for i := range bat.Vecs {
		bat.Vecs[i] = NewVector(n, ts[i], random)
	}
	return bat
}

func NewBatchWithVectors(vs ...*vector.Vector) *batch.Batch {
	bat := batch.NewWithSize(len(vs))
	if len(vs) > 0 {
		bat.SetRowCount(vs[0].Length())
		bat.Vecs = vs
	}
	return bat
}

// NewVector returns n values 0..n-1 of typ, or n random ones.
func NewVector(n int, typ types.Type, random bool) *vector.Vector {
	switch typ.Oid {
	case types.T_int8:
		return newFixedVector(n, typ, random, func(v int) int8 { return int8(v) })
	case types.T_int16:
		return newFixedVector(n, typ, random, func(v int) int16 { return int16(v) })
	case types.T_int32:
		return newFixedVector(n, typ, random, func(v int) int32 { return int32(v) })
	case types.T_int64:
		return newFixedVector(n, typ, random, func(v int) int64 { return int64(v) })
	case types.T_float32:
		return newFixedVector(n, typ, random, func(v int) float32 { return float32(v) / 2 })
	case types.T_float64:
		return newFixedVector(n, typ, random, func(v int) float64 { return float64(v) / 2 })
	case types.T_char, types.T_varchar, types.T_text:
		vec := vector.NewVec(typ)
		for i := 0; i < n; i++ {
			if err := vector.AppendString(vec, strconv.Itoa(value(i, random))); err != nil {
				panic(err)
			}
		}
		return vec
	case types.T_binary, types.T_varbinary, types.T_blob:
		vec := vector.NewVec(typ)
		for i := 0; i < n; i++ {
			if err := vector.AppendBytes(vec, []byte(strconv.Itoa(value(i, random)))); err != nil {
				panic(err)
			}
		}
		return vec
	default:
		panic(fmt.Errorf("unsupport vector's type '%v", typ))
	}
}

func value(i int, random bool) int {
	if random {
		return rand.Intn(1 << 20)
	}
	return i
}

func newFixedVector[T types.FixedSizeT](n int, typ types.Type, random bool, conv func(int) T) *vector.Vector {
	vec := vector.NewVec(typ)
	for i := 0; i < n; i++ {
		if err := vector.AppendFixed(vec, conv(value(i, random))); err != nil {
			panic(err)
		}
	}
	return vec
}

func MakeInt64Vector(vs []int64) *vector.Vector {
	return vector.NewFixedVec(types.T_int64.ToType(), vs)
}

func MakeInt32Vector(vs []int32) *vector.Vector {
	return vector.NewFixedVec(types.T_int32.ToType(), vs)
}

func MakeInt8Vector(vs []int8) *vector.Vector {
	return vector.NewFixedVec(types.T_int8.ToType(), vs)
}

func MakeFloat32Vector(vs []float32) *vector.Vector {
	return vector.NewFixedVec(types.T_float32.ToType(), vs)
}

func MakeFloat64Vector(vs []float64) *vector.Vector {
	return vector.NewFixedVec(types.T_float64.ToType(), vs)
}

func MakeVarcharVector(vs []string) *vector.Vector {
	return vector.NewStrVec(types.T_varchar.ToType(), vs)
}

func MakeVarbinaryVector(vs [][]byte) *vector.Vector {
	return vector.NewBytesVec(types.T_varbinary.ToType(), vs)
}
