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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/container/types"
)

func TestAppend(t *testing.T) {
	v := NewVec(types.T_int32.ToType())
	for i := int32(0); i < 5; i++ {
		require.NoError(t, AppendFixed(v, i*10))
	}
	require.Equal(t, 5, v.Length())
	require.Equal(t, []int32{0, 10, 20, 30, 40}, MustFixedCol[int32](v))

	err := AppendFixed(v, int64(1))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))
	require.Error(t, AppendString(v, "x"))
	require.Error(t, AppendBytes(v, []byte("x")))

	s := NewVec(types.T_varchar.ToType())
	require.NoError(t, AppendString(s, "a"))
	require.NoError(t, AppendString(s, "b"))
	require.Equal(t, []string{"a", "b"}, MustStrCol(s))

	b := NewVec(types.T_blob.ToType())
	require.NoError(t, AppendBytes(b, []byte{0xff}))
	require.Equal(t, [][]byte{{0xff}}, MustBytesCol(b))
}

func TestNewVecPanics(t *testing.T) {
	require.Panics(t, func() { NewVec(types.T_any.ToType()) })
	require.Panics(t, func() { NewFixedVec(types.T_int64.ToType(), []int32{1}) })
	require.Panics(t, func() { NewStrVec(types.T_blob.ToType(), []string{"a"}) })
	require.Panics(t, func() { NewBytesVec(types.T_text.ToType(), [][]byte{{1}}) })
}

func TestToInt64s(t *testing.T) {
	v := NewFixedVec(types.T_int64.ToType(), []int64{1, 2, 3})
	got := ToInt64s(v, nil)
	require.Equal(t, []int64{1, 2, 3}, got)
	// BIGINT columns are not copied
	got[0] = 9
	require.Equal(t, int64(9), MustFixedCol[int64](v)[0])

	buf := make([]int64, 0, 8)
	w := NewFixedVec(types.T_int8.ToType(), []int8{-128, 0, 127})
	got = ToInt64s(w, buf)
	require.Equal(t, []int64{-128, 0, 127}, got)
	require.Equal(t, 8, cap(got))

	got = ToInt64s(NewFixedVec(types.T_int16.ToType(), []int16{-2, 300}), nil)
	require.Equal(t, []int64{-2, 300}, got)

	require.Panics(t, func() { ToInt64s(NewFixedVec(types.T_float64.ToType(), []float64{1}), nil) })
}

func TestToFloat64s(t *testing.T) {
	v := NewFixedVec(types.T_float32.ToType(), []float32{1.5, -2})
	require.Equal(t, []float64{1.5, -2}, ToFloat64s(v, nil))

	w := NewFixedVec(types.T_int32.ToType(), []int32{7, -7})
	require.Equal(t, []float64{7, -7}, ToFloat64s(w, make([]float64, 1)))

	x := NewFixedVec(types.T_float64.ToType(), []float64{0.25})
	require.Equal(t, []float64{0.25}, ToFloat64s(x, nil))

	require.Panics(t, func() { ToFloat64s(NewStrVec(types.T_varchar.ToType(), []string{"1"}), nil) })
}

func TestShrink(t *testing.T) {
	v := NewFixedVec(types.T_int64.ToType(), []int64{10, 11, 12, 13, 14})
	v.Shrink([]int64{1, 3, 4})
	require.Equal(t, 3, v.Length())
	require.Equal(t, []int64{11, 13, 14}, MustFixedCol[int64](v))

	s := NewStrVec(types.T_varchar.ToType(), []string{"a", "b", "c"})
	s.Shrink([]int64{2})
	require.Equal(t, []string{"c"}, MustStrCol(s))

	b := NewBytesVec(types.T_varbinary.ToType(), [][]byte{{1}, {2}})
	b.Shrink(nil)
	require.Equal(t, 0, b.Length())
	require.NoError(t, AppendBytes(b, []byte{3}))
	require.Equal(t, [][]byte{{3}}, MustBytesCol(b))
}

func TestValueString(t *testing.T) {
	require.Equal(t, "-3", NewFixedVec(types.T_int8.ToType(), []int8{-3}).ValueString(0))
	require.Equal(t, "2.5", NewFixedVec(types.T_float64.ToType(), []float64{2.5}).ValueString(0))
	require.Equal(t, "0.1", NewFixedVec(types.T_float32.ToType(), []float32{0.1}).ValueString(0))
	require.Equal(t, "abc", NewStrVec(types.T_text.ToType(), []string{"abc"}).ValueString(0))
	require.Equal(t, "00ff", NewBytesVec(types.T_binary.ToType(), [][]byte{{0, 0xff}}).ValueString(0))
}

func TestString(t *testing.T) {
	require.Equal(t, "[1 2]", NewFixedVec(types.T_int64.ToType(), []int64{1, 2}).String())
	require.Equal(t, "1", NewFixedVec(types.T_int64.ToType(), []int64{1}).String())
	require.Equal(t, "[a b]", NewStrVec(types.T_varchar.ToType(), []string{"a", "b"}).String())
	require.Equal(t, "[0a ff]", NewBytesVec(types.T_blob.ToType(), [][]byte{{0x0a}, {0xff}}).String())
}
