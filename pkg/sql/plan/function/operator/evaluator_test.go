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
	"math"
	"math/rand"
	"testing"

	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mofilter/pkg/catalog"
	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/container/types"
	"github.com/matrixorigin/mofilter/pkg/container/vector"
	"github.com/matrixorigin/mofilter/pkg/testutil"
)

var allOps = []OpType{Equal, NotEqual, GreatThan, GreatEqual, LessThan, LessEqual}

func column(pos int32, name string, oid types.T) *ColumnRef {
	return NewColumnRef(pos, catalog.ColDef{Name: name, Typ: oid.ToType(), SingleValue: true})
}

func mustBuild(t *testing.T, op OpType, args ...Operand) *BinaryComparison {
	bc, err := Build(context.Background(), op, args...)
	require.NoError(t, err)
	return bc
}

func TestLiteralBroadcast(t *testing.T) {
	convey.Convey("test column greater than literal", t, func() {
		bat := testutil.NewBatchWithVectors(testutil.MakeInt64Vector([]int64{5, 12, 20}))
		bc := mustBuild(t, GreatThan, column(0, "a", types.T_int64), NewInt64Literal(12))
		convey.So(bc.ComparisonType(), convey.ShouldEqual, types.T_int64)
		convey.So(bc.Eval(bat), convey.ShouldResemble, []int32{0, 0, 1})

		lt := mustBuild(t, LessThan, NewInt64Literal(12), column(0, "a", types.T_int64))
		convey.So(lt.Eval(bat), convey.ShouldResemble, []int32{0, 0, 1})
		convey.So(lt.String(), convey.ShouldEqual, "12 < a")
	})
}

func TestInitErrors(t *testing.T) {
	convey.Convey("test init validation", t, func() {
		ctx := context.Background()
		a := column(0, "a", types.T_int64)

		for _, args := range [][]Operand{nil, {a}, {a, a, a}} {
			err := New(GreatThan).Init(ctx, args)
			convey.So(moerr.IsMoErrCode(err, moerr.ErrArityMismatch), convey.ShouldBeTrue)
			convey.So(err.Error(), convey.ShouldContainSubstring, "greater_than")
		}

		s := column(0, "s", types.T_varchar)
		_, err := Build(ctx, Equal, s, NewBytesLiteral([]byte{0x61}))
		convey.So(moerr.IsMoErrCode(err, moerr.ErrTypeMismatch), convey.ShouldBeTrue)
		convey.So(err.Error(), convey.ShouldEqual, "function equals cannot compare VARCHAR with VARBINARY")

		// an unquoted number is not a string
		_, err = Build(ctx, Equal, s, NewInt64Literal(1))
		convey.So(moerr.IsMoErrCode(err, moerr.ErrTypeMismatch), convey.ShouldBeTrue)

		tags := NewColumnRef(1, catalog.ColDef{Name: "tags", Typ: types.T_varchar.ToType()})
		_, err = Build(ctx, Equal, s, tags)
		convey.So(moerr.IsMoErrCode(err, moerr.ErrMultiValueUnsupported), convey.ShouldBeTrue)
		convey.So(err.Error(), convey.ShouldContainSubstring, "tags")

		// arity is checked first
		err = New(Equal).Init(ctx, []Operand{tags})
		convey.So(moerr.IsMoErrCode(err, moerr.ErrArityMismatch), convey.ShouldBeTrue)

		err = New(OpType(9)).Init(ctx, []Operand{a, a})
		convey.So(moerr.IsMoErrCode(err, moerr.ErrInvalidArg), convey.ShouldBeTrue)
	})
}

func TestInitOnce(t *testing.T) {
	ctx := context.Background()
	a := column(0, "a", types.T_int64)

	bc := New(Equal)
	require.Error(t, bc.Init(ctx, []Operand{a}))
	require.Equal(t, types.T_any, bc.ComparisonType())
	// a failed init may be retried
	require.NoError(t, bc.Init(ctx, []Operand{a, NewInt64Literal(1)}))

	err := bc.Init(ctx, []Operand{a, NewInt64Literal(2)})
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidState))
	require.Equal(t, "1", bc.Args()[1].String())
	require.Equal(t, Equal, bc.Op())
	require.Equal(t, "equals", bc.Name())
}

func TestEvalBeforeInit(t *testing.T) {
	bat := testutil.NewBatchWithVectors(testutil.MakeInt64Vector([]int64{1}))
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(*moerr.Error)
		require.True(t, ok)
		require.Equal(t, moerr.ErrInvalidState, err.ErrorCode())
	}()
	New(LessEqual).Eval(bat)
}

func TestInt64Properties(t *testing.T) {
	const n = 1000
	xs := make([]int64, n)
	ys := make([]int64, n)
	for i := range xs {
		xs[i] = rand.Int63n(64) - 32
		ys[i] = rand.Int63n(64) - 32
	}
	xs[0], ys[0] = math.MinInt64, math.MaxInt64
	xs[1], ys[1] = math.MaxInt64, math.MaxInt64
	bat := testutil.NewBatchWithVectors(testutil.MakeInt64Vector(xs), testutil.MakeInt64Vector(ys))

	rs := make(map[OpType][]int32)
	for _, op := range allOps {
		bc := mustBuild(t, op, column(0, "x", types.T_int64), column(1, "y", types.T_int64))
		rs[op] = append([]int32(nil), bc.Eval(bat)...)
	}
	for i := range xs {
		x, y := xs[i], ys[i]
		require.Equal(t, b2i(x > y), rs[GreatThan][i])
		require.Equal(t, b2i(x >= y), rs[GreatEqual][i])
		require.Equal(t, b2i(x < y), rs[LessThan][i])
		require.Equal(t, b2i(x <= y), rs[LessEqual][i])
		require.Equal(t, b2i(x == y), rs[Equal][i])
		require.Equal(t, int32(1), rs[LessThan][i]+rs[Equal][i]+rs[GreatThan][i])
		require.Equal(t, 1-rs[Equal][i], rs[NotEqual][i])
		require.Equal(t, rs[GreatThan][i]|rs[Equal][i], rs[GreatEqual][i])
		require.Equal(t, rs[LessThan][i]|rs[Equal][i], rs[LessEqual][i])
	}
}

func b2i(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func TestNaN(t *testing.T) {
	convey.Convey("test NaN ordering", t, func() {
		nan := math.NaN()
		left := testutil.MakeFloat64Vector([]float64{nan, nan, nan, nan, 1})
		right := testutil.MakeFloat64Vector([]float64{nan, 0, math.Inf(1), math.Inf(-1), nan})
		bat := testutil.NewBatchWithVectors(left, right)

		for _, op := range allOps {
			want := int32(0)
			if op == NotEqual {
				want = 1
			}
			bc := mustBuild(t, op, column(0, "l", types.T_float64), column(1, "r", types.T_float64))
			convey.So(bc.Eval(bat), convey.ShouldResemble, []int32{want, want, want, want, want})

			lit := mustBuild(t, op, NewFloat64Literal(nan), column(1, "r", types.T_float64))
			convey.So(lit.Eval(bat), convey.ShouldResemble, []int32{want, want, want, want, want})

			both := mustBuild(t, op, NewFloat64Literal(nan), NewFloat64Literal(nan))
			convey.So(both.Eval(bat), convey.ShouldResemble, []int32{want, want, want, want, want})
		}
	})
}

func TestNumericPromotion(t *testing.T) {
	convey.Convey("test integer and float promotion", t, func() {
		bat := testutil.NewBatchWithVectors(
			testutil.MakeInt32Vector([]int32{1, 2, 3}),
			testutil.MakeFloat32Vector([]float32{1.5, 2, 2.5}),
			testutil.MakeInt8Vector([]int8{1, 2, 4}),
		)
		i32 := column(0, "i", types.T_int32)
		f32 := column(1, "f", types.T_float32)
		i8 := column(2, "t", types.T_int8)

		bc := mustBuild(t, GreatThan, i32, NewFloat64Literal(1.5))
		convey.So(bc.ComparisonType(), convey.ShouldEqual, types.T_float64)
		convey.So(bc.Eval(bat), convey.ShouldResemble, []int32{0, 1, 1})

		bc = mustBuild(t, Equal, i32, f32)
		convey.So(bc.ComparisonType(), convey.ShouldEqual, types.T_float64)
		convey.So(bc.Eval(bat), convey.ShouldResemble, []int32{0, 1, 0})

		bc = mustBuild(t, LessThan, i8, i32)
		convey.So(bc.ComparisonType(), convey.ShouldEqual, types.T_int64)
		convey.So(bc.Eval(bat), convey.ShouldResemble, []int32{0, 0, 0})

		bc = mustBuild(t, GreatEqual, f32, NewInt64Literal(2))
		convey.So(bc.Eval(bat), convey.ShouldResemble, []int32{0, 1, 1})
	})
}

func TestStringAndBytes(t *testing.T) {
	convey.Convey("test string and bytes ordering", t, func() {
		bat := testutil.NewBatchWithVectors(
			testutil.MakeVarcharVector([]string{"a", "b", "ab", ""}),
			testutil.MakeVarbinaryVector([][]byte{{0x00}, {0x61}, {0xff, 0x00}, {}}),
		)
		s := column(0, "s", types.T_varchar)
		b := column(1, "b", types.T_varbinary)

		gt := mustBuild(t, GreatThan, s, NewStringLiteral("a"))
		convey.So(gt.ComparisonType(), convey.ShouldEqual, types.T_varchar)
		convey.So(gt.Eval(bat), convey.ShouldResemble, []int32{0, 1, 1, 0})

		convey.So(mustBuild(t, GreatThan, NewStringLiteral("b"), NewStringLiteral("a")).Eval(bat), convey.ShouldResemble, []int32{1, 1, 1, 1})
		convey.So(mustBuild(t, GreatThan, NewStringLiteral("a"), NewStringLiteral("a")).Eval(bat), convey.ShouldResemble, []int32{0, 0, 0, 0})

		le := mustBuild(t, LessEqual, b, NewBytesLiteral([]byte{0x61}))
		convey.So(le.ComparisonType(), convey.ShouldEqual, types.T_varbinary)
		convey.So(le.Eval(bat), convey.ShouldResemble, []int32{1, 1, 0, 1})

		ne := mustBuild(t, NotEqual, s, s)
		convey.So(ne.Eval(bat), convey.ShouldResemble, []int32{0, 0, 0, 0})
	})
}

func TestEvalBuffer(t *testing.T) {
	bc := mustBuild(t, Equal, column(0, "a", types.T_int64), NewInt64Literal(2))

	big := testutil.NewBatchWithVectors(testutil.MakeInt64Vector([]int64{1, 2, 3, 2}))
	rs := bc.Eval(big)
	require.Len(t, rs, big.RowCount())
	first := append([]int32(nil), rs...)
	require.Equal(t, []int32{0, 1, 0, 1}, first)

	// same block, same answer
	require.Equal(t, first, bc.Eval(big))

	small := testutil.NewBatchWithVectors(testutil.MakeInt64Vector([]int64{2, 5}))
	rs2 := bc.Eval(small)
	require.Equal(t, []int32{1, 0}, rs2)
	require.Same(t, &rs[0], &rs2[0])

	grown := testutil.NewBatchWithVectors(testutil.NewVector(8, types.T_int64.ToType(), false))
	rs3 := bc.Eval(grown)
	require.Len(t, rs3, 8)
	require.Equal(t, []int32{0, 0, 1, 0, 0, 0, 0, 0}, rs3)

	empty := testutil.NewBatchWithVectors(testutil.MakeInt64Vector([]int64{}))
	require.Len(t, bc.Eval(empty), 0)

	bc.Free()
	require.Equal(t, []int32{1}, bc.Eval(testutil.NewBatchWithVectors(testutil.MakeInt64Vector([]int64{2}))))
}

func TestColumnRefPromotionBuffer(t *testing.T) {
	c := column(0, "i", types.T_int16)
	bat := testutil.NewBatchWithVectors(vector.NewFixedVec(types.T_int16.ToType(), []int16{1, 2, 3}))
	xs := c.Int64s(bat)
	require.Equal(t, []int64{1, 2, 3}, xs)
	ys := c.Int64s(bat)
	require.Same(t, &xs[0], &ys[0])
	require.Equal(t, []float64{1, 2, 3}, c.Float64s(bat))
	require.Equal(t, int32(0), c.Pos())
	require.False(t, c.IsConstant())
}

func TestParseLiteral(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		text   string
		quoted bool
		typ    types.T
		str    string
	}{
		{text: "12", typ: types.T_int64, str: "12"},
		{text: "-7", typ: types.T_int64, str: "-7"},
		{text: "1.5", typ: types.T_float64, str: "1.5"},
		{text: "1e3", typ: types.T_float64, str: "1000"},
		{text: "NaN", typ: types.T_float64, str: "NaN"},
		{text: "12", quoted: true, typ: types.T_varchar, str: "'12'"},
		{text: "it's", quoted: true, typ: types.T_varchar, str: "'it''s'"},
	}
	for _, tt := range tests {
		l, err := ParseLiteral(ctx, tt.text, tt.quoted)
		require.NoError(t, err, tt.text)
		require.Equal(t, tt.typ, l.Type().Oid, tt.text)
		require.Equal(t, tt.str, l.String())
		require.True(t, l.IsConstant())
		require.True(t, l.IsSingleValued())
	}

	_, err := ParseLiteral(ctx, "abc", false)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))

	l, err := ParseHexLiteral(ctx, "00ff")
	require.NoError(t, err)
	require.Equal(t, [][]byte{{0x00, 0xff}}, l.Bytes(nil))
	require.Equal(t, "X'00ff'", l.String())
	_, err = ParseHexLiteral(ctx, "0g")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidInput))

	// a literal only answers for its own kind, and integers widen
	i := NewInt64Literal(3)
	require.Equal(t, []float64{3}, i.Float64s(nil))
	require.Panics(t, func() { i.Strings(nil) })
	require.Panics(t, func() { NewStringLiteral("x").Int64s(nil) })
	require.Panics(t, func() { NewFloat64Literal(1).Int64s(nil) })
	require.Panics(t, func() { NewBytesLiteral(nil).Float64s(nil) })
}
