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

package plan

import (
	"context"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/mofilter/pkg/catalog"
	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/container/types"
	"github.com/matrixorigin/mofilter/pkg/sql/plan/function/operator"
	"github.com/matrixorigin/mofilter/pkg/testutil"
	v2 "github.com/matrixorigin/mofilter/pkg/util/metric/v2"
)

func testSchema(t *testing.T) *catalog.Schema {
	schema, err := catalog.ParseSchema(context.Background(),
		[]string{"a:bigint", "b:double", "s:varchar", "x:varbinary", "tags:varchar[]", "n:int"})
	require.NoError(t, err)
	return schema
}

func TestBuildPredicates(t *testing.T) {
	convey.Convey("test build conjunction", t, func() {
		preds, err := BuildPredicates(context.Background(), "a > 12 AND s = 'x' and b <= -1.5", testSchema(t))
		convey.So(err, convey.ShouldBeNil)
		convey.So(len(preds), convey.ShouldEqual, 3)

		convey.So(preds[0].Op(), convey.ShouldEqual, operator.GreatThan)
		convey.So(preds[0].ComparisonType(), convey.ShouldEqual, types.T_int64)
		convey.So(preds[0].String(), convey.ShouldEqual, "a > 12")

		convey.So(preds[1].Op(), convey.ShouldEqual, operator.Equal)
		convey.So(preds[1].ComparisonType(), convey.ShouldEqual, types.T_varchar)
		convey.So(preds[1].String(), convey.ShouldEqual, "s = 'x'")

		convey.So(preds[2].Op(), convey.ShouldEqual, operator.LessEqual)
		convey.So(preds[2].ComparisonType(), convey.ShouldEqual, types.T_float64)
	})

	convey.Convey("test symbol aliases", t, func() {
		preds, err := BuildPredicates(context.Background(), "a == 1 && a <> 2 AND a != 3 AND n >= a", testSchema(t))
		convey.So(err, convey.ShouldBeNil)
		convey.So(len(preds), convey.ShouldEqual, 4)
		convey.So(preds[0].Op(), convey.ShouldEqual, operator.Equal)
		convey.So(preds[1].Op(), convey.ShouldEqual, operator.NotEqual)
		convey.So(preds[2].Op(), convey.ShouldEqual, operator.NotEqual)
		convey.So(preds[3].Op(), convey.ShouldEqual, operator.GreatEqual)
		convey.So(preds[3].ComparisonType(), convey.ShouldEqual, types.T_int64)
	})

	convey.Convey("test function form", t, func() {
		preds, err := BuildPredicates(context.Background(), "less_than(a, 3) AND EQUALS(x, X'00ff')", testSchema(t))
		convey.So(err, convey.ShouldBeNil)
		convey.So(len(preds), convey.ShouldEqual, 2)
		convey.So(preds[0].Op(), convey.ShouldEqual, operator.LessThan)
		convey.So(preds[1].ComparisonType(), convey.ShouldEqual, types.T_varbinary)
	})

	convey.Convey("test quoted column and escaped string", t, func() {
		preds, err := BuildPredicates(context.Background(), "`S` = 'it''s'", testSchema(t))
		convey.So(err, convey.ShouldBeNil)
		convey.So(preds[0].Args()[1].Strings(nil), convey.ShouldResemble, []string{"it's"})
	})
}

func TestBuildPredicatesEval(t *testing.T) {
	preds, err := BuildPredicates(context.Background(), "a > 12", testSchema(t))
	require.NoError(t, err)

	bat := testutil.NewBatchWithVectors(
		testutil.MakeInt64Vector([]int64{5, 12, 20}),
		testutil.MakeFloat64Vector([]float64{0, 0, 0}),
	)
	require.Equal(t, []int32{0, 0, 1}, preds[0].Eval(bat))
}

func TestBuildPredicatesErrors(t *testing.T) {
	ctx := context.Background()
	schema := testSchema(t)

	cases := []struct {
		text string
		code uint16
	}{
		{"", moerr.ErrSyntaxError},
		{"a >", moerr.ErrSyntaxError},
		{"a > 1 AND", moerr.ErrSyntaxError},
		{"a > 1 b < 2", moerr.ErrSyntaxError},
		{"a # 1", moerr.ErrSyntaxError},
		{"s = 'open", moerr.ErrSyntaxError},
		{"a > 1e", moerr.ErrSyntaxError},
		{"a > 12abc", moerr.ErrSyntaxError},
		{"greater_than(a, 1", moerr.ErrSyntaxError},
		{"missing = 1", moerr.ErrBadFieldError},
		{"like(a, 1)", moerr.ErrSyntaxError},
		{"x = X'0g'", moerr.ErrInvalidInput},
		{"greater_than(a, 1, 2)", moerr.ErrArityMismatch},
		{"equals()", moerr.ErrArityMismatch},
		{"x = 'abc'", moerr.ErrTypeMismatch},
		{"a = 'abc'", moerr.ErrTypeMismatch},
		{"tags = 'x'", moerr.ErrMultiValueUnsupported},
	}
	for _, c := range cases {
		_, err := BuildPredicates(ctx, c.text, schema)
		require.Error(t, err, c.text)
		require.True(t, moerr.IsMoErrCode(err, c.code), "%s: %v", c.text, err)
	}
}

func TestBuildPredicatesBadField(t *testing.T) {
	_, err := BuildPredicates(context.Background(), "a > 1 AND zz = 2", testSchema(t))
	require.Equal(t, "Unknown column 'zz' in 'where clause'", err.Error())
}

func TestBuildPredicatesUnknownFunction(t *testing.T) {
	_, err := BuildPredicates(context.Background(), "a > 1 AND like(s, 'x')", testSchema(t))
	require.Equal(t, "SQL syntax error: unknown function like near 'like(s, 'x')' at position 10", err.Error())
}

func TestBuildPredicatesNonFinite(t *testing.T) {
	preds, err := BuildPredicates(context.Background(), "b != NaN AND b = nan AND a > -Inf AND b < infinity", testSchema(t))
	require.NoError(t, err)
	require.Len(t, preds, 4)
	for _, p := range preds {
		require.Equal(t, types.T_float64, p.ComparisonType(), p.String())
	}

	bat := testutil.NewBatchWithVectors(
		testutil.MakeInt64Vector([]int64{-5, 0, 7}),
		testutil.MakeFloat64Vector([]float64{-1.5, 0, 2}),
	)
	require.Equal(t, []int32{1, 1, 1}, preds[0].Eval(bat))
	require.Equal(t, []int32{0, 0, 0}, preds[1].Eval(bat))
	require.Equal(t, []int32{1, 1, 1}, preds[2].Eval(bat))
	require.Equal(t, []int32{1, 1, 1}, preds[3].Eval(bat))
}

func TestInitFailureMetrics(t *testing.T) {
	ctx := context.Background()
	schema := testSchema(t)

	arity := promtestutil.ToFloat64(v2.FilterArityFailureCounter)
	typ := promtestutil.ToFloat64(v2.FilterTypeFailureCounter)
	multi := promtestutil.ToFloat64(v2.FilterMultiValueFailureCounter)

	_, err := BuildPredicates(ctx, "equals(a)", schema)
	require.Error(t, err)
	_, err = BuildPredicates(ctx, "s < x", schema)
	require.Error(t, err)
	_, err = BuildPredicates(ctx, "not_equals(tags, s)", schema)
	require.Error(t, err)

	require.Equal(t, arity+1, promtestutil.ToFloat64(v2.FilterArityFailureCounter))
	require.Equal(t, typ+1, promtestutil.ToFloat64(v2.FilterTypeFailureCounter))
	require.Equal(t, multi+1, promtestutil.ToFloat64(v2.FilterMultiValueFailureCounter))
}

func TestLexer(t *testing.T) {
	lex := &lexer{ctx: context.Background(), src: " a>=.5e-3 AND X'ab' `c d` \"q\" -(,)"}
	toks, err := lex.tokens()
	require.NoError(t, err)

	kinds := make([]tokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.kind
	}
	require.Equal(t, []tokenKind{
		tokIdent, tokCmp, tokNumber, tokAnd, tokHex, tokIdent, tokString,
		tokMinus, tokLParen, tokComma, tokRParen, tokEOF,
	}, kinds)
	require.Equal(t, ".5e-3", toks[2].text)
	require.Equal(t, "ab", toks[4].text)
	require.Equal(t, "c d", toks[5].text)
	require.Equal(t, 1, toks[0].pos)

	lex = &lexer{ctx: context.Background(), src: "NaN inf Infinity nano `nan`"}
	toks, err = lex.tokens()
	require.NoError(t, err)
	kinds = kinds[:0]
	for _, tok := range toks {
		kinds = append(kinds, tok.kind)
	}
	require.Equal(t, []tokenKind{tokNumber, tokNumber, tokNumber, tokIdent, tokIdent, tokEOF}, kinds)
}
