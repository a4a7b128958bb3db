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

	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/container/batch"
	"github.com/matrixorigin/mofilter/pkg/container/types"
	"github.com/matrixorigin/mofilter/pkg/vectorize/compare"
)

const binaryArity = 2

// fillFn writes one 0/1 result per row of bat into rs.
type fillFn func(bat *batch.Batch, rs []int32) []int32

// BinaryComparison evaluates `left op right` over blocks.
//
// Init must succeed exactly once before Eval is called. An instance is not
// safe for concurrent use, give each goroutine its own.
type BinaryComparison struct {
	op   OpType
	tbl  *compare.Table
	args []Operand
	typ  types.T
	fill fillFn

	// rs is reused by every Eval
	rs []int32
}

func New(op OpType) *BinaryComparison {
	return &BinaryComparison{op: op}
}

// Build returns an initialized comparison of args.
func Build(ctx context.Context, op OpType, args ...Operand) (*BinaryComparison, error) {
	bc := New(op)
	if err := bc.Init(ctx, args); err != nil {
		return nil, err
	}
	return bc, nil
}

// Init validates args and binds the comparison kernel. It checks arity, then
// that every operand is single-valued, then resolves the comparison type.
func (bc *BinaryComparison) Init(ctx context.Context, args []Operand) error {
	if bc.fill != nil {
		return moerr.NewInvalidState(ctx, "function %s is already initialized", bc.op.Name())
	}
	if !bc.op.Valid() {
		return moerr.NewInvalidArg(ctx, "comparison operator", int(bc.op))
	}
	if len(args) != binaryArity {
		return moerr.NewArityMismatch(ctx, bc.op.Name(), binaryArity, len(args))
	}
	for _, arg := range args {
		if !arg.IsSingleValued() {
			return moerr.NewMultiValueUnsupported(ctx, bc.op.Name(), arg.String())
		}
	}
	typ, err := ResolveComparisonType(ctx, bc.op, args[0].Type(), args[1].Type())
	if err != nil {
		return err
	}

	bc.args = []Operand{args[0], args[1]}
	bc.typ = typ
	bc.tbl = bc.op.Table()
	bc.fill = bindKernel(typ, args[0], args[1], bc.tbl)
	return nil
}

// Eval returns one 0/1 value per row of bat. The slice is owned by bc and
// overwritten by the next call, copy it to keep it.
func (bc *BinaryComparison) Eval(bat *batch.Batch) []int32 {
	if bc.fill == nil {
		panic(moerr.NewInvalidStateNoCtx("function %s evaluated before init", bc.op.Name()))
	}
	n := bat.RowCount()
	if cap(bc.rs) < n {
		bc.rs = make([]int32, n)
	}
	return bc.fill(bat, bc.rs[:n])
}

// Free drops the result buffer.
func (bc *BinaryComparison) Free() {
	bc.rs = nil
}

func (bc *BinaryComparison) Name() string {
	return bc.op.Name()
}

func (bc *BinaryComparison) Op() OpType {
	return bc.op
}

// ComparisonType is T_any until Init succeeds.
func (bc *BinaryComparison) ComparisonType() types.T {
	return bc.typ
}

func (bc *BinaryComparison) Args() []Operand {
	return bc.args
}

func (bc *BinaryComparison) String() string {
	if len(bc.args) != binaryArity {
		return bc.op.Name() + "()"
	}
	return bc.args[0].String() + " " + bc.op.Symbol() + " " + bc.args[1].String()
}

func bindKernel(typ types.T, left, right Operand, tbl *compare.Table) fillFn {
	switch typ {
	case types.T_int64:
		return bindTyped(left, right, Operand.Int64s, compare.Int64, tbl)
	case types.T_float64:
		return bindTyped(left, right, Operand.Float64s, compare.Float64, tbl)
	case types.T_varchar:
		return bindTyped(left, right, Operand.Strings, compare.String, tbl)
	case types.T_varbinary:
		return bindTyped(left, right, Operand.Bytes, compare.Bytes, tbl)
	}
	panic(moerr.NewInternalErrorNoCtx("no comparison kernel for %s", typ))
}

// bindTyped picks the kernel for the constness of each side, once.
func bindTyped[T any](
	left, right Operand,
	values func(Operand, *batch.Batch) []T,
	cmp func(T, T) compare.Sign,
	tbl *compare.Table) fillFn {
	lc, rc := left.IsConstant(), right.IsConstant()
	switch {
	case lc && rc:
		return func(bat *batch.Batch, rs []int32) []int32 {
			return compare.CompareScalar(values(left, bat)[0], values(right, bat)[0], cmp, tbl, rs)
		}
	case lc:
		return func(bat *batch.Batch, rs []int32) []int32 {
			return compare.CompareScalarLeft(values(left, bat)[0], values(right, bat)[:len(rs)], cmp, tbl, rs)
		}
	case rc:
		return func(bat *batch.Batch, rs []int32) []int32 {
			return compare.CompareScalarRight(values(left, bat)[:len(rs)], values(right, bat)[0], cmp, tbl, rs)
		}
	default:
		return func(bat *batch.Batch, rs []int32) []int32 {
			return compare.Compare(values(left, bat)[:len(rs)], values(right, bat)[:len(rs)], cmp, tbl, rs)
		}
	}
}
