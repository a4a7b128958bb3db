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

package compare

import (
	"bytes"
	"strings"

	"golang.org/x/exp/constraints"
)

// Sign is the outcome of a three-way comparison.
type Sign int8

const (
	Less    Sign = -1
	Equal   Sign = 0
	Greater Sign = 1
	// Unordered is the outcome when either side is NaN.
	Unordered Sign = 2
)

func (s Sign) String() string {
	switch s {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	case Unordered:
		return "unordered"
	}
	return "invalid"
}

// Table maps each Sign to 0 or 1, indexed by sign+1.
type Table [4]int32

func (t *Table) Of(s Sign) int32 {
	return t[s+1]
}

type Orderable interface {
	constraints.Integer | ~string
}

// Ordered is the total order of integers and strings.
func Ordered[T Orderable](a, b T) Sign {
	if a < b {
		return Less
	}
	if a > b {
		return Greater
	}
	return Equal
}

// Float is IEEE-754 ordering, NaN on either side is Unordered.
func Float[T constraints.Float](a, b T) Sign {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	case a == b:
		return Equal
	}
	return Unordered
}

func Int64(a, b int64) Sign {
	return Ordered(a, b)
}

// Float64 never returns Equal for NaN, not even against itself.
func Float64(a, b float64) Sign {
	return Float(a, b)
}

// String orders byte-wise on the UTF-8 encoding.
func String(a, b string) Sign {
	return Sign(strings.Compare(a, b))
}

func Bytes(a, b []byte) Sign {
	return Sign(bytes.Compare(a, b))
}

// Compare writes tbl.Of(cmp(xs[i], ys[i])) into rs[i], len(rs) must be len(xs).
func Compare[T any](xs, ys []T, cmp func(T, T) Sign, tbl *Table, rs []int32) []int32 {
	ys = ys[:len(xs)]
	for i, x := range xs {
		rs[i] = tbl.Of(cmp(x, ys[i]))
	}
	return rs
}

// CompareScalarLeft compares a constant x with every ys[i].
func CompareScalarLeft[T any](x T, ys []T, cmp func(T, T) Sign, tbl *Table, rs []int32) []int32 {
	for i, y := range ys {
		rs[i] = tbl.Of(cmp(x, y))
	}
	return rs
}

// CompareScalarRight compares every xs[i] with a constant y.
func CompareScalarRight[T any](xs []T, y T, cmp func(T, T) Sign, tbl *Table, rs []int32) []int32 {
	for i, x := range xs {
		rs[i] = tbl.Of(cmp(x, y))
	}
	return rs
}

// CompareScalar fills rs with the single outcome of cmp(x, y).
func CompareScalar[T any](x, y T, cmp func(T, T) Sign, tbl *Table, rs []int32) []int32 {
	r := tbl.Of(cmp(x, y))
	for i := range rs {
		rs[i] = r
	}
	return rs
}
