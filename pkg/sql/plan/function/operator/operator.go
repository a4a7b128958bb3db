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
	"strings"

	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/vectorize/compare"
)

// OpType is one of the six comparison operators.
type OpType int8

const (
	Equal OpType = iota
	NotEqual
	GreatThan
	GreatEqual
	LessThan
	LessEqual
)

// Columns are less, equal, greater, unordered. Only NotEqual holds for NaN.
var opTables = [...]compare.Table{
	Equal:      {0, 1, 0, 0},
	NotEqual:   {1, 0, 1, 1},
	GreatThan:  {0, 0, 1, 0},
	GreatEqual: {0, 1, 1, 0},
	LessThan:   {1, 0, 0, 0},
	LessEqual:  {1, 1, 0, 0},
}

var opNames = [...]string{
	Equal:      "equals",
	NotEqual:   "not_equals",
	GreatThan:  "greater_than",
	GreatEqual: "greater_than_or_equal",
	LessThan:   "less_than",
	LessEqual:  "less_than_or_equal",
}

var opSymbols = [...]string{
	Equal:      "=",
	NotEqual:   "!=",
	GreatThan:  ">",
	GreatEqual: ">=",
	LessThan:   "<",
	LessEqual:  "<=",
}

var opLookup = map[string]OpType{
	"==": Equal,
	"<>": NotEqual,
}

func init() {
	for op := range opNames {
		opLookup[opNames[op]] = OpType(op)
		opLookup[opSymbols[op]] = OpType(op)
	}
}

func (op OpType) Valid() bool {
	return op >= Equal && op <= LessEqual
}

// Name is the function name, e.g. greater_than.
func (op OpType) Name() string {
	if !op.Valid() {
		return "unknown"
	}
	return opNames[op]
}

func (op OpType) Symbol() string {
	if !op.Valid() {
		return "?"
	}
	return opSymbols[op]
}

func (op OpType) String() string {
	return op.Name()
}

func (op OpType) Table() *compare.Table {
	return &opTables[op]
}

// Map reports whether a comparison with outcome s satisfies op.
func (op OpType) Map(s compare.Sign) bool {
	return opTables[op].Of(s) == 1
}

// ParseOpType accepts a function name, ignoring case, or an operator symbol.
func ParseOpType(ctx context.Context, s string) (OpType, error) {
	if op, ok := opLookup[strings.ToLower(strings.TrimSpace(s))]; ok {
		return op, nil
	}
	return 0, moerr.NewInvalidInput(ctx, "unknown comparison operator '%s'", s)
}
