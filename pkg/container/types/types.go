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

package types

import (
	"context"
	"fmt"
	"strings"

	"github.com/matrixorigin/mofilter/pkg/common/moerr"
)

type T uint8

const (
	T_any T = 0

	// numeric/integer family
	T_int8  T = 20
	T_int16 T = 21
	T_int32 T = 22
	T_int64 T = 23

	// numeric/float family
	T_float32 T = 30
	T_float64 T = 31

	// string family
	T_char    T = 40
	T_varchar T = 41
	T_text    T = 42

	// bytes family
	T_binary    T = 60
	T_varbinary T = 61
	T_blob      T = 62
)

type Ints interface {
	int8 | int16 | int32 | int64
}

type Floats interface {
	float32 | float64
}

type Number interface {
	Ints | Floats
}

type FixedSizeT interface {
	Number
}

type Type struct {
	Oid T

	// Size is the width in bytes of one fixed-size value, 0 for varlena types.
	Size int32
}

func New(oid T) Type {
	return Type{Oid: oid, Size: int32(oid.TypeLen())}
}

func (t T) ToType() Type {
	return New(t)
}

func (t Type) String() string {
	return t.Oid.String()
}

func (t Type) Eq(b Type) bool {
	return t.Oid == b.Oid && t.Size == b.Size
}

func (t Type) IsNumeric() bool  { return t.Oid.IsNumeric() }
func (t Type) IsInteger() bool  { return t.Oid.IsInteger() }
func (t Type) IsFloat() bool    { return t.Oid.IsFloat() }
func (t Type) IsString() bool   { return t.Oid.IsString() }
func (t Type) IsBytes() bool    { return t.Oid.IsBytes() }
func (t Type) IsVarlen() bool   { return t.Oid.IsString() || t.Oid.IsBytes() }
func (t Type) IsFixedLen() bool { return t.Size > 0 }
func (t Type) Kind() string     { return t.Oid.Kind() }

func (t T) IsInteger() bool {
	switch t {
	case T_int8, T_int16, T_int32, T_int64:
		return true
	}
	return false
}

func (t T) IsFloat() bool {
	return t == T_float32 || t == T_float64
}

func (t T) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

func (t T) IsString() bool {
	switch t {
	case T_char, T_varchar, T_text:
		return true
	}
	return false
}

func (t T) IsBytes() bool {
	switch t {
	case T_binary, T_varbinary, T_blob:
		return true
	}
	return false
}

// Kind returns the value family of t: INT64, DOUBLE, STRING or BYTES.
func (t T) Kind() string {
	switch {
	case t.IsInteger():
		return "INT64"
	case t.IsFloat():
		return "DOUBLE"
	case t.IsString():
		return "STRING"
	case t.IsBytes():
		return "BYTES"
	}
	return "ANY"
}

// TypeLen returns the size in bytes of one value, 0 for varlena types.
func (t T) TypeLen() int {
	switch t {
	case T_int8:
		return 1
	case T_int16:
		return 2
	case T_int32, T_float32:
		return 4
	case T_int64, T_float64:
		return 8
	}
	return 0
}

func (t T) String() string {
	switch t {
	case T_any:
		return "ANY"
	case T_int8:
		return "TINYINT"
	case T_int16:
		return "SMALLINT"
	case T_int32:
		return "INT"
	case T_int64:
		return "BIGINT"
	case T_float32:
		return "FLOAT"
	case T_float64:
		return "DOUBLE"
	case T_char:
		return "CHAR"
	case T_varchar:
		return "VARCHAR"
	case T_text:
		return "TEXT"
	case T_binary:
		return "BINARY"
	case T_varbinary:
		return "VARBINARY"
	case T_blob:
		return "BLOB"
	}
	return fmt.Sprintf("unexpected type: %d", t)
}

// OidString returns T string
func (t T) OidString() string {
	switch t {
	case T_any:
		return "T_any"
	case T_int8:
		return "T_int8"
	case T_int16:
		return "T_int16"
	case T_int32:
		return "T_int32"
	case T_int64:
		return "T_int64"
	case T_float32:
		return "T_float32"
	case T_float64:
		return "T_float64"
	case T_char:
		return "T_char"
	case T_varchar:
		return "T_varchar"
	case T_text:
		return "T_text"
	case T_binary:
		return "T_binary"
	case T_varbinary:
		return "T_varbinary"
	case T_blob:
		return "T_blob"
	}
	return "unknown_type"
}

var typeNames = map[string]T{
	"tinyint":   T_int8,
	"int8":      T_int8,
	"smallint":  T_int16,
	"int16":     T_int16,
	"int":       T_int32,
	"int32":     T_int32,
	"bigint":    T_int64,
	"int64":     T_int64,
	"long":      T_int64,
	"float":     T_float32,
	"float32":   T_float32,
	"double":    T_float64,
	"float64":   T_float64,
	"char":      T_char,
	"varchar":   T_varchar,
	"string":    T_varchar,
	"text":      T_text,
	"binary":    T_binary,
	"varbinary": T_varbinary,
	"bytes":     T_varbinary,
	"blob":      T_blob,
}

// ParseType maps a column type name, case-insensitive, to its Type.
func ParseType(ctx context.Context, name string) (Type, error) {
	oid, ok := typeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Type{}, moerr.NewInvalidInput(ctx, "unknown type '%s'", name)
	}
	return oid.ToType(), nil
}
