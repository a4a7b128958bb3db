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

package catalog

import (
	"context"
	"strings"

	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/container/types"
)

const (
	// MultiValueSuffix marks a column type as multi-valued in a header cell.
	MultiValueSuffix = "[]"
	headerSeparator  = ":"
)

type ColDef struct {
	Name string
	Typ  types.Type
	// SingleValue is false when a row stores a list of values.
	SingleValue bool
	// Pos is the column's index in the batch.
	Pos int32
}

func (def *ColDef) String() string {
	if def.SingleValue {
		return def.Name + headerSeparator + strings.ToLower(def.Typ.String())
	}
	return def.Name + headerSeparator + strings.ToLower(def.Typ.String()) + MultiValueSuffix
}

type Schema struct {
	Cols []*ColDef

	// lower-case name -> position
	nameMap map[string]int32
}

func NewSchema(cols []*ColDef) *Schema {
	s := &Schema{
		Cols:    cols,
		nameMap: make(map[string]int32, len(cols)),
	}
	for i, col := range cols {
		col.Pos = int32(i)
		s.nameMap[strings.ToLower(col.Name)] = int32(i)
	}
	return s
}

// Col looks a column up by name, ignoring case.
func (s *Schema) Col(name string) (*ColDef, bool) {
	pos, ok := s.nameMap[strings.ToLower(name)]
	if !ok {
		return nil, false
	}
	return s.Cols[pos], true
}

func (s *Schema) Attrs() []string {
	attrs := make([]string, len(s.Cols))
	for i, col := range s.Cols {
		attrs[i] = col.Name
	}
	return attrs
}

func (s *Schema) Len() int {
	return len(s.Cols)
}

// ParseSchema builds a schema from header cells of the form name:type, where
// a type ending in [] declares a multi-valued column.
func ParseSchema(ctx context.Context, header []string) (*Schema, error) {
	if len(header) == 0 {
		return nil, moerr.NewInvalidInput(ctx, "empty header")
	}
	cols := make([]*ColDef, 0, len(header))
	seen := make(map[string]struct{}, len(header))
	for _, cell := range header {
		name, typName, ok := strings.Cut(strings.TrimSpace(cell), headerSeparator)
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, moerr.NewInvalidInput(ctx, "bad header cell '%s', want name:type", cell)
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return nil, moerr.NewInvalidInput(ctx, "duplicate column '%s'", name)
		}
		seen[key] = struct{}{}

		typName = strings.TrimSpace(typName)
		single := true
		if strings.HasSuffix(typName, MultiValueSuffix) {
			single = false
			typName = strings.TrimSuffix(typName, MultiValueSuffix)
		}
		typ, err := types.ParseType(ctx, typName)
		if err != nil {
			return nil, err
		}
		cols = append(cols, &ColDef{Name: name, Typ: typ, SingleValue: single})
	}
	return NewSchema(cols), nil
}
