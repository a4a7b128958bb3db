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
	"github.com/matrixorigin/mofilter/pkg/container/types"
)

// ResolveComparisonType picks the type both sides of op are compared as.
// The first matching rule wins:
//
//	numeric, numeric -> T_float64 if either is a float, else T_int64
//	string,  string  -> T_varchar
//	bytes,   bytes   -> T_varbinary
//
// Any other pair is a type mismatch.
func ResolveComparisonType(ctx context.Context, op OpType, left, right types.Type) (types.T, error) {
	switch {
	case left.IsNumeric() && right.IsNumeric():
		if left.IsFloat() || right.IsFloat() {
			return types.T_float64, nil
		}
		return types.T_int64, nil
	case left.IsString() && right.IsString():
		return types.T_varchar, nil
	case left.IsBytes() && right.IsBytes():
		return types.T_varbinary, nil
	}
	return types.T_any, moerr.NewTypeMismatch(ctx, op.Name(), left.String(), right.String())
}
