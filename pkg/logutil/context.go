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

package logutil

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
)

const QueryIDFieldKey = "query_id"

type queryIDKey struct{}

// WithQueryID tags ctx so that every log emitted with GetContextFieldFunc
// carries the query id.
func WithQueryID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, queryIDKey{}, id)
}

func QueryID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(queryIDKey{}).(string)
	return id
}

type ContextFieldFunc func(context.Context) zap.Field

var contextField atomic.Value

func init() {
	SetContextFieldFunc(queryIDContextField)
}

func SetContextFieldFunc(f ContextFieldFunc) {
	contextField.Store(f)
}

func GetContextFieldFunc() ContextFieldFunc {
	return contextField.Load().(ContextFieldFunc)
}

func queryIDContextField(ctx context.Context) zap.Field {
	if id := QueryID(ctx); id != "" {
		return zap.String(QueryIDFieldKey, id)
	}
	return zap.Skip()
}
