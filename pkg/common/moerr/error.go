// Copyright 2021 - 2022 Matrix Origin
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

package moerr

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

const MySQLDefaultSqlState = "HY000"

const (
	// Ok is the code of a nil error.
	Ok uint16 = 0

	// Group 1: Internal errors
	ErrInternal uint16 = 20101

	// Group 2: numeric and functions
	ErrInvalidArg uint16 = 20203
	// ErrArityMismatch a function received the wrong number of arguments
	ErrArityMismatch uint16 = 20205
	// ErrTypeMismatch no comparison type exists for the argument types
	ErrTypeMismatch uint16 = 20206
	// ErrMultiValueUnsupported an argument is a multi-valued column
	ErrMultiValueUnsupported uint16 = 20207

	// Group 3: invalid input
	ErrBadConfig     uint16 = 20300
	ErrInvalidInput  uint16 = 20301
	ErrSyntaxError   uint16 = 20302
	ErrBadFieldError uint16 = 20309

	// Group 4: unexpected state and io errors
	ErrInvalidState  uint16 = 20400
	ErrFileNotFound  uint16 = 20405
	ErrUnexpectedEOF uint16 = 20407
)

type moErrorMsgItem struct {
	mysqlCode        uint16
	sqlStates        []string
	errorMsgOrFormat string
}

var errorMsgRefer = map[uint16]moErrorMsgItem{
	// Ok is not in this table, a nil error has no message.

	// Group 1: Internal errors
	ErrInternal: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "internal error: %s"},

	// Group 2: numeric and functions
	ErrInvalidArg:            {ER_WRONG_ARGUMENTS, []string{MySQLDefaultSqlState}, "invalid argument %s, bad value %s"},
	ErrArityMismatch:         {ER_WRONG_PARAMCOUNT_TO_NATIVE_FCT, []string{"42000"}, "function %s requires exactly %d arguments, got %d"},
	ErrTypeMismatch:          {ER_WRONG_ARGUMENTS, []string{"42000"}, "function %s cannot compare %s with %s"},
	ErrMultiValueUnsupported: {ER_NOT_SUPPORTED_YET, []string{"42000"}, "function %s requires single-valued arguments, %s is multi-valued"},

	// Group 3: invalid input
	ErrBadConfig:     {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "invalid configuration: %s"},
	ErrInvalidInput:  {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "invalid input: %s"},
	ErrSyntaxError:   {ER_SYNTAX_ERROR, []string{"42000"}, "SQL syntax error: %s"},
	ErrBadFieldError: {ER_BAD_FIELD_ERROR, []string{"42S22"}, "Unknown column '%s' in '%s'"},

	// Group 4: unexpected state or file io error
	ErrInvalidState:  {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "invalid state %s"},
	ErrFileNotFound:  {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "file %s is not found"},
	ErrUnexpectedEOF: {ER_UNKNOWN_ERROR, []string{MySQLDefaultSqlState}, "unexpected end of file %s"},
}

func newError(ctx context.Context, code uint16, args ...any) *Error {
	var err *Error
	item, has := errorMsgRefer[code]
	if !has {
		panic(NewInternalError(ctx, "not exist MOErrorCode: %d", code))
	}
	if len(args) == 0 {
		err = &Error{
			code:      code,
			mysqlCode: item.mysqlCode,
			message:   item.errorMsgOrFormat,
			sqlState:  item.sqlStates[0],
		}
	} else {
		err = &Error{
			code:      code,
			mysqlCode: item.mysqlCode,
			message:   fmt.Sprintf(item.errorMsgOrFormat, args...),
			sqlState:  item.sqlStates[0],
		}
	}
	return err
}

type Error struct {
	code      uint16
	mysqlCode uint16
	message   string
	sqlState  string
}

func (e *Error) Error() string {
	return e.message
}

func (e *Error) ErrorCode() uint16 {
	return e.code
}

func (e *Error) MySQLCode() uint16 {
	return e.mysqlCode
}

func (e *Error) SqlState() string {
	return e.sqlState
}

// Report formats e the way a MySQL client prints a server error.
func (e *Error) Report() string {
	return fmt.Sprintf("ERROR %d (%s): %s", e.mysqlCode, e.sqlState, e.message)
}

func IsMoErrCode(e error, rc uint16) bool {
	if e == nil {
		return rc == Ok
	}

	me, ok := e.(*Error)
	if !ok {
		// This is not a moerr
		return false
	}
	return me.code == rc
}

// ConvertPanicError converts a runtime panic to internal error.
func ConvertPanicError(ctx context.Context, v interface{}) *Error {
	if e, ok := v.(*Error); ok {
		return e
	}
	return newError(ctx, ErrInternal, fmt.Sprintf("panic %v: %+v", v, errors.NewWithDepth(2, "stack")))
}

// ConvertGoError converts a go error into mo error.
// Note here we must return error, because nil error
// is the same as nil *Error -- Go strangeness.
func ConvertGoError(ctx context.Context, err error) error {
	// nil is nil
	if err == nil {
		return err
	}

	// already a moerr, return it as is
	if _, ok := err.(*Error); ok {
		return err
	}

	// Convert a few well known os/go error.
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// if io.EOF reaches here, we believe it is not expected.
		return NewUnexpectedEOF(ctx, err.Error())
	}
	if errors.Is(err, os.ErrNotExist) {
		return NewFileNotFound(ctx, err.Error())
	}

	return NewInternalError(ctx, "convert go error to mo error %v", err)
}

func NewInternalError(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInternal, xmsg)
}

func NewInternalErrorNoCtx(msg string, args ...any) *Error {
	return NewInternalError(Context(), msg, args...)
}

func NewInvalidArg(ctx context.Context, arg string, val any) *Error {
	return newError(ctx, ErrInvalidArg, arg, fmt.Sprintf("%v", val))
}

func NewArityMismatch(ctx context.Context, fn string, want, got int) *Error {
	return newError(ctx, ErrArityMismatch, fn, want, got)
}

func NewTypeMismatch(ctx context.Context, fn string, left, right string) *Error {
	return newError(ctx, ErrTypeMismatch, fn, left, right)
}

func NewMultiValueUnsupported(ctx context.Context, fn string, arg string) *Error {
	return newError(ctx, ErrMultiValueUnsupported, fn, arg)
}

func NewBadConfig(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrBadConfig, xmsg)
}

func NewInvalidInput(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidInput, xmsg)
}

func NewSyntaxError(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrSyntaxError, xmsg)
}

func NewBadFieldError(ctx context.Context, column, table string) *Error {
	return newError(ctx, ErrBadFieldError, column, table)
}

func NewInvalidState(ctx context.Context, msg string, args ...any) *Error {
	xmsg := fmt.Sprintf(msg, args...)
	return newError(ctx, ErrInvalidState, xmsg)
}

func NewInvalidStateNoCtx(msg string, args ...any) *Error {
	return NewInvalidState(Context(), msg, args...)
}

func NewFileNotFound(ctx context.Context, f string) *Error {
	return newError(ctx, ErrFileNotFound, f)
}

func NewUnexpectedEOF(ctx context.Context, f string) *Error {
	return newError(ctx, ErrUnexpectedEOF, f)
}

var contextFunc atomic.Value

func SetContextFunc(f func() context.Context) {
	contextFunc.Store(f)
}

// Context returns the context used by errors raised without one.
func Context() context.Context {
	return contextFunc.Load().(func() context.Context)()
}

func init() {
	SetContextFunc(func() context.Context { return context.Background() })
}
