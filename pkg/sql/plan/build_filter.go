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

	"go.uber.org/zap"

	"github.com/matrixorigin/mofilter/pkg/catalog"
	"github.com/matrixorigin/mofilter/pkg/common/moerr"
	"github.com/matrixorigin/mofilter/pkg/logutil"
	"github.com/matrixorigin/mofilter/pkg/sql/plan/function/operator"
	v2 "github.com/matrixorigin/mofilter/pkg/util/metric/v2"
)

const whereClause = "where clause"

// BuildPredicates turns a filter expression into initialized comparisons,
// one per conjunct. The grammar is
//
//	filter  = cmp { AND cmp }
//	cmp     = operand op operand | name '(' operand { ',' operand } ')'
//	operand = column | number | -number | 'string' | X'hex'
//
// where name is an operator name such as greater_than. Columns are looked up
// in schema.
func BuildPredicates(ctx context.Context, text string, schema *catalog.Schema) ([]*operator.BinaryComparison, error) {
	lex := &lexer{ctx: ctx, src: text}
	toks, err := lex.tokens()
	if err != nil {
		return nil, err
	}
	b := &filterBuilder{ctx: ctx, lex: lex, toks: toks, schema: schema}
	return b.buildFilter()
}

type filterBuilder struct {
	ctx    context.Context
	lex    *lexer
	toks   []token
	cur    int
	schema *catalog.Schema
}

func (b *filterBuilder) peek() token {
	return b.toks[b.cur]
}

func (b *filterBuilder) peekN(n int) token {
	if b.cur+n >= len(b.toks) {
		return b.toks[len(b.toks)-1]
	}
	return b.toks[b.cur+n]
}

func (b *filterBuilder) advance() token {
	tok := b.toks[b.cur]
	if tok.kind != tokEOF {
		b.cur++
	}
	return tok
}

func (b *filterBuilder) expect(kind tokenKind, what string) (token, error) {
	tok := b.advance()
	if tok.kind != kind {
		return tok, b.unexpected(tok, what)
	}
	return tok, nil
}

func (b *filterBuilder) unexpected(tok token, what string) error {
	return b.lex.errorf(tok.pos, "expected %s, got %s", what, tok)
}

func (b *filterBuilder) buildFilter() ([]*operator.BinaryComparison, error) {
	var preds []*operator.BinaryComparison
	for {
		bc, err := b.buildComparison()
		if err != nil {
			for _, p := range preds {
				p.Free()
			}
			return nil, err
		}
		preds = append(preds, bc)

		tok := b.advance()
		switch tok.kind {
		case tokEOF:
			return preds, nil
		case tokAnd:
		default:
			for _, p := range preds {
				p.Free()
			}
			return nil, b.unexpected(tok, "AND or end of input")
		}
	}
}

func (b *filterBuilder) buildComparison() (*operator.BinaryComparison, error) {
	if b.peek().kind == tokIdent && b.peekN(1).kind == tokLParen {
		return b.buildCall()
	}

	left, err := b.buildOperand()
	if err != nil {
		return nil, err
	}
	tok, err := b.expect(tokCmp, "comparison operator")
	if err != nil {
		return nil, err
	}
	op, err := operator.ParseOpType(b.ctx, tok.text)
	if err != nil {
		return nil, err
	}
	right, err := b.buildOperand()
	if err != nil {
		return nil, err
	}
	return b.initComparison(op, []operator.Operand{left, right})
}

// buildCall handles the function form, which may carry any number of
// arguments. Init rejects the wrong count.
func (b *filterBuilder) buildCall() (*operator.BinaryComparison, error) {
	name := b.advance()
	op, err := operator.ParseOpType(b.ctx, name.text)
	if err != nil {
		return nil, b.lex.errorf(name.pos, "unknown function %s", name.text)
	}
	b.advance()

	var args []operator.Operand
	if b.peek().kind != tokRParen {
		for {
			arg, err := b.buildOperand()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
			if b.peek().kind != tokComma {
				break
			}
			b.advance()
		}
	}
	if _, err := b.expect(tokRParen, "')'"); err != nil {
		return nil, err
	}
	return b.initComparison(op, args)
}

func (b *filterBuilder) buildOperand() (operator.Operand, error) {
	tok := b.advance()
	switch tok.kind {
	case tokIdent:
		def, ok := b.schema.Col(tok.text)
		if !ok {
			return nil, moerr.NewBadFieldError(b.ctx, tok.text, whereClause)
		}
		return operator.NewColumnRef(def.Pos, *def), nil
	case tokNumber:
		return operator.ParseLiteral(b.ctx, tok.text, false)
	case tokMinus:
		num, err := b.expect(tokNumber, "number")
		if err != nil {
			return nil, err
		}
		return operator.ParseLiteral(b.ctx, "-"+num.text, false)
	case tokString:
		return operator.ParseLiteral(b.ctx, tok.text, true)
	case tokHex:
		return operator.ParseHexLiteral(b.ctx, tok.text)
	}
	return nil, b.unexpected(tok, "column or literal")
}

func (b *filterBuilder) initComparison(op operator.OpType, args []operator.Operand) (*operator.BinaryComparison, error) {
	bc := operator.New(op)
	if err := bc.Init(b.ctx, args); err != nil {
		countInitFailure(err)
		logutil.Warn("comparison init failed",
			zap.String("function", op.Name()),
			zap.Int("args", len(args)),
			zap.Error(err),
			logutil.GetContextFieldFunc()(b.ctx))
		return nil, err
	}
	logutil.Debug("comparison bound",
		zap.String("expr", bc.String()),
		zap.String("type", bc.ComparisonType().String()),
		logutil.GetContextFieldFunc()(b.ctx))
	return bc, nil
}

func countInitFailure(err error) {
	switch {
	case moerr.IsMoErrCode(err, moerr.ErrArityMismatch):
		v2.FilterArityFailureCounter.Inc()
	case moerr.IsMoErrCode(err, moerr.ErrTypeMismatch):
		v2.FilterTypeFailureCounter.Inc()
	case moerr.IsMoErrCode(err, moerr.ErrMultiValueUnsupported):
		v2.FilterMultiValueFailureCounter.Inc()
	default:
		v2.FilterOtherFailureCounter.Inc()
	}
}
