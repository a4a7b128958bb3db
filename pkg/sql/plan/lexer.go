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
	"fmt"
	"strings"

	"github.com/matrixorigin/mofilter/pkg/common/moerr"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokString
	tokHex
	tokCmp
	tokAnd
	tokMinus
	tokLParen
	tokRParen
	tokComma
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	if t.kind == tokString {
		return "'" + t.text + "'"
	}
	return t.text
}

type lexer struct {
	ctx context.Context
	src string
	pos int
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '$'
}

func (l *lexer) errorf(pos int, msg string, args ...any) error {
	near := l.src[pos:]
	if len(near) > 16 {
		near = near[:16]
	}
	return moerr.NewSyntaxError(l.ctx, "%s near '%s' at position %d", fmt.Sprintf(msg, args...), near, pos)
}

// tokens splits the whole input up front.
func (l *lexer) tokens() ([]token, error) {
	var toks []token
	for {
		tok, err := l.next()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.kind == tokEOF {
			return toks, nil
		}
	}
}

func (l *lexer) next() (token, error) {
	for l.pos < len(l.src) && strings.IndexByte(" \t\r\n", l.src[l.pos]) >= 0 {
		l.pos++
	}
	start := l.pos
	if start >= len(l.src) {
		return token{kind: tokEOF, pos: start}, nil
	}

	c := l.src[start]
	switch {
	case (c == 'x' || c == 'X') && start+1 < len(l.src) && l.src[start+1] == '\'':
		l.pos++
		s, err := l.quoted('\'')
		if err != nil {
			return token{}, err
		}
		return token{kind: tokHex, text: s, pos: start}, nil
	case isIdentStart(c):
		for l.pos < len(l.src) && isIdentChar(l.src[l.pos]) {
			l.pos++
		}
		text := l.src[start:l.pos]
		switch strings.ToLower(text) {
		case "and":
			return token{kind: tokAnd, text: text, pos: start}, nil
		case "nan", "inf", "infinity":
			// quote a column with one of these names to address it
			return token{kind: tokNumber, text: text, pos: start}, nil
		}
		return token{kind: tokIdent, text: text, pos: start}, nil
	case c == '`':
		s, err := l.quoted('`')
		if err != nil {
			return token{}, err
		}
		return token{kind: tokIdent, text: s, pos: start}, nil
	case c == '\'' || c == '"':
		s, err := l.quoted(c)
		if err != nil {
			return token{}, err
		}
		return token{kind: tokString, text: s, pos: start}, nil
	case isDigit(c) || (c == '.' && start+1 < len(l.src) && isDigit(l.src[start+1])):
		return l.number()
	case c == '-':
		l.pos++
		return token{kind: tokMinus, text: "-", pos: start}, nil
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", pos: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", pos: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, text: ",", pos: start}, nil
	case c == '&' && strings.HasPrefix(l.src[start:], "&&"):
		l.pos += 2
		return token{kind: tokAnd, text: "&&", pos: start}, nil
	}

	for _, op := range []string{"<=", ">=", "<>", "!=", "==", "<", ">", "="} {
		if strings.HasPrefix(l.src[start:], op) {
			l.pos += len(op)
			return token{kind: tokCmp, text: op, pos: start}, nil
		}
	}
	return token{}, l.errorf(start, "unexpected character %q", c)
}

// quoted reads up to the closing q, a doubled q stands for itself.
func (l *lexer) quoted(q byte) (string, error) {
	start := l.pos
	l.pos++
	var sb strings.Builder
	for l.pos < len(l.src) {
		c := l.src[l.pos]
		if c == q {
			if l.pos+1 < len(l.src) && l.src[l.pos+1] == q {
				sb.WriteByte(q)
				l.pos += 2
				continue
			}
			l.pos++
			return sb.String(), nil
		}
		sb.WriteByte(c)
		l.pos++
	}
	return "", l.errorf(start, "unterminated quoted text")
}

func (l *lexer) number() (token, error) {
	start := l.pos
	for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
		l.pos++
	}
	if l.pos < len(l.src) && l.src[l.pos] == '.' {
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		digits := l.pos
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
		if digits == l.pos {
			return token{}, l.errorf(start, "bad exponent")
		}
	}
	if l.pos < len(l.src) && isIdentStart(l.src[l.pos]) {
		return token{}, l.errorf(start, "bad number")
	}
	return token{kind: tokNumber, text: l.src[start:l.pos], pos: start}, nil
}
