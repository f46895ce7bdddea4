// parser.go: Pratt parser for the calculator language producing S-expressions.
//
// OVERVIEW
// --------
// The parser consumes the token stream of lexer.go and builds a compact,
// Lisp-style S-expression tree. The grammar is deliberately small: arithmetic,
// comparisons, boolean connectives, calls with keyword arguments, indexing,
// list literals, lambdas and assignment statements. Anything outside of it is
// a parse error; there is no escape hatch into host code.
//
// Nodes
// -----
// The AST is a tree of S-expressions: []any whose first element is a string tag.
//
//	("block", stmt1, stmt2, ...)
//
// Statements:
//
//	("assign", target, value, more...) // target: ("id", name) or ("idx", obj, i)
//	("augassign", op, target, value)  // x += 1 → op "+"
//	("def", name, ("params", p...), body)   // f(x) = x**2
//
// Literals & identifiers:
//
//	("id",   string)
//	("int",  int64)
//	("num",  float64)
//	("imag", float64)             // 2j → 2
//	("str",  string)
//	("bool", bool)
//	("none")
//
// Operators / expressions:
//
//	("unop",  op, rhs)            // "-", "+", "not"
//	("binop", op, lhs, rhs)       // arithmetic, comparisons, "and", "or"
//	("call",  callee, ("args", a...), ("kwargs", ("kw", name, v)...))
//	("idx",   obj, index)
//	("list",  e1, e2, ...)
//	("lambda", ("params", p...), body)
//
// Dependencies
// ------------
//   - lexer.go
//   - errors.go (*Error, DiagParse)
package pycalc

import (
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
//                                  PUBLIC API
////////////////////////////////////////////////////////////////////////////////

type S = []any

func L(tag string, parts ...any) S { return append([]any{tag}, parts...) }

// ParseSExpr parses a complete source string (one or more statements) and
// returns its AST, always a "block".
func ParseSExpr(src string) (S, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	return p.program()
}

// ParseExpr parses src as a single expression (no statements allowed).
func ParseExpr(src string) (S, error) {
	toks, err := NewLexer(src).Scan()
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	p.skipSeparators()
	e, err := p.expr(0)
	if err != nil {
		return nil, err
	}
	p.skipSeparators()
	if !p.atEnd() {
		return nil, p.errAt(p.peek(), fmt.Sprintf("unexpected %s after expression", p.peek().Type))
	}
	return e, nil
}

//// END_OF_PUBLIC

////////////////////////////////////////////////////////////////////////////////
///////////////////////////// PRIVATE IMPLEMENTATION ///////////////////////////
////////////////////////////////////////////////////////////////////////////////

type parser struct {
	toks []Token
	i    int
}

// ─────────────────────────── token basics & helpers ─────────────────────────

func (p *parser) atEnd() bool { return p.peek().Type == EOF }
func (p *parser) peek() Token {
	if p.i >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i]
}
func (p *parser) peekAt(n int) Token {
	if p.i+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.i+n]
}
func (p *parser) prev() Token { return p.toks[p.i-1] }

func (p *parser) match(tt ...TokenType) bool {
	if p.atEnd() {
		return false
	}
	for _, t := range tt {
		if p.peek().Type == t {
			p.i++
			return true
		}
	}
	return false
}

func (p *parser) need(t TokenType, msg string) (Token, error) {
	if p.match(t) {
		return p.prev(), nil
	}
	return Token{}, p.errAt(p.peek(), msg)
}

func (p *parser) errAt(t Token, msg string) error {
	return &Error{Kind: DiagParse, Msg: msg, Line: t.Line, Col: t.Col + 1}
}

func (p *parser) skipSeparators() {
	for p.peek().Type == NEWLINE || p.peek().Type == SEMI {
		p.i++
	}
}

// ───────────────────────── precedence / associativity ──────────────────────

func lbp(t TokenType) (int, bool) {
	switch t {
	case OR:
		return 10, true
	case AND:
		return 20, true
	case EQ, NEQ, LESS, LESS_EQ, GREATER, GREATER_EQ:
		return 40, true
	case PLUS, MINUS:
		return 60, true
	case MULT, DIV, FLOORDIV, MOD, MATMUL:
		return 70, true
	case POW:
		return 90, true
	case LROUND, LSQUARE:
		return 100, true
	}
	return 0, false
}

func isRightAssoc(tt TokenType) bool { return tt == POW }

// ───────────────────────────── statements ───────────────────────────────────

func (p *parser) program() (S, error) {
	out := L("block")
	for {
		p.skipSeparators()
		if p.atEnd() {
			return out, nil
		}
		st, err := p.statement()
		if err != nil {
			return nil, err
		}
		out = append(out, st)
		if !p.atEnd() && p.peek().Type != NEWLINE && p.peek().Type != SEMI {
			return nil, p.errAt(p.peek(), fmt.Sprintf("unexpected %s", p.peek().Type))
		}
	}
}

func (p *parser) statement() (S, error) {
	first := p.peek()
	lhs, err := p.expr(0)
	if err != nil {
		return nil, err
	}

	switch p.peek().Type {
	case ASSIGN:
		eqTok := p.peek()
		p.i++
		if def, ok := asFunctionHead(lhs); ok {
			body, err := p.exprAfter(eqTok)
			if err != nil {
				return nil, err
			}
			return L("def", def[0], def[1], body), nil
		}
		if !assignable(lhs) {
			return nil, p.errAt(first, "cannot assign to expression")
		}
		node := L("assign", lhs)
		for {
			rhs, err := p.exprAfter(eqTok)
			if err != nil {
				return nil, err
			}
			if p.peek().Type != ASSIGN {
				// ("assign", target, value, moreTargets...)
				return append(L("assign", lhs, rhs), node[2:]...), nil
			}
			// chained: a = b = 0
			if !assignable(rhs) {
				return nil, p.errAt(first, "cannot assign to expression")
			}
			node = append(node, rhs)
			eqTok = p.peek()
			p.i++
		}

	case AUGASSIGN:
		opTok := p.peek()
		p.i++
		if !assignable(lhs) {
			return nil, p.errAt(first, "cannot assign to expression")
		}
		rhs, err := p.exprAfter(opTok)
		if err != nil {
			return nil, err
		}
		return L("augassign", opTok.Literal.(string), lhs, rhs), nil
	}
	return lhs, nil
}

func assignable(n S) bool {
	switch n[0].(string) {
	case "id", "idx":
		return true
	}
	return false
}

// asFunctionHead recognizes f(a, b) on the left of '=' as a definition head.
func asFunctionHead(n S) ([2]any, bool) {
	if n[0].(string) != "call" {
		return [2]any{}, false
	}
	callee := n[1].(S)
	if callee[0].(string) != "id" {
		return [2]any{}, false
	}
	args := n[2].(S)
	kwargs := n[3].(S)
	if len(kwargs) > 1 {
		return [2]any{}, false
	}
	params := L("params")
	for _, a := range args[1:] {
		an := a.(S)
		if an[0].(string) != "id" {
			return [2]any{}, false
		}
		params = append(params, an[1].(string))
	}
	return [2]any{callee[1].(string), params}, true
}

// ───────────────────────────── expressions ──────────────────────────────────

func (p *parser) exprAfter(tok Token) (S, error) {
	switch p.peek().Type {
	case EOF, NEWLINE, SEMI:
		return nil, p.errAt(p.peek(), fmt.Sprintf("expected expression after %s", tok.Type))
	}
	return p.expr(0)
}

func (p *parser) expr(minBP int) (S, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}

	for {
		t := p.peek()
		bp, ok := lbp(t.Type)
		if !ok || bp <= minBP {
			return left, nil
		}
		p.i++

		switch t.Type {
		case LROUND:
			left, err = p.callAfterOpen(left)
			if err != nil {
				return nil, err
			}
			continue
		case LSQUARE:
			idx, err := p.exprAfter(t)
			if err != nil {
				return nil, err
			}
			if _, err := p.need(RSQUARE, "expected ']' after index"); err != nil {
				return nil, err
			}
			left = L("idx", left, idx)
			continue
		}

		next := bp
		if isRightAssoc(t.Type) {
			next = bp - 1
		}
		right, err := p.exprAfterOperand(t, next)
		if err != nil {
			return nil, err
		}
		left = L("binop", opText(t), left, right)
	}
}

func (p *parser) exprAfterOperand(op Token, bp int) (S, error) {
	switch p.peek().Type {
	case EOF, NEWLINE, SEMI, RROUND, RSQUARE, COMMA:
		return nil, p.errAt(p.peek(), fmt.Sprintf("expected expression after %s", op.Type))
	}
	return p.expr(bp)
}

func opText(t Token) string {
	switch t.Type {
	case AND:
		return "and"
	case OR:
		return "or"
	}
	return t.Lexeme
}

func (p *parser) prefix() (S, error) {
	t := p.peek()
	p.i++

	switch t.Type {
	case INTEGER:
		return L("int", t.Literal.(int64)), nil
	case NUMBER:
		return L("num", t.Literal.(float64)), nil
	case IMAGINARY:
		return L("imag", t.Literal.(float64)), nil
	case STRING:
		return L("str", t.Literal.(string)), nil
	case BOOLEAN:
		return L("bool", t.Literal.(bool)), nil
	case NONE:
		return L("none"), nil
	case ID:
		return L("id", t.Lexeme), nil

	case MINUS, PLUS:
		r, err := p.exprAfterOperand(t, 80)
		if err != nil {
			return nil, err
		}
		return L("unop", t.Lexeme, r), nil

	case NOT:
		r, err := p.exprAfterOperand(t, 30)
		if err != nil {
			return nil, err
		}
		return L("unop", "not", r), nil

	case LROUND:
		inner, err := p.exprAfter(t)
		if err != nil {
			return nil, err
		}
		if _, err := p.need(RROUND, "expected ')'"); err != nil {
			return nil, err
		}
		return inner, nil

	case LSQUARE:
		items, err := p.commaList(RSQUARE, "expected ']' to close list")
		if err != nil {
			return nil, err
		}
		return append(L("list"), items...), nil

	case LAMBDA:
		params := L("params")
		for p.peek().Type != COLON {
			id, err := p.need(ID, "expected parameter name in lambda")
			if err != nil {
				return nil, err
			}
			params = append(params, id.Lexeme)
			if !p.match(COMMA) {
				break
			}
		}
		colon, err := p.need(COLON, "expected ':' in lambda")
		if err != nil {
			return nil, err
		}
		body, err := p.exprAfterOperand(colon, 0)
		if err != nil {
			return nil, err
		}
		return L("lambda", params, body), nil

	case EOF, NEWLINE, SEMI:
		p.i--
		return nil, p.errAt(t, "expected expression, got "+t.Type.String())
	}
	return nil, p.errAt(t, fmt.Sprintf("unexpected %s", t.Type))
}

// commaList parses `e1, e2, ... close` after the opening bracket; a trailing
// comma is allowed.
func (p *parser) commaList(close TokenType, msg string) ([]any, error) {
	var items []any
	for !p.match(close) {
		if p.atEnd() {
			return nil, p.errAt(p.peek(), msg)
		}
		e, err := p.expr(0)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
		if p.match(close) {
			break
		}
		if _, err := p.need(COMMA, msg); err != nil {
			return nil, err
		}
	}
	return items, nil
}

// callAfterOpen parses call arguments after '('. `name=value` pairs become
// keyword arguments and must follow all positional ones.
func (p *parser) callAfterOpen(callee S) (S, error) {
	args := L("args")
	kwargs := L("kwargs")
	for !p.match(RROUND) {
		if p.atEnd() {
			return nil, p.errAt(p.peek(), "expected ')' to close call")
		}
		if p.peek().Type == ID && p.peekAt(1).Type == ASSIGN {
			name := p.peek()
			p.i += 2
			v, err := p.exprAfterOperand(name, 0)
			if err != nil {
				return nil, err
			}
			kwargs = append(kwargs, L("kw", name.Lexeme, v))
		} else {
			if len(kwargs) > 1 {
				return nil, p.errAt(p.peek(), "positional argument follows keyword argument")
			}
			v, err := p.expr(0)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		if p.match(RROUND) {
			break
		}
		if _, err := p.need(COMMA, "expected ',' or ')' in call"); err != nil {
			return nil, err
		}
	}
	return L("call", callee, args, kwargs), nil
}
