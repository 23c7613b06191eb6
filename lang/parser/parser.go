// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package parser implements a recursive-descent parser for the go-ordo
// pseudocode surface.
//
// Design overview:
//
//   - Keywords are IDENT tokens; all keyword matching is on the lowercased
//     literal text, so Begin, BEGIN and begin are interchangeable.
//   - Block bodies stop, without consuming, on a token whose lowercased text
//     is end, until or else; the enclosing production consumes the
//     terminator it expects.
//   - A procedure definition is recognized by lookahead: an identifier
//     followed immediately by an opening parenthesis.
//   - Parsing is all-or-nothing: the first unmet expectation aborts with a
//     *SyntaxError (or ErrUnexpectedEOF); there is no recovery and no
//     partial tree.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ordolang/go-ordo/lang/ast"
	"github.com/ordolang/go-ordo/lang/lexer"
	"github.com/ordolang/go-ordo/lang/token"
)

// ErrUnexpectedEOF is returned when the token sequence ends in the middle of
// a production.
var ErrUnexpectedEOF = errors.New("unexpected end of input")

// SyntaxError reports a token that does not satisfy the grammar at its
// position. It is fatal to the parse of the whole file.
type SyntaxError struct {
	Expected string
	Found    string
	Line     int
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s, got %q at line %d", e.Expected, e.Found, e.Line)
}

// Parser holds the mutable state for a single parse run over a pre-lexed
// token sequence.
type Parser struct {
	name string
	toks []token.Token
	pos  int
}

// New creates a Parser over the given token sequence. name becomes the
// Program node's name ("Program" when empty).
func New(name string, toks []token.Token) *Parser {
	if name == "" {
		name = "Program"
	}
	return &Parser{name: name, toks: toks}
}

// Parse is the public entry point: it tokenizes source and parses a full
// program. name is used for the Program node and for error positions.
func Parse(name, source string) (*ast.Program, error) {
	toks, err := lexer.Tokenize(name, source)
	if err != nil {
		return nil, err
	}
	return New(name, toks).ParseProgram()
}

// ---------------------------------------------------------------------------
// Token navigation helpers
// ---------------------------------------------------------------------------

// peek returns the token at the given offset from the current position, or
// nil when past the end of the sequence.
func (p *Parser) peek(offset int) *token.Token {
	if p.pos+offset < len(p.toks) {
		return &p.toks[p.pos+offset]
	}
	return nil
}

// cur returns the current token or nil at end of input.
func (p *Parser) cur() *token.Token { return p.peek(0) }

// curTextIs reports whether the current token's lowercased literal equals s.
func (p *Parser) curTextIs(s string) bool {
	t := p.cur()
	return t != nil && strings.ToLower(t.Literal) == s
}

// consume advances past the current token, failing with ErrUnexpectedEOF at
// end of input.
func (p *Parser) consume() (token.Token, error) {
	t := p.cur()
	if t == nil {
		return token.Token{}, ErrUnexpectedEOF
	}
	p.pos++
	return *t, nil
}

// expect consumes the current token if it has the given type, otherwise it
// fails with a *SyntaxError naming the expectation.
func (p *Parser) expect(typ token.Type) (token.Token, error) {
	t := p.cur()
	if t == nil {
		return token.Token{}, ErrUnexpectedEOF
	}
	if t.Type != typ {
		return token.Token{}, &SyntaxError{Expected: typ.String(), Found: t.Literal, Line: t.Pos.Line}
	}
	p.pos++
	return *t, nil
}

// expectKeyword consumes the current token if it is an IDENT whose
// lowercased literal equals kw.
func (p *Parser) expectKeyword(kw string) error {
	t := p.cur()
	if t == nil {
		return ErrUnexpectedEOF
	}
	if t.Type != token.IDENT || strings.ToLower(t.Literal) != kw {
		return &SyntaxError{Expected: "keyword " + strconvQuote(kw), Found: t.Literal, Line: t.Pos.Line}
	}
	p.pos++
	return nil
}

// match consumes the current token when it has the given type and reports
// whether it did.
func (p *Parser) match(typ token.Type) bool {
	t := p.cur()
	if t != nil && t.Type == typ {
		p.pos++
		return true
	}
	return false
}

func strconvQuote(s string) string { return "'" + s + "'" }

// ---------------------------------------------------------------------------
// program = { class_def } { procedure_def } [ "begin" block "end" ] ;
// ---------------------------------------------------------------------------

// ParseProgram parses the whole token sequence into a Program node.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{Name: p.name, MainBlock: &ast.Block{}}

	for p.curTextIs("clase") {
		c, err := p.parseClassDef()
		if err != nil {
			return nil, err
		}
		prog.Classes = append(prog.Classes, c)
	}

	// A procedure definition is an identifier immediately followed by '('.
	for {
		t, next := p.peek(0), p.peek(1)
		if t == nil || next == nil || t.Type != token.IDENT || next.Type != token.LPAREN {
			break
		}
		proc, err := p.parseProcedureDef()
		if err != nil {
			return nil, err
		}
		prog.Procedures = append(prog.Procedures, proc)
	}

	if p.curTextIs("begin") {
		p.pos++
		body, err := p.parseBlockBody()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("end"); err != nil {
			return nil, err
		}
		prog.MainBlock = body
	}

	if t := p.cur(); t != nil {
		return nil, &SyntaxError{Expected: "end of input", Found: t.Literal, Line: t.Pos.Line}
	}
	return prog, nil
}

// ---------------------------------------------------------------------------
// class_def = "Clase" IDENT "{" { IDENT } "}" ;
// ---------------------------------------------------------------------------

func (p *Parser) parseClassDef() (*ast.ClassDef, error) {
	p.pos++ // 'Clase'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LBRACE); err != nil {
		return nil, err
	}
	c := &ast.ClassDef{Name: name.Literal}
	for {
		t := p.cur()
		if t == nil {
			return nil, ErrUnexpectedEOF
		}
		if t.Type == token.RBRACE {
			break
		}
		attr, err := p.expect(token.IDENT)
		if err != nil {
			return nil, err
		}
		c.Attributes = append(c.Attributes, attr.Literal)
	}
	p.pos++ // '}'
	return c, nil
}

// ---------------------------------------------------------------------------
// procedure_def = IDENT "(" [ param { "," param } ] ")" "begin" block "end" ;
// param         = IDENT
//               | IDENT "[" dims "]" { "[" dims "]" }
//               | "Clase" IDENT IDENT ;
// ---------------------------------------------------------------------------

func (p *Parser) parseProcedureDef() (*ast.ProcedureDef, error) {
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}

	var params []ast.Parameter
	if t := p.cur(); t == nil {
		return nil, ErrUnexpectedEOF
	} else if t.Type != token.RPAREN {
		for {
			param, err := p.parseParameter()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}

	if err := p.expectKeyword("begin"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}

	return &ast.ProcedureDef{Name: name.Literal, Params: params, Body: body}, nil
}

func (p *Parser) parseParameter() (ast.Parameter, error) {
	if p.curTextIs("clase") {
		p.pos++
		class, err := p.expect(token.IDENT)
		if err != nil {
			return ast.Parameter{}, err
		}
		obj, err := p.expect(token.IDENT)
		if err != nil {
			return ast.Parameter{}, err
		}
		return ast.Parameter{Name: obj.Literal, Kind: ast.ParamObject, Class: class.Literal}, nil
	}

	name, err := p.expect(token.IDENT)
	if err != nil {
		return ast.Parameter{}, err
	}
	param := ast.Parameter{Name: name.Literal, Kind: ast.ParamScalar}

	// One or more bracketed dimension groups make this an array parameter.
	// Dimension contents (including .. ranges) are consumed, not retained.
	for p.match(token.LBRACKET) {
		param.Kind = ast.ParamArray
		for {
			t := p.cur()
			if t == nil {
				return ast.Parameter{}, ErrUnexpectedEOF
			}
			if t.Type == token.RBRACKET {
				break
			}
			p.pos++
		}
		p.pos++ // ']'
	}
	return param, nil
}

// ---------------------------------------------------------------------------
// block = { statement } ;
// A block stops, without consuming, at end / until / else (lowercased).
// ---------------------------------------------------------------------------

func (p *Parser) parseBlockBody() (*ast.Block, error) {
	block := &ast.Block{}
	for {
		t := p.cur()
		if t == nil {
			break // the caller reports the missing terminator
		}
		switch strings.ToLower(t.Literal) {
		case "end", "until", "else":
			return block, nil
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	return block, nil
}

// parseStatement dispatches on the first token's lowercased text.
func (p *Parser) parseStatement() (ast.Statement, error) {
	t := p.cur()
	if t == nil {
		return nil, ErrUnexpectedEOF
	}
	switch strings.ToLower(t.Literal) {
	case "if":
		return p.parseIf()
	case "for":
		return p.parseFor()
	case "while":
		return p.parseWhile()
	case "repeat":
		return p.parseRepeat()
	case "call":
		return p.parseCall()
	}
	if t.Type == token.IDENT {
		return p.parseAssignment()
	}
	return nil, &SyntaxError{Expected: "statement", Found: t.Literal, Line: t.Pos.Line}
}

// assignment = lvalue ASSIGN expression ;
// The lvalue is parsed through the general expression grammar so that
// array and field targets (v[i], obj.attr) are accepted.
func (p *Parser) parseAssignment() (ast.Statement, error) {
	target, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &ast.Assignment{Target: target, Value: value}, nil
}

// if_stmt = "if" "(" expression ")" "then" "begin" block "end"
//           [ "else" "begin" block "end" ] ;
func (p *Parser) parseIf() (ast.Statement, error) {
	p.pos++ // 'if'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("then"); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseDelimitedBlock()
	if err != nil {
		return nil, err
	}

	stmt := &ast.IfStatement{Condition: cond, ThenBlock: thenBlock}
	if p.curTextIs("else") {
		p.pos++
		elseBlock, err := p.parseDelimitedBlock()
		if err != nil {
			return nil, err
		}
		stmt.ElseBlock = elseBlock
	}
	return stmt, nil
}

// for_stmt = "for" IDENT ASSIGN expression "to" expression "do"
//            "begin" block "end" ;
func (p *Parser) parseFor() (ast.Statement, error) {
	p.pos++ // 'for'
	v, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.ASSIGN); err != nil {
		return nil, err
	}
	start, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("to"); err != nil {
		return nil, err
	}
	end, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	body, err := p.parseDelimitedBlock()
	if err != nil {
		return nil, err
	}
	return &ast.ForLoop{Variable: v.Literal, Start: start, End: end, Body: body}, nil
}

// while_stmt = "while" "(" expression ")" "do" "begin" block "end" ;
func (p *Parser) parseWhile() (ast.Statement, error) {
	p.pos++ // 'while'
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("do"); err != nil {
		return nil, err
	}
	body, err := p.parseDelimitedBlock()
	if err != nil {
		return nil, err
	}
	return &ast.WhileLoop{Condition: cond, Body: body}, nil
}

// repeat_stmt = "repeat" block "until" "(" expression ")" ;
// The body precedes the terminating keyword and condition; the block itself
// is NOT begin/end delimited, it ends at the "until".
func (p *Parser) parseRepeat() (ast.Statement, error) {
	p.pos++ // 'repeat'
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("until"); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return &ast.RepeatLoop{Condition: cond, Body: body}, nil
}

// call_stmt = "call" IDENT "(" [ expression { "," expression } ] ")" ;
func (p *Parser) parseCall() (ast.Statement, error) {
	p.pos++ // 'call'
	name, err := p.expect(token.IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	stmt := &ast.Call{ProcName: name.Literal}
	if t := p.cur(); t == nil {
		return nil, ErrUnexpectedEOF
	} else if t.Type != token.RPAREN {
		for {
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			stmt.Args = append(stmt.Args, arg)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseDelimitedBlock parses "begin" block "end".
func (p *Parser) parseDelimitedBlock() (*ast.Block, error) {
	if err := p.expectKeyword("begin"); err != nil {
		return nil, err
	}
	body, err := p.parseBlockBody()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	return body, nil
}

// ---------------------------------------------------------------------------
// Expressions, precedence low → high:
// relational ( = < > <= >= <> ) → additive ( + - ) → multiplicative
// ( * / mod div ) → primary.
// ---------------------------------------------------------------------------

func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseRelational()
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		if t == nil || !t.Type.IsComparison() {
			return left, nil
		}
		p.pos++
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Operator: t.Literal, Right: right}
	}
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		if t == nil || !t.Type.IsAdditive() {
			return left, nil
		}
		p.pos++
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Operator: t.Literal, Right: right}
	}
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	left, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.cur()
		if t == nil || !t.Type.IsMultiplicative() {
			return left, nil
		}
		p.pos++
		right, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{Left: left, Operator: t.Literal, Right: right}
	}
}

// primary = "(" expression ")"
//         | NUMBER | STRING
//         | "length" "(" expression ")"
//         | CEIL primary | FLOOR primary
//         | IDENT { "." IDENT | "[" expression "]" } ;
func (p *Parser) parsePrimary() (ast.Expression, error) {
	t := p.cur()
	if t == nil {
		return nil, ErrUnexpectedEOF
	}

	switch t.Type {
	case token.LPAREN:
		p.pos++
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return expr, nil

	case token.NUMBER:
		p.pos++
		kind := ast.LiteralInteger
		if strings.ContainsRune(t.Literal, '.') {
			kind = ast.LiteralFloat
		}
		return &ast.Literal{Value: t.Literal, Kind: kind}, nil

	case token.STRING:
		p.pos++
		return &ast.Literal{Value: t.Literal, Kind: ast.LiteralString}, nil

	case token.CEIL, token.FLOOR:
		op := "ceil"
		if t.Type == token.FLOOR {
			op = "floor"
		}
		p.pos++
		operand, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Operator: op, Operand: operand}, nil

	case token.IDENT:
		if strings.ToLower(t.Literal) == "length" {
			p.pos++
			if _, err := p.expect(token.LPAREN); err != nil {
				return nil, err
			}
			arg, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			return &ast.UnaryOp{Operator: "length", Operand: arg}, nil
		}
		p.pos++
		return p.parseSuffixChain(&ast.Variable{Name: t.Literal})
	}

	return nil, &SyntaxError{Expected: "expression", Found: t.Literal, Line: t.Pos.Line}
}

// parseSuffixChain applies any number of .field and [index] suffixes
// left-to-right; each new node wraps the flattened text of the expression
// built so far as its base.
func (p *Parser) parseSuffixChain(expr ast.Expression) (ast.Expression, error) {
	for {
		switch {
		case p.match(token.DOT):
			field, err := p.expect(token.IDENT)
			if err != nil {
				return nil, err
			}
			expr = &ast.FieldAccess{Base: expr.String(), Field: field.Literal}

		case p.match(token.LBRACKET):
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			expr = &ast.ArrayAccess{Base: expr.String(), Index: index}

		default:
			return expr, nil
		}
	}
}
