// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package lexer implements a single-pass lexer for the go-ordo pseudocode
// surface.
//
// Design principles:
//   - Rune-based scanning: the operator set includes multi-byte Unicode
//     glyphs (🡨 ≤ ≥ ≠ ┌ └ ►) with ASCII fallbacks (<- <= >= <> ceil floor //)
//     that must produce identical tokens.
//   - Two-rune operator forms are resolved before the one-rune forms they
//     share a prefix with; this ordering is part of the grammar contract.
//   - Line comments (► or //) consume the remainder of the line and emit
//     no token.
//   - Any rune matching no pattern aborts the whole tokenization with a
//     *LexError carrying the offending position.
package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ordolang/go-ordo/lang/token"
)

// Unicode glyph forms of the operator set. Each has an ASCII fallback
// handled inline in NextToken.
const (
	glyphAssign  = '🡨'
	glyphLE      = '≤'
	glyphGE      = '≥'
	glyphNE      = '≠'
	glyphCeil    = '┌'
	glyphFloor   = '└'
	glyphComment = '►'
)

// LexError reports an input rune that matches no lexical pattern.
// It is fatal to the tokenization of the whole file.
type LexError struct {
	Line   int
	Column int
	Char   rune
}

func (e *LexError) Error() string {
	return fmt.Sprintf("unexpected character %q at line %d, column %d", e.Char, e.Line, e.Column)
}

// Lexer holds the state for a single-pass tokenization run.
type Lexer struct {
	filename string
	input    string

	// pos is the byte index into input of the rune AFTER ch.
	// After advance(), ch is the current rune and pos points one rune past it.
	pos  int
	line int // 1-based current line number
	col  int // 1-based current column number (counted in runes)

	ch rune // current rune; 0 when past end
}

// New creates a new Lexer for the given filename and input string.
func New(filename, input string) *Lexer {
	l := &Lexer{
		filename: filename,
		input:    input,
		line:     1,
		col:      0,
	}
	l.advance() // prime l.ch with the first rune
	return l
}

// advance moves to the next rune in the input, updating line/column tracking.
// When the end of input is reached, ch is set to 0.
func (l *Lexer) advance() {
	if l.ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	if l.pos >= len(l.input) {
		l.ch = 0
		return
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.ch = r
	l.pos += w
}

// peek returns the rune after the current one without consuming it.
// Returns 0 if at or past end.
func (l *Lexer) peek() rune {
	if l.pos >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	return r
}

// currentPos returns a token.Position capturing the lexer's state right now.
// Call this before consuming the first rune of a token.
func (l *Lexer) currentPos() token.Position {
	return token.Position{
		File:   l.filename,
		Line:   l.line,
		Column: l.col,
	}
}

func makeToken(typ token.Type, literal string, pos token.Position) token.Token {
	return token.Token{Type: typ, Literal: literal, Pos: pos}
}

// skipWhitespace consumes space, tab, carriage return, and newline runes.
// Newlines advance the line counter inside advance().
func (l *Lexer) skipWhitespace() {
	for l.ch == ' ' || l.ch == '\t' || l.ch == '\r' || l.ch == '\n' {
		l.advance()
	}
}

// skipLineComment consumes up to, but not including, the next newline.
func (l *Lexer) skipLineComment() {
	for l.ch != '\n' && l.ch != 0 {
		l.advance()
	}
}

// NextToken scans and returns the next token from the input.
// After EOF is reached, subsequent calls continue returning EOF tokens.
// Unrecognized runes produce an ILLEGAL token; Tokenize converts the first
// ILLEGAL token into a *LexError.
func (l *Lexer) NextToken() token.Token {
	for {
		l.skipWhitespace()
		if l.ch == glyphComment || (l.ch == '/' && l.peek() == '/') {
			l.skipLineComment()
			continue
		}
		break
	}

	pos := l.currentPos()
	ch := l.ch

	if ch == 0 {
		return makeToken(token.EOF, "", pos)
	}

	l.advance() // consume ch; from here on, l.ch is the rune AFTER ch

	switch {
	// -------------------------------------------------------------------------
	// Identifiers, keywords, and the keyword-like operators mod/div/ceil/floor
	// -------------------------------------------------------------------------
	case isIdentStart(ch):
		lit := l.readIdentFromFirst(ch)
		return makeToken(lookupWordOperator(lit), lit, pos)

	// -------------------------------------------------------------------------
	// Numeric literals: digits with an optional fraction part. A bare dot is
	// left alone so that range bounds like 1..n still tokenize as NUMBER DOTDOT.
	// -------------------------------------------------------------------------
	case isDigit(ch):
		return makeToken(token.NUMBER, l.readNumberFromFirst(ch), pos)

	// -------------------------------------------------------------------------
	// String literals: no escape sequences; the body runs to the closing quote.
	// -------------------------------------------------------------------------
	case ch == '"':
		lit, ok := l.readStringBody()
		if !ok {
			return makeToken(token.ILLEGAL, string(ch), pos)
		}
		return makeToken(token.STRING, lit, pos)

	// -------------------------------------------------------------------------
	// Glyph operators
	// -------------------------------------------------------------------------
	case ch == glyphAssign:
		return makeToken(token.ASSIGN, string(ch), pos)
	case ch == glyphLE:
		return makeToken(token.LE, string(ch), pos)
	case ch == glyphGE:
		return makeToken(token.GE, string(ch), pos)
	case ch == glyphNE:
		return makeToken(token.NE, string(ch), pos)
	case ch == glyphCeil:
		return makeToken(token.CEIL, string(ch), pos)
	case ch == glyphFloor:
		return makeToken(token.FLOOR, string(ch), pos)

	// -------------------------------------------------------------------------
	// ASCII operators. Two-rune forms are checked before the one-rune forms
	// they could be confused with: <- <= <> before <, >= before >, .. before .
	// -------------------------------------------------------------------------
	case ch == '<':
		switch l.ch {
		case '-':
			l.advance()
			return makeToken(token.ASSIGN, "<-", pos)
		case '=':
			l.advance()
			return makeToken(token.LE, "<=", pos)
		case '>':
			l.advance()
			return makeToken(token.NE, "<>", pos)
		default:
			return makeToken(token.LT, "<", pos)
		}

	case ch == '>':
		if l.ch == '=' {
			l.advance()
			return makeToken(token.GE, ">=", pos)
		}
		return makeToken(token.GT, ">", pos)

	case ch == '.':
		if l.ch == '.' {
			l.advance()
			return makeToken(token.DOTDOT, "..", pos)
		}
		return makeToken(token.DOT, ".", pos)

	case ch == '=':
		return makeToken(token.EQ, "=", pos)
	case ch == '+':
		return makeToken(token.PLUS, "+", pos)
	case ch == '-':
		return makeToken(token.MINUS, "-", pos)
	case ch == '*':
		return makeToken(token.STAR, "*", pos)
	case ch == '/':
		return makeToken(token.SLASH, "/", pos)

	// -------------------------------------------------------------------------
	// Punctuation
	// -------------------------------------------------------------------------
	case ch == '(':
		return makeToken(token.LPAREN, "(", pos)
	case ch == ')':
		return makeToken(token.RPAREN, ")", pos)
	case ch == '[':
		return makeToken(token.LBRACKET, "[", pos)
	case ch == ']':
		return makeToken(token.RBRACKET, "]", pos)
	case ch == '{':
		return makeToken(token.LBRACE, "{", pos)
	case ch == '}':
		return makeToken(token.RBRACE, "}", pos)
	case ch == ',':
		return makeToken(token.COMMA, ",", pos)
	}

	// Anything else fails the whole tokenization.
	return makeToken(token.ILLEGAL, string(ch), pos)
}

// Tokenize returns all tokens (excluding the final EOF) produced by repeated
// calls to NextToken, or a *LexError for the first unrecognized rune.
func Tokenize(filename, input string) ([]token.Token, error) {
	l := New(filename, input)
	var toks []token.Token
	for {
		tok := l.NextToken()
		switch tok.Type {
		case token.EOF:
			return toks, nil
		case token.ILLEGAL:
			ch, _ := utf8.DecodeRuneInString(tok.Literal)
			return nil, &LexError{Line: tok.Pos.Line, Column: tok.Pos.Column, Char: ch}
		}
		toks = append(toks, tok)
	}
}

// ---------------------------------------------------------------------------
// Internal readers — each assumes the first rune has already been consumed
// by the advance() call inside NextToken.
// ---------------------------------------------------------------------------

// readIdentFromFirst builds an identifier literal starting with the already-
// consumed rune `first`, then consuming subsequent ident-continue runes.
func (l *Lexer) readIdentFromFirst(first rune) string {
	buf := make([]rune, 1, 16)
	buf[0] = first
	for isIdentContinue(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}
	return string(buf)
}

// readNumberFromFirst parses an integer or decimal literal given the
// already-consumed first digit. The dot is only taken as a fraction
// separator when a digit follows it; otherwise it is left for DOTDOT/DOT.
func (l *Lexer) readNumberFromFirst(first rune) string {
	buf := make([]rune, 1, 16)
	buf[0] = first
	for isDigit(l.ch) {
		buf = append(buf, l.ch)
		l.advance()
	}
	if l.ch == '.' && isDigit(l.peek()) {
		buf = append(buf, '.')
		l.advance()
		for isDigit(l.ch) {
			buf = append(buf, l.ch)
			l.advance()
		}
	}
	return string(buf)
}

// readStringBody reads the content of a string literal after the opening '"'
// has been consumed. It returns the full literal — including both quote
// runes — and a bool that is false when the string is unterminated.
func (l *Lexer) readStringBody() (string, bool) {
	buf := make([]rune, 1, 32)
	buf[0] = '"'
	for {
		switch l.ch {
		case 0:
			return string(buf), false
		case '"':
			buf = append(buf, '"')
			l.advance()
			return string(buf), true
		default:
			buf = append(buf, l.ch)
			l.advance()
		}
	}
}

// lookupWordOperator resolves identifiers that are really operators.
// mod and div match case-insensitively; the whole-identifier match gives
// them the required non-identifier boundary for free (modulo stays IDENT).
// ceil and floor are the ASCII fallbacks for ┌ and └.
func lookupWordOperator(lit string) token.Type {
	switch {
	case strings.EqualFold(lit, "mod"):
		return token.MOD
	case strings.EqualFold(lit, "div"):
		return token.DIV
	case lit == "ceil":
		return token.CEIL
	case lit == "floor":
		return token.FLOOR
	default:
		return token.IDENT
	}
}

// ---------------------------------------------------------------------------
// Character classification helpers
// ---------------------------------------------------------------------------

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch rune) bool {
	return isIdentStart(ch) || isDigit(ch)
}
