// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package token defines the lexical token types for the pseudocode surface
// analyzed by go-ordo.
//
// Design principles:
//   - Every operator has at least one Unicode glyph form and one ASCII
//     fallback form; both lex to the same token type.
//   - Keywords (begin, end, if, for, ...) are case-insensitive and are NOT
//     distinguished at the lexical level: they surface as IDENT tokens and
//     the parser dispatches on their lowercased literal text. An identifier
//     and a keyword are the same lexical animal in this grammar.
//   - mod and div are the only keyword-like operators resolved by the lexer,
//     matched case-insensitively on whole identifiers.
package token

import "fmt"

// Token represents a lexical token.
type Token struct {
	Type    Type
	Literal string
	Pos     Position
}

// Position tracks source location.
type Position struct {
	File   string
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Type is the set of lexical token types.
type Type int

const (
	// Special tokens
	ILLEGAL Type = iota
	EOF

	// Literals and names
	IDENT  // x, matriz, begin, Clase
	NUMBER // 42, 3.14
	STRING // "hola"

	// Assignment
	ASSIGN // 🡨 or <-

	// Comparison
	EQ // =
	NE // ≠ or <>
	LT // <
	GT // >
	LE // ≤ or <=
	GE // ≥ or >=

	// Arithmetic
	PLUS  // +
	MINUS // -
	STAR  // *
	SLASH // /
	MOD   // mod (case-insensitive)
	DIV   // div (case-insensitive)
	CEIL  // ┌ or ceil
	FLOOR // └ or floor

	// Delimiters
	LPAREN   // (
	RPAREN   // )
	LBRACKET // [
	RBRACKET // ]
	LBRACE   // {
	RBRACE   // }
	DOTDOT   // ..
	DOT      // .
	COMMA    // ,
)

var tokenNames = [...]string{
	ILLEGAL: "ILLEGAL",
	EOF:     "EOF",

	IDENT:  "IDENT",
	NUMBER: "NUMBER",
	STRING: "STRING",

	ASSIGN: "🡨",

	EQ: "=",
	NE: "≠",
	LT: "<",
	GT: ">",
	LE: "≤",
	GE: "≥",

	PLUS:  "+",
	MINUS: "-",
	STAR:  "*",
	SLASH: "/",
	MOD:   "mod",
	DIV:   "div",
	CEIL:  "┌",
	FLOOR: "└",

	LPAREN:   "(",
	RPAREN:   ")",
	LBRACKET: "[",
	RBRACKET: "]",
	LBRACE:   "{",
	RBRACE:   "}",
	DOTDOT:   "..",
	DOT:      ".",
	COMMA:    ",",
}

// String returns the string form of a token type.
func (t Type) String() string {
	if int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// IsComparison returns true for the six relational operator tokens.
func (t Type) IsComparison() bool {
	return t >= EQ && t <= GE
}

// IsAdditive returns true for + and -.
func (t Type) IsAdditive() bool {
	return t == PLUS || t == MINUS
}

// IsMultiplicative returns true for *, /, mod and div.
func (t Type) IsMultiplicative() bool {
	return t == STAR || t == SLASH || t == MOD || t == DIV
}
