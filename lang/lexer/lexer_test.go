// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package lexer

import (
	"errors"
	"testing"

	"github.com/ordolang/go-ordo/lang/token"
)

type expected struct {
	typ token.Type
	lit string
}

func mustTokenize(t *testing.T, input string) []token.Token {
	t.Helper()
	toks, err := Tokenize("test", input)
	if err != nil {
		t.Fatalf("Tokenize(%q) failed: %v", input, err)
	}
	return toks
}

func checkTokens(t *testing.T, input string, want []expected) {
	t.Helper()
	toks := mustTokenize(t, input)
	if len(toks) != len(want) {
		t.Fatalf("input %q: got %d tokens, want %d", input, len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].Type != w.typ {
			t.Errorf("input %q token %d: got type %s, want %s", input, i, toks[i].Type, w.typ)
		}
		if toks[i].Literal != w.lit {
			t.Errorf("input %q token %d: got literal %q, want %q", input, i, toks[i].Literal, w.lit)
		}
	}
}

func TestOperatorAliases(t *testing.T) {
	// Each glyph and its ASCII fallback must produce the same token type.
	tests := []struct {
		glyph string
		ascii string
		typ   token.Type
	}{
		{"🡨", "<-", token.ASSIGN},
		{"≤", "<=", token.LE},
		{"≥", ">=", token.GE},
		{"≠", "<>", token.NE},
		{"┌", "ceil", token.CEIL},
		{"└", "floor", token.FLOOR},
	}
	for _, tt := range tests {
		for _, form := range []string{tt.glyph, tt.ascii} {
			toks := mustTokenize(t, form)
			if len(toks) != 1 {
				t.Fatalf("input %q: got %d tokens, want 1", form, len(toks))
			}
			if toks[0].Type != tt.typ {
				t.Errorf("input %q: got type %s, want %s", form, toks[0].Type, tt.typ)
			}
		}
	}
}

func TestSingleCharOperators(t *testing.T) {
	checkTokens(t, "= < > + - * / ( ) [ ] { } , .", []expected{
		{token.EQ, "="}, {token.LT, "<"}, {token.GT, ">"},
		{token.PLUS, "+"}, {token.MINUS, "-"}, {token.STAR, "*"}, {token.SLASH, "/"},
		{token.LPAREN, "("}, {token.RPAREN, ")"},
		{token.LBRACKET, "["}, {token.RBRACKET, "]"},
		{token.LBRACE, "{"}, {token.RBRACE, "}"},
		{token.COMMA, ","}, {token.DOT, "."},
	})
}

func TestTwoCharBeforeOneChar(t *testing.T) {
	// <- <= <> must win over < and >= over >; .. over .
	checkTokens(t, "a<-1", []expected{
		{token.IDENT, "a"}, {token.ASSIGN, "<-"}, {token.NUMBER, "1"},
	})
	checkTokens(t, "a<=b<>c>=d", []expected{
		{token.IDENT, "a"}, {token.LE, "<="},
		{token.IDENT, "b"}, {token.NE, "<>"},
		{token.IDENT, "c"}, {token.GE, ">="},
		{token.IDENT, "d"},
	})
	checkTokens(t, "1..n", []expected{
		{token.NUMBER, "1"}, {token.DOTDOT, ".."}, {token.IDENT, "n"},
	})
}

func TestWordOperators(t *testing.T) {
	// mod and div match case-insensitively; the boundary requirement means
	// identifiers merely containing them stay identifiers.
	checkTokens(t, "x MOD y Div z", []expected{
		{token.IDENT, "x"}, {token.MOD, "MOD"},
		{token.IDENT, "y"}, {token.DIV, "Div"},
		{token.IDENT, "z"},
	})
	checkTokens(t, "modulo dividend", []expected{
		{token.IDENT, "modulo"}, {token.IDENT, "dividend"},
	})
}

func TestKeywordsAreIdentifiers(t *testing.T) {
	// Keywords carry no dedicated token type; the parser matches their text.
	checkTokens(t, "begin If WHILE end", []expected{
		{token.IDENT, "begin"}, {token.IDENT, "If"},
		{token.IDENT, "WHILE"}, {token.IDENT, "end"},
	})
}

func TestNumbers(t *testing.T) {
	checkTokens(t, "0 42 3.14", []expected{
		{token.NUMBER, "0"}, {token.NUMBER, "42"}, {token.NUMBER, "3.14"},
	})
	// A dot not followed by a digit is not a fraction separator.
	checkTokens(t, "2..5", []expected{
		{token.NUMBER, "2"}, {token.DOTDOT, ".."}, {token.NUMBER, "5"},
	})
}

func TestStrings(t *testing.T) {
	checkTokens(t, `x 🡨 "hello world"`, []expected{
		{token.IDENT, "x"}, {token.ASSIGN, "🡨"}, {token.STRING, `"hello world"`},
	})
}

func TestComments(t *testing.T) {
	checkTokens(t, "x ► the rest is ignored\ny", []expected{
		{token.IDENT, "x"}, {token.IDENT, "y"},
	})
	checkTokens(t, "x // ascii comment\ny", []expected{
		{token.IDENT, "x"}, {token.IDENT, "y"},
	})
	// A single slash is still division.
	checkTokens(t, "a / b", []expected{
		{token.IDENT, "a"}, {token.SLASH, "/"}, {token.IDENT, "b"},
	})
}

func TestPositions(t *testing.T) {
	toks := mustTokenize(t, "a\n  bb")
	if toks[0].Pos.Line != 1 || toks[0].Pos.Column != 1 {
		t.Errorf("token a: got %d:%d, want 1:1", toks[0].Pos.Line, toks[0].Pos.Column)
	}
	if toks[1].Pos.Line != 2 || toks[1].Pos.Column != 3 {
		t.Errorf("token bb: got %d:%d, want 2:3", toks[1].Pos.Line, toks[1].Pos.Column)
	}
}

func TestLexError(t *testing.T) {
	_, err := Tokenize("test", "x 🡨 1\ny @ 2")
	if err == nil {
		t.Fatal("expected error for unrecognized rune")
	}
	var lexErr *LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("got %T, want *LexError", err)
	}
	if lexErr.Line != 2 {
		t.Errorf("got line %d, want 2", lexErr.Line)
	}
	if lexErr.Char != '@' {
		t.Errorf("got char %q, want '@'", lexErr.Char)
	}
}

func TestUnterminatedString(t *testing.T) {
	if _, err := Tokenize("test", `x 🡨 "no closing quote`); err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestEmptyInput(t *testing.T) {
	if toks := mustTokenize(t, ""); len(toks) != 0 {
		t.Fatalf("got %d tokens for empty input, want 0", len(toks))
	}
	if toks := mustTokenize(t, "   \n\t ► just a comment"); len(toks) != 0 {
		t.Fatalf("got %d tokens for blank input, want 0", len(toks))
	}
}
