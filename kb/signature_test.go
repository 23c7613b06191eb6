// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package kb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordolang/go-ordo/lang/ast"
	"github.com/ordolang/go-ordo/lang/parser"
)

func parseTree(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := parser.Parse("sig", source)
	require.NoError(t, err)
	return prog
}

func TestSignatureDeterministic(t *testing.T) {
	a := parseTree(t, "begin for i <- 1 to n do begin s <- s + i end end")
	b := parseTree(t, "begin for i <- 1 to n do begin s <- s + i end end")
	assert.Equal(t, Signature(a), Signature(b))
	assert.Len(t, Signature(a), 64)
}

func TestSignatureNameSensitive(t *testing.T) {
	// Identical algorithms under different variable names hash differently:
	// the signature is a structural-equality key, not an alpha-equivalence key.
	a := parseTree(t, "begin for i <- 1 to n do begin s <- s + i end end")
	b := parseTree(t, "begin for j <- 1 to n do begin s <- s + j end end")
	assert.NotEqual(t, Signature(a), Signature(b))
}

func TestSignatureLiteralSensitive(t *testing.T) {
	a := parseTree(t, "begin x <- 1 end")
	b := parseTree(t, "begin x <- 2 end")
	assert.NotEqual(t, Signature(a), Signature(b))
}

func TestSignatureDistinguishesLoopForms(t *testing.T) {
	// While and repeat share the condition+body field shape; the node kind
	// must still separate them.
	while := parseTree(t, "begin while (i < n) do begin i <- i + 1 end end").MainBlock.Statements[0]
	repeat := parseTree(t, "begin repeat i <- i + 1 until (i < n) end").MainBlock.Statements[0]
	assert.NotEqual(t, Signature(while), Signature(repeat))
}

func TestSignatureSubtreeStable(t *testing.T) {
	// The same subtree embedded in different programs signs identically.
	a := parseTree(t, "begin x <- 1\ny <- 2 end").MainBlock.Statements[0]
	b := parseTree(t, "begin x <- 1 end").MainBlock.Statements[0]
	assert.Equal(t, Signature(a), Signature(b))
}
