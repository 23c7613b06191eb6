// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package parser

import (
	"errors"
	"testing"

	"github.com/ordolang/go-ordo/lang/ast"
)

func mustParse(t *testing.T, source string) *ast.Program {
	t.Helper()
	prog, err := Parse("test", source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return prog
}

func TestMinimalProcedure(t *testing.T) {
	prog := mustParse(t, "p() begin x <- 1 end")

	if len(prog.Procedures) != 1 {
		t.Fatalf("got %d procedures, want 1", len(prog.Procedures))
	}
	proc := prog.Procedures[0]
	if proc.Name != "p" {
		t.Errorf("got name %q, want %q", proc.Name, "p")
	}
	if len(proc.Body.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(proc.Body.Statements))
	}
	assign, ok := proc.Body.Statements[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("got %T, want *ast.Assignment", proc.Body.Statements[0])
	}
	lit, ok := assign.Value.(*ast.Literal)
	if !ok {
		t.Fatalf("got %T, want *ast.Literal", assign.Value)
	}
	if lit.Value != "1" || lit.Kind != ast.LiteralInteger {
		t.Errorf("got literal %q (%s), want \"1\" (Integer)", lit.Value, lit.Kind)
	}
}

func TestProgramStructure(t *testing.T) {
	prog := mustParse(t, `
Clase Punto { x y }

suma(a, b)
begin
    r <- a + b
end

begin
    call suma(1, 2)
end
`)
	if len(prog.Classes) != 1 {
		t.Fatalf("got %d classes, want 1", len(prog.Classes))
	}
	c := prog.Classes[0]
	if c.Name != "Punto" || len(c.Attributes) != 2 {
		t.Errorf("got class %q with %d attributes, want Punto with 2", c.Name, len(c.Attributes))
	}
	if len(prog.Procedures) != 1 {
		t.Fatalf("got %d procedures, want 1", len(prog.Procedures))
	}
	if len(prog.MainBlock.Statements) != 1 {
		t.Fatalf("got %d main statements, want 1", len(prog.MainBlock.Statements))
	}
	call, ok := prog.MainBlock.Statements[0].(*ast.Call)
	if !ok {
		t.Fatalf("got %T, want *ast.Call", prog.MainBlock.Statements[0])
	}
	if call.ProcName != "suma" || len(call.Args) != 2 {
		t.Errorf("got call %s with %d args, want suma with 2", call.ProcName, len(call.Args))
	}
}

func TestKeywordsCaseInsensitive(t *testing.T) {
	prog := mustParse(t, "BEGIN x 🡨 1 End")
	if len(prog.MainBlock.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.MainBlock.Statements))
	}
}

func TestParameters(t *testing.T) {
	prog := mustParse(t, "f(n, A[1..n], M[1..n][1..m], Clase Punto p) begin x <- 1 end")

	params := prog.Procedures[0].Params
	want := []ast.Parameter{
		{Name: "n", Kind: ast.ParamScalar},
		{Name: "A", Kind: ast.ParamArray},
		{Name: "M", Kind: ast.ParamArray},
		{Name: "p", Kind: ast.ParamObject, Class: "Punto"},
	}
	if len(params) != len(want) {
		t.Fatalf("got %d params, want %d", len(params), len(want))
	}
	for i, w := range want {
		if params[i] != w {
			t.Errorf("param %d: got %+v, want %+v", i, params[i], w)
		}
	}
}

func TestIfElse(t *testing.T) {
	prog := mustParse(t, `
begin
    if (x < 10) then
    begin
        y <- 1
    end
    else
    begin
        y <- 2
    end
end`)
	stmt, ok := prog.MainBlock.Statements[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("got %T, want *ast.IfStatement", prog.MainBlock.Statements[0])
	}
	if stmt.ElseBlock == nil {
		t.Fatal("else block missing")
	}
	cond, ok := stmt.Condition.(*ast.BinaryOp)
	if !ok || cond.Operator != "<" {
		t.Fatalf("condition: got %s", stmt.Condition)
	}
}

func TestIfWithoutElse(t *testing.T) {
	prog := mustParse(t, "begin if (x = 1) then begin y <- 2 end end")
	stmt := prog.MainBlock.Statements[0].(*ast.IfStatement)
	if stmt.ElseBlock != nil {
		t.Fatal("unexpected else block")
	}
}

func TestForLoop(t *testing.T) {
	prog := mustParse(t, "begin for i 🡨 1 to n do begin s <- s + i end end")
	loop, ok := prog.MainBlock.Statements[0].(*ast.ForLoop)
	if !ok {
		t.Fatalf("got %T, want *ast.ForLoop", prog.MainBlock.Statements[0])
	}
	if loop.Variable != "i" {
		t.Errorf("got variable %q, want i", loop.Variable)
	}
	if loop.End.String() != "n" {
		t.Errorf("got end %s, want n", loop.End)
	}
}

func TestWhileLoop(t *testing.T) {
	prog := mustParse(t, "begin while (i ≤ n) do begin i <- i + 1 end end")
	loop, ok := prog.MainBlock.Statements[0].(*ast.WhileLoop)
	if !ok {
		t.Fatalf("got %T, want *ast.WhileLoop", prog.MainBlock.Statements[0])
	}
	cond := loop.Condition.(*ast.BinaryOp)
	if cond.Operator != "≤" {
		t.Errorf("got operator %q, want ≤", cond.Operator)
	}
}

func TestRepeatLoop(t *testing.T) {
	// The repeat body is undelimited; it runs to the until.
	prog := mustParse(t, "begin repeat i <- i + 1 until (i > n) end")
	loop, ok := prog.MainBlock.Statements[0].(*ast.RepeatLoop)
	if !ok {
		t.Fatalf("got %T, want *ast.RepeatLoop", prog.MainBlock.Statements[0])
	}
	if len(loop.Body.Statements) != 1 {
		t.Fatalf("got %d body statements, want 1", len(loop.Body.Statements))
	}
}

func TestPrecedence(t *testing.T) {
	prog := mustParse(t, "begin r <- a + b * c end")
	assign := prog.MainBlock.Statements[0].(*ast.Assignment)
	if got := assign.Value.String(); got != "(a + (b * c))" {
		t.Errorf("got %s, want (a + (b * c))", got)
	}

	prog = mustParse(t, "begin r <- (a + b) * c end")
	assign = prog.MainBlock.Statements[0].(*ast.Assignment)
	if got := assign.Value.String(); got != "((a + b) * c)" {
		t.Errorf("got %s, want ((a + b) * c)", got)
	}
}

func TestSuffixChains(t *testing.T) {
	prog := mustParse(t, "begin x <- A[i].val end")
	assign := prog.MainBlock.Statements[0].(*ast.Assignment)
	field, ok := assign.Value.(*ast.FieldAccess)
	if !ok {
		t.Fatalf("got %T, want *ast.FieldAccess", assign.Value)
	}
	if field.Base != "A[i]" || field.Field != "val" {
		t.Errorf("got %s.%s, want A[i].val", field.Base, field.Field)
	}
}

func TestAssignmentTargets(t *testing.T) {
	tests := []struct {
		source string
		target string
	}{
		{"begin x <- 1 end", "x"},
		{"begin A[i] <- 1 end", "A[i]"},
		{"begin p.x <- 1 end", "p.x"},
		{"begin M[i][j] <- 1 end", "M[i][j]"},
	}
	for _, tt := range tests {
		prog := mustParse(t, tt.source)
		assign := prog.MainBlock.Statements[0].(*ast.Assignment)
		if got := assign.TargetText(); got != tt.target {
			t.Errorf("source %q: got target %q, want %q", tt.source, got, tt.target)
		}
	}
}

func TestLengthExpression(t *testing.T) {
	prog := mustParse(t, "begin n <- length(A) end")
	assign := prog.MainBlock.Statements[0].(*ast.Assignment)
	un, ok := assign.Value.(*ast.UnaryOp)
	if !ok || un.Operator != "length" {
		t.Fatalf("got %s, want length(A)", assign.Value)
	}
}

func TestCeilFloor(t *testing.T) {
	prog := mustParse(t, "begin m <- ┌ n / 2 end")
	assign := prog.MainBlock.Statements[0].(*ast.Assignment)
	bin, ok := assign.Value.(*ast.BinaryOp)
	if !ok {
		t.Fatalf("got %T, want *ast.BinaryOp", assign.Value)
	}
	un, ok := bin.Left.(*ast.UnaryOp)
	if !ok || un.Operator != "ceil" {
		t.Fatalf("got %s, want ceil(n)", bin.Left)
	}
}

func TestSyntaxError(t *testing.T) {
	_, err := Parse("test", "begin if x then begin y <- 1 end end")
	if err == nil {
		t.Fatal("expected error for missing parenthesis")
	}
	var synErr *SyntaxError
	if !errors.As(err, &synErr) {
		t.Fatalf("got %T, want *SyntaxError", err)
	}
}

func TestUnexpectedEOF(t *testing.T) {
	_, err := Parse("test", "begin x <- 1")
	if err == nil {
		t.Fatal("expected error for missing end")
	}
}

func TestTrailingInput(t *testing.T) {
	_, err := Parse("test", "begin x <- 1 end garbage")
	if err == nil {
		t.Fatal("expected error for trailing input")
	}
}

func TestAllOrNothing(t *testing.T) {
	// A late error yields no partial tree.
	prog, err := Parse("test", "p() begin x <- 1 end q() begin y <- end")
	if err == nil {
		t.Fatal("expected error")
	}
	if prog != nil {
		t.Fatal("got partial tree, want nil")
	}
}

func TestProgramName(t *testing.T) {
	prog := mustParse(t, "begin x <- 1 end")
	if prog.Name != "test" {
		t.Errorf("got name %q, want test", prog.Name)
	}
	prog, err := Parse("", "begin x <- 1 end")
	if err != nil {
		t.Fatal(err)
	}
	if prog.Name != "Program" {
		t.Errorf("got name %q, want Program", prog.Name)
	}
}
