// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package ast defines the Abstract Syntax Tree for the go-ordo pseudocode
// surface.
//
// Design overview:
//
//   - All AST nodes implement the Node interface via String and Serialize.
//   - Expressions and Statements each have a marker interface that embeds
//     Node to enable type-safe dispatch; the node set is closed.
//   - The tree is acyclic and every node is exclusively owned by its parent
//     container. Statement order inside a Block is execution order.
//   - Serialize produces the canonical field map used both as the signature
//     input for memoization and as the oracle wire format. Absent optional
//     fields are omitted; child nodes are expanded recursively; sequences
//     keep their order.
package ast

import (
	"bytes"
	"strings"
)

// ---------------------------------------------------------------------------
// Core interfaces
// ---------------------------------------------------------------------------

// Node is the base interface that every AST node must implement.
type Node interface {
	// String returns a human-readable, flattened representation of the node
	// suitable for unit tests, debug output, and lvalue display.
	String() string

	// Serialize returns the canonical field map for this node. The map is
	// marshaled with sorted keys when hashed or sent to the oracle, so two
	// structurally identical subtrees always serialize identically.
	Serialize() map[string]interface{}
}

// Expression is a marker interface for all expression nodes.
type Expression interface {
	Node
	expressionNode()
}

// Statement is a marker interface for all statement nodes.
type Statement interface {
	Node
	statementNode()
}

// ---------------------------------------------------------------------------
// Program — root of every parse tree
// ---------------------------------------------------------------------------

// Program is the top-level AST node: class definitions, then procedure
// definitions, then an optional main block.
type Program struct {
	Name       string
	Classes    []*ClassDef
	Procedures []*ProcedureDef
	MainBlock  *Block
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, c := range p.Classes {
		out.WriteString(c.String())
		out.WriteByte('\n')
	}
	for _, pr := range p.Procedures {
		out.WriteString(pr.String())
		out.WriteByte('\n')
	}
	if p.MainBlock != nil && len(p.MainBlock.Statements) > 0 {
		out.WriteString("begin ")
		out.WriteString(p.MainBlock.String())
		out.WriteString(" end")
	}
	return out.String()
}

func (p *Program) Serialize() map[string]interface{} {
	m := map[string]interface{}{
		"kind": "Program",
		"name": p.Name,
	}
	if len(p.Classes) > 0 {
		m["classes"] = serializeSlice(p.Classes)
	}
	if len(p.Procedures) > 0 {
		m["procedures"] = serializeSlice(p.Procedures)
	}
	if p.MainBlock != nil {
		m["main_block"] = p.MainBlock.Serialize()
	}
	return m
}

// ---------------------------------------------------------------------------
// Declarations
// ---------------------------------------------------------------------------

// ClassDef is a class declaration: Clase Name { attr1 attr2 ... }.
type ClassDef struct {
	Name       string
	Attributes []string
}

func (c *ClassDef) String() string {
	return "Clase " + c.Name + " { " + strings.Join(c.Attributes, " ") + " }"
}

func (c *ClassDef) Serialize() map[string]interface{} {
	m := map[string]interface{}{
		"kind": "ClassDef",
		"name": c.Name,
	}
	if len(c.Attributes) > 0 {
		attrs := make([]interface{}, len(c.Attributes))
		for i, a := range c.Attributes {
			attrs[i] = a
		}
		m["attributes"] = attrs
	}
	return m
}

// ProcedureDef is a subroutine declaration: name(params) begin body end.
type ProcedureDef struct {
	Name   string
	Params []Parameter
	Body   *Block
}

func (p *ProcedureDef) String() string {
	parts := make([]string, len(p.Params))
	for i, pa := range p.Params {
		parts[i] = pa.String()
	}
	return p.Name + "(" + strings.Join(parts, ", ") + ") begin " + p.Body.String() + " end"
}

func (p *ProcedureDef) Serialize() map[string]interface{} {
	m := map[string]interface{}{
		"kind": "ProcedureDef",
		"name": p.Name,
	}
	if len(p.Params) > 0 {
		params := make([]interface{}, len(p.Params))
		for i := range p.Params {
			params[i] = p.Params[i].Serialize()
		}
		m["params"] = params
	}
	if p.Body != nil {
		m["body"] = p.Body.Serialize()
	}
	return m
}

// ParamKind tags the three parameter shapes of the grammar.
type ParamKind string

const (
	ParamScalar ParamKind = "scalar" // plain name
	ParamArray  ParamKind = "array"  // name followed by bracketed dimensions
	ParamObject ParamKind = "object" // Clase ClassName objectName
)

// Parameter is a single formal parameter of a procedure. Class is only set
// for object parameters. Array dimension ranges (a..b) are consumed by the
// parser but not retained structurally.
type Parameter struct {
	Name  string
	Kind  ParamKind
	Class string
}

func (p Parameter) String() string {
	switch p.Kind {
	case ParamArray:
		return p.Name + "[]"
	case ParamObject:
		return "Clase " + p.Class + " " + p.Name
	default:
		return p.Name
	}
}

func (p Parameter) Serialize() map[string]interface{} {
	m := map[string]interface{}{
		"kind": "Parameter",
		"name": p.Name,
		"type": string(p.Kind),
	}
	if p.Class != "" {
		m["class"] = p.Class
	}
	return m
}

// ---------------------------------------------------------------------------
// Statements
// ---------------------------------------------------------------------------

// Block is an ordered sequence of statements; listed order is execution order.
type Block struct {
	Statements []Statement
}

func (b *Block) String() string {
	parts := make([]string, len(b.Statements))
	for i, s := range b.Statements {
		parts[i] = s.String()
	}
	return strings.Join(parts, "; ")
}

func (b *Block) Serialize() map[string]interface{} {
	m := map[string]interface{}{"kind": "Block"}
	if len(b.Statements) > 0 {
		m["statements"] = serializeSlice(b.Statements)
	}
	return m
}

// Assignment is target 🡨 value. Target keeps the full lvalue expression;
// TargetText renders the flattened textual form used for display and in the
// canonical serialization.
type Assignment struct {
	Target Expression
	Value  Expression
}

func (a *Assignment) statementNode() {}

// TargetText returns the flattened textual form of the lvalue.
func (a *Assignment) TargetText() string { return a.Target.String() }

func (a *Assignment) String() string {
	return a.TargetText() + " 🡨 " + a.Value.String()
}

func (a *Assignment) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"kind":   "Assignment",
		"target": a.TargetText(),
		"value":  a.Value.Serialize(),
	}
}

// IfStatement is if (cond) then begin ... end [else begin ... end].
type IfStatement struct {
	Condition Expression
	ThenBlock *Block
	ElseBlock *Block // nil when there is no else branch
}

func (s *IfStatement) statementNode() {}

func (s *IfStatement) String() string {
	out := "if (" + s.Condition.String() + ") then begin " + s.ThenBlock.String() + " end"
	if s.ElseBlock != nil {
		out += " else begin " + s.ElseBlock.String() + " end"
	}
	return out
}

func (s *IfStatement) Serialize() map[string]interface{} {
	m := map[string]interface{}{
		"kind":       "IfStatement",
		"condition":  s.Condition.Serialize(),
		"then_block": s.ThenBlock.Serialize(),
	}
	if s.ElseBlock != nil {
		m["else_block"] = s.ElseBlock.Serialize()
	}
	return m
}

// ForLoop is for var 🡨 start to end do begin body end. Variable is in scope
// for the body only.
type ForLoop struct {
	Variable string
	Start    Expression
	End      Expression
	Body     *Block
}

func (s *ForLoop) statementNode() {}

func (s *ForLoop) String() string {
	return "for " + s.Variable + " 🡨 " + s.Start.String() + " to " + s.End.String() +
		" do begin " + s.Body.String() + " end"
}

func (s *ForLoop) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"kind":        "ForLoop",
		"variable":    s.Variable,
		"start_value": s.Start.Serialize(),
		"end_value":   s.End.Serialize(),
		"body":        s.Body.Serialize(),
	}
}

// WhileLoop is while (cond) do begin body end.
type WhileLoop struct {
	Condition Expression
	Body      *Block
}

func (s *WhileLoop) statementNode() {}

func (s *WhileLoop) String() string {
	return "while (" + s.Condition.String() + ") do begin " + s.Body.String() + " end"
}

func (s *WhileLoop) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"kind":      "WhileLoop",
		"condition": s.Condition.Serialize(),
		"body":      s.Body.Serialize(),
	}
}

// RepeatLoop is repeat begin body end until (cond); the body precedes the
// terminating keyword and condition.
type RepeatLoop struct {
	Condition Expression
	Body      *Block
}

func (s *RepeatLoop) statementNode() {}

func (s *RepeatLoop) String() string {
	return "repeat begin " + s.Body.String() + " end until (" + s.Condition.String() + ")"
}

func (s *RepeatLoop) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"kind":      "RepeatLoop",
		"condition": s.Condition.Serialize(),
		"body":      s.Body.Serialize(),
	}
}

// Call is call name(args). Interprocedural cost is not attributed.
type Call struct {
	ProcName string
	Args     []Expression
}

func (s *Call) statementNode() {}

func (s *Call) String() string {
	parts := make([]string, len(s.Args))
	for i, a := range s.Args {
		parts[i] = a.String()
	}
	return "call " + s.ProcName + "(" + strings.Join(parts, ", ") + ")"
}

func (s *Call) Serialize() map[string]interface{} {
	m := map[string]interface{}{
		"kind":           "Call",
		"procedure_name": s.ProcName,
	}
	if len(s.Args) > 0 {
		m["arguments"] = serializeSlice(s.Args)
	}
	return m
}

// ---------------------------------------------------------------------------
// Expressions
// ---------------------------------------------------------------------------

// BinaryOp is left OP right for relational, additive, and multiplicative
// operators.
type BinaryOp struct {
	Left     Expression
	Operator string
	Right    Expression
}

func (e *BinaryOp) expressionNode() {}

func (e *BinaryOp) String() string {
	return "(" + e.Left.String() + " " + e.Operator + " " + e.Right.String() + ")"
}

func (e *BinaryOp) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"kind":     "BinaryOp",
		"left":     e.Left.Serialize(),
		"operator": e.Operator,
		"right":    e.Right.Serialize(),
	}
}

// UnaryOp is a prefix or applied unary operator: length(x), ceil/floor.
type UnaryOp struct {
	Operator string
	Operand  Expression
}

func (e *UnaryOp) expressionNode() {}

func (e *UnaryOp) String() string {
	return e.Operator + "(" + e.Operand.String() + ")"
}

func (e *UnaryOp) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"kind":     "UnaryOp",
		"operator": e.Operator,
		"operand":  e.Operand.Serialize(),
	}
}

// LiteralKind tags the literal forms the lexer produces.
type LiteralKind string

const (
	LiteralInteger LiteralKind = "Integer"
	LiteralFloat   LiteralKind = "Float"
	LiteralString  LiteralKind = "String"
)

// Literal is a number or string constant. Value keeps the raw literal text.
type Literal struct {
	Value string
	Kind  LiteralKind
}

func (e *Literal) expressionNode() {}

func (e *Literal) String() string { return e.Value }

func (e *Literal) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"kind":      "Literal",
		"value":     e.Value,
		"type_name": string(e.Kind),
	}
}

// Variable is a bare identifier reference.
type Variable struct {
	Name string
}

func (e *Variable) expressionNode() {}

func (e *Variable) String() string { return e.Name }

func (e *Variable) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"kind": "Variable",
		"name": e.Name,
	}
}

// ArrayAccess is base[index]. Base holds the flattened text of the
// expression the suffix was applied to; suffix chains therefore nest by
// wrapping the prior expression's text.
type ArrayAccess struct {
	Base  string
	Index Expression
}

func (e *ArrayAccess) expressionNode() {}

func (e *ArrayAccess) String() string {
	return e.Base + "[" + e.Index.String() + "]"
}

func (e *ArrayAccess) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"kind":       "ArrayAccess",
		"array_name": e.Base,
		"index":      e.Index.Serialize(),
	}
}

// FieldAccess is base.field, with the same flattened-base convention as
// ArrayAccess.
type FieldAccess struct {
	Base  string
	Field string
}

func (e *FieldAccess) expressionNode() {}

func (e *FieldAccess) String() string { return e.Base + "." + e.Field }

func (e *FieldAccess) Serialize() map[string]interface{} {
	return map[string]interface{}{
		"kind":        "FieldAccess",
		"object_name": e.Base,
		"field_name":  e.Field,
	}
}

// serializeSlice expands a sequence of nodes in order.
func serializeSlice[T Node](nodes []T) []interface{} {
	out := make([]interface{}, len(nodes))
	for i, n := range nodes {
		out[i] = n.Serialize()
	}
	return out
}
