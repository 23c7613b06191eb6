// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package analyzer infers asymptotic cost triples for pseudocode syntax
// trees. Independent control flow is folded with the symbolic cost algebra;
// loops whose bounds depend on an enclosing loop variable are escalated to
// the oracle. Results are memoized in the knowledge base keyed by the
// structural signature of the subtree.
package analyzer

import (
	"context"
	"errors"
	"log/slog"

	"github.com/ordolang/go-ordo/cost"
	"github.com/ordolang/go-ordo/kb"
	"github.com/ordolang/go-ordo/lang/ast"
	"github.com/ordolang/go-ordo/oracle"
)

// Analyzer walks syntax trees and computes cost triples.
type Analyzer struct {
	kb     *kb.KnowledgeBase
	oracle oracle.Oracle
	logger *slog.Logger
}

// New creates an analyzer. The store and oracle may be nil; a nil kb disables
// memoization and a nil oracle makes every dependent loop a classification
// error.
func New(store *kb.KnowledgeBase, orc oracle.Oracle, logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if orc == nil {
		orc = oracle.NoOp{}
	}
	return &Analyzer{
		kb:     store,
		oracle: orc,
		logger: logger.With("component", "analyzer"),
	}
}

// env is the set of loop variables in scope at the current node. It is
// treated as immutable: entering a for loop copies it before extending, so
// sibling subtrees never observe each other's bindings.
type env map[string]struct{}

func (e env) extend(name string) env {
	next := make(env, len(e)+1)
	for k := range e {
		next[k] = struct{}{}
	}
	next[name] = struct{}{}
	return next
}

// Analyze computes the cost triple of node. The result for a cacheable
// subtree is also an entry in the knowledge base, except sentinel error
// triples, which are never persisted.
func (a *Analyzer) Analyze(ctx context.Context, node ast.Node) cost.Triple {
	return a.analyze(ctx, node, env{})
}

// ProcedureCost is a per-procedure result within one program, produced for
// reporting alongside the program-level triple.
type ProcedureCost struct {
	Name string
	Cost cost.Triple
}

// AnalyzeProcedures computes the cost of each procedure body separately.
func (a *Analyzer) AnalyzeProcedures(ctx context.Context, prog *ast.Program) []ProcedureCost {
	results := make([]ProcedureCost, 0, len(prog.Procedures))
	for _, proc := range prog.Procedures {
		results = append(results, ProcedureCost{
			Name: proc.Name,
			Cost: a.analyze(ctx, proc.Body, env{}),
		})
	}
	return results
}

func (a *Analyzer) analyze(ctx context.Context, node ast.Node, scope env) cost.Triple {
	if node == nil {
		return cost.One()
	}

	sig := kb.Signature(node)
	if a.kb != nil {
		if cached, ok := a.kb.Get(sig); ok {
			return cached
		}
	}

	result := a.analyzeUncached(ctx, node, scope)

	// Sentinel error triples are transient oracle failures, not facts
	// about the subtree; keeping them out of the store lets a later run
	// with a working oracle succeed.
	if a.kb != nil && !result.HasError() {
		a.kb.Put(sig, result)
	}
	return result
}

func (a *Analyzer) analyzeUncached(ctx context.Context, node ast.Node, scope env) cost.Triple {
	switch n := node.(type) {
	case *ast.Program:
		// Procedure definitions carry no cost at program level; calls to
		// them are treated as constant-time.
		if n.MainBlock == nil {
			return cost.One()
		}
		return a.analyze(ctx, n.MainBlock, scope)

	case *ast.Block:
		total := cost.One()
		for _, stmt := range n.Statements {
			total = cost.Add(total, a.analyze(ctx, stmt, scope))
		}
		return total

	case *ast.Assignment:
		return cost.Add(cost.One(), a.analyze(ctx, n.Value, scope))

	case *ast.IfStatement:
		total := a.analyze(ctx, n.Condition, scope)
		total = cost.Add(total, a.analyze(ctx, n.ThenBlock, scope))
		if n.ElseBlock != nil {
			total = cost.Add(total, a.analyze(ctx, n.ElseBlock, scope))
		} else {
			total = cost.Add(total, cost.One())
		}
		return total

	case *ast.ForLoop:
		if a.dependsOnScope(n.End, scope) || a.dependsOnScope(n.Start, scope) {
			return a.classify(ctx, n)
		}
		body := a.analyze(ctx, n.Body, scope.extend(n.Variable))
		return cost.Mul(cost.Linear(), body)

	case *ast.WhileLoop:
		return cost.Mul(cost.Linear(), a.analyze(ctx, n.Body, scope))

	case *ast.RepeatLoop:
		return cost.Mul(cost.Linear(), a.analyze(ctx, n.Body, scope))

	case *ast.Call:
		// Interprocedural cost is not attributed: a call is constant and
		// its arguments are not walked.
		return cost.One()

	case *ast.BinaryOp:
		return cost.Add(a.analyze(ctx, n.Left, scope), a.analyze(ctx, n.Right, scope))

	case *ast.UnaryOp:
		return a.analyze(ctx, n.Operand, scope)

	case *ast.ArrayAccess:
		return a.analyze(ctx, n.Index, scope)

	case *ast.Literal, *ast.Variable, *ast.FieldAccess:
		return cost.One()

	case *ast.ProcedureDef:
		return a.analyze(ctx, n.Body, scope)

	case *ast.ClassDef:
		return cost.One()

	default:
		a.logger.Warn("unhandled node type in cost inference", "node", node.String())
		return cost.One()
	}
}

// dependsOnScope reports whether expr references a loop variable in scope,
// transitively through binary-operator chains. Other expression shapes
// (array access, field access, unary op, literal, call) are treated as
// non-referencing even when they could reach an outer variable indirectly;
// the check is deliberately shallow.
func (a *Analyzer) dependsOnScope(expr ast.Expression, scope env) bool {
	if len(scope) == 0 || expr == nil {
		return false
	}
	switch e := expr.(type) {
	case *ast.Variable:
		_, ok := scope[e.Name]
		return ok
	case *ast.BinaryOp:
		return a.dependsOnScope(e.Left, scope) || a.dependsOnScope(e.Right, scope)
	default:
		return false
	}
}

// classify delegates a dependent loop to the oracle. Any failure folds to
// the sentinel error triple so analysis of the enclosing tree continues.
func (a *Analyzer) classify(ctx context.Context, node ast.Node) cost.Triple {
	triple, err := a.oracle.Classify(ctx, node)
	if err != nil {
		if errors.Is(err, oracle.ErrNotConfigured) {
			a.logger.Warn("dependent loop needs oracle but none is configured")
			return cost.Error("oracle not configured")
		}
		a.logger.Warn("oracle classification failed", "err", err)
		return cost.Error(err.Error())
	}
	a.logger.Debug("oracle classified dependent loop", "cost", triple.String())
	return triple
}
