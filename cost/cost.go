// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package cost implements the symbolic cost algebra used by the analyzer.
//
// Terms follow the grammar
//
//	term ::= "1" | "n" | "n^" INT | "n log n"
//	       | "max(" term "," term ")" | term " * " term
//
// with two binary operators: Add models sequential composition and Mul
// models iteration (outer count times inner cost). Both carry a fallback
// rule for term shapes they do not recognize, producing an explicit
// unresolved composite instead of attempting numeric evaluation. The
// algebra is intentionally approximate; it is not a computer-algebra
// system.
package cost

import (
	"fmt"
	"strconv"
	"strings"
)

// Term is a single symbolic complexity expression.
type Term string

// Common terms.
const (
	TermOne    Term = "1"
	TermLinear Term = "n"
)

// errorPrefix marks sentinel terms that carry an oracle failure instead of
// a complexity class.
const errorPrefix = "Error:"

// IsError reports whether the term is a failure sentinel rather than a
// valid complexity term.
func (t Term) IsError() bool {
	return strings.HasPrefix(string(t), errorPrefix)
}

// ErrorTerm builds a failure sentinel from a reason.
func ErrorTerm(reason string) Term {
	return Term(errorPrefix + " " + reason)
}

// power extracts p from a term of the exact shape "n^p".
func power(t Term) (int, bool) {
	s := string(t)
	if !strings.HasPrefix(s, "n^") {
		return 0, false
	}
	p, err := strconv.Atoi(s[2:])
	if err != nil {
		return 0, false
	}
	return p, true
}

// AddTerms combines two terms under sequential composition:
//   - "1" is the identity and absorbs into the other operand;
//   - equal terms are idempotent;
//   - two power terms n^p and n^q combine to n^max(p,q);
//   - anything else becomes the explicit composite max(t1, t2).
func AddTerms(t1, t2 Term) Term {
	// Failure sentinels absorb: composing with a failed term stays failed,
	// so the marker survives to the report and enclosing subtrees are not
	// cached with transient error text baked in.
	if t1.IsError() {
		return t1
	}
	if t2.IsError() {
		return t2
	}
	if t1 == TermOne {
		return t2
	}
	if t2 == TermOne {
		return t1
	}
	if t1 == t2 {
		return t1
	}
	if p1, ok1 := power(t1); ok1 {
		if p2, ok2 := power(t2); ok2 {
			if p1 < p2 {
				p1 = p2
			}
			return Term(fmt.Sprintf("n^%d", p1))
		}
	}
	return Term(fmt.Sprintf("max(%s, %s)", t1, t2))
}

// MulTerms combines two terms under iteration:
//   - "1" is the identity and absorbs into the other operand;
//   - n * n collapses to n^2;
//   - n^p * n (either operand order) collapses to n^(p+1);
//   - anything else becomes the literal product t1 * t2.
func MulTerms(t1, t2 Term) Term {
	if t1.IsError() {
		return t1
	}
	if t2.IsError() {
		return t2
	}
	if t1 == TermOne {
		return t2
	}
	if t2 == TermOne {
		return t1
	}
	if t1 == TermLinear && t2 == TermLinear {
		return Term("n^2")
	}
	if p, ok := power(t1); ok && t2 == TermLinear {
		return Term(fmt.Sprintf("n^%d", p+1))
	}
	if p, ok := power(t2); ok && t1 == TermLinear {
		return Term(fmt.Sprintf("n^%d", p+1))
	}
	return Term(fmt.Sprintf("%s * %s", t1, t2))
}

// Triple is the (worst, best, average) classification of a subtree.
// Triples are immutable once built; Add and Mul return fresh values.
// The JSON field names match the persisted knowledge-base format.
type Triple struct {
	O     Term `json:"O"`
	Omega Term `json:"Omega"`
	Theta Term `json:"Theta"`
}

// One returns the identity triple (1, 1, 1).
func One() Triple {
	return Triple{O: TermOne, Omega: TermOne, Theta: TermOne}
}

// Linear returns the triple (n, n, n).
func Linear() Triple {
	return Triple{O: TermLinear, Omega: TermLinear, Theta: TermLinear}
}

// Error returns a triple whose every component carries the failure reason,
// so an oracle failure stays visible in the final report without aborting
// the analysis of sibling subtrees.
func Error(reason string) Triple {
	t := ErrorTerm(reason)
	return Triple{O: t, Omega: t, Theta: t}
}

// Add composes two triples sequentially, componentwise.
func Add(a, b Triple) Triple {
	return Triple{
		O:     AddTerms(a.O, b.O),
		Omega: AddTerms(a.Omega, b.Omega),
		Theta: AddTerms(a.Theta, b.Theta),
	}
}

// Mul composes two triples under iteration, componentwise.
func Mul(a, b Triple) Triple {
	return Triple{
		O:     MulTerms(a.O, b.O),
		Omega: MulTerms(a.Omega, b.Omega),
		Theta: MulTerms(a.Theta, b.Theta),
	}
}

// HasError reports whether any component is a failure sentinel.
func (t Triple) HasError() bool {
	return t.O.IsError() || t.Omega.IsError() || t.Theta.IsError()
}

func (t Triple) String() string {
	return fmt.Sprintf("O(%s), Ω(%s), Θ(%s)", t.O, t.Omega, t.Theta)
}
