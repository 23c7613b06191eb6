// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package oracle defines the external complexity classifier consulted for
// loops the local cost algebra cannot resolve (dependent loops).
//
// The boundary is an explicit result type: Classify returns either a valid
// triple or an error, and it is the analyzer's job to fold errors into
// display sentinels at the reporting stage. Implementations must never
// panic on malformed upstream responses.
package oracle

import (
	"context"
	"errors"

	"github.com/ordolang/go-ordo/cost"
	"github.com/ordolang/go-ordo/lang/ast"
)

// ErrNotConfigured is returned when no usable credential or endpoint is
// available. The absence of a credential is an ordinary classification
// failure, not a setup panic.
var ErrNotConfigured = errors.New("oracle: no endpoint or credential configured")

// Oracle classifies the complexity of an AST subtree the analyzer handed
// off. The subtree is serialized to its canonical field map on the wire.
type Oracle interface {
	Classify(ctx context.Context, node ast.Node) (cost.Triple, error)
}

// NoOp is a placeholder oracle used when no backend is configured. Every
// query fails with ErrNotConfigured.
type NoOp struct{}

// Classify always returns ErrNotConfigured.
func (NoOp) Classify(ctx context.Context, node ast.Node) (cost.Triple, error) {
	return cost.Triple{}, ErrNotConfigured
}
