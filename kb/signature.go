// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package kb

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/ordolang/go-ordo/lang/ast"
)

// Signature computes the deterministic structural hash of a subtree, used
// as the memoization key. The node's canonical field map is marshaled with
// sorted keys and hashed with SHA-256.
//
// The signature is a structural-equality key, not an alpha-equivalence key:
// it covers literal values and variable/procedure names, so two identical
// algorithms that differ only in naming hash differently.
func Signature(node ast.Node) string {
	// encoding/json marshals map keys in sorted order, which gives the
	// canonical field ordering the signature contract requires. Marshaling
	// a tree of maps, strings and slices cannot fail.
	b, _ := json.Marshal(node.Serialize())
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
