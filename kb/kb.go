// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Package kb implements the persistent knowledge base that memoizes
// signature → cost-triple pairs across runs.
//
// Two durable backends are provided: a single JSON file (the default) and a
// goleveldb database for larger corpora. Both share the same contract:
// writes are flushed before Put returns, and a corrupt store on open is
// recovered by resetting to an empty knowledge base rather than failing.
// A KnowledgeBase fronts either backend with an in-memory ARC cache so that
// repeated signatures within one run never touch disk twice.
package kb

import (
	"log/slog"

	lru "github.com/hashicorp/golang-lru"

	"github.com/ordolang/go-ordo/cost"
)

// Store is the durable half of the knowledge base.
type Store interface {
	// Get returns the triple stored for the signature, and whether one is
	// present.
	Get(sig string) (cost.Triple, bool, error)

	// Put stores the triple under the signature, overwriting any previous
	// entry for the same key, and persists before returning.
	Put(sig string, t cost.Triple) error

	// Close releases the underlying storage.
	Close() error
}

// memCacheSize bounds the in-memory front; one entry per distinct subtree
// signature, so even large batches stay well under this.
const memCacheSize = 4096

// KnowledgeBase fronts a Store with an ARC cache.
type KnowledgeBase struct {
	store  Store
	mem    *lru.ARCCache
	logger *slog.Logger
}

// New wraps a Store. logger may be nil, in which case slog.Default is used.
func New(store Store, logger *slog.Logger) *KnowledgeBase {
	if logger == nil {
		logger = slog.Default()
	}
	mem, _ := lru.NewARC(memCacheSize)
	return &KnowledgeBase{
		store:  store,
		mem:    mem,
		logger: logger.With("component", "kb"),
	}
}

// Get looks the signature up in the memory cache first, then in the store.
// Store read errors are logged and reported as a miss: a broken knowledge
// base degrades to recomputation, never to a failed analysis.
func (k *KnowledgeBase) Get(sig string) (cost.Triple, bool) {
	if v, ok := k.mem.Get(sig); ok {
		return v.(cost.Triple), true
	}
	t, ok, err := k.store.Get(sig)
	if err != nil {
		k.logger.Warn("knowledge base read failed", "sig", sig, "err", err)
		return cost.Triple{}, false
	}
	if ok {
		k.mem.Add(sig, t)
	}
	return t, ok
}

// Put writes through to the store and then to the memory cache. Identical
// keys overwrite idempotently. Store write errors are logged, not returned:
// losing a memo entry is not a reason to fail the analysis that produced it.
func (k *KnowledgeBase) Put(sig string, t cost.Triple) {
	if err := k.store.Put(sig, t); err != nil {
		k.logger.Warn("knowledge base write failed", "sig", sig, "err", err)
	}
	k.mem.Add(sig, t)
}

// Close closes the underlying store.
func (k *KnowledgeBase) Close() error {
	return k.store.Close()
}
