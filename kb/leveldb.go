// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package kb

import (
	"encoding/json"
	"log/slog"
	"os"

	"github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/ordolang/go-ordo/cost"
)

// LevelStore persists the knowledge base in a goleveldb database. Values
// are the same JSON triple objects the file store uses, one per key, so
// the two backends are interchangeable views of the same data model.
type LevelStore struct {
	db *leveldb.DB
}

// writeOpts forces a sync on every Put so the write-through contract holds
// across process crashes, matching the file store's durability.
var writeOpts = &opt.WriteOptions{Sync: true}

// OpenLevelDB opens (or creates) a leveldb-backed store at path. A corrupt
// database is first recovered in place; if recovery also fails, the store
// is wiped and reopened empty — corruption resets the knowledge base, it
// never fails the caller. Non-corruption open failures (a held lock, a
// permission problem) are propagated: they do not mean the data is bad, so
// the store must not be destroyed over them.
func OpenLevelDB(path string, logger *slog.Logger) (*LevelStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := leveldb.OpenFile(path, nil)
	if ldberrors.IsCorrupted(err) {
		logger.Warn("knowledge base is corrupt, attempting recovery", "path", path, "err", err)
		db, err = leveldb.RecoverFile(path, nil)
		if err != nil {
			logger.Warn("knowledge base unrecoverable, starting empty", "path", path, "err", err)
			if rmErr := os.RemoveAll(path); rmErr != nil {
				return nil, rmErr
			}
			db, err = leveldb.OpenFile(path, nil)
		}
	}
	if err != nil {
		return nil, err
	}
	return &LevelStore{db: db}, nil
}

// Get returns the stored triple for the signature, if any.
func (s *LevelStore) Get(sig string) (cost.Triple, bool, error) {
	raw, err := s.db.Get([]byte(sig), nil)
	if err == leveldb.ErrNotFound {
		return cost.Triple{}, false, nil
	}
	if err != nil {
		return cost.Triple{}, false, err
	}
	var t cost.Triple
	if err := json.Unmarshal(raw, &t); err != nil {
		// A single undecodable value behaves like a miss; it will be
		// overwritten by the recomputed result.
		return cost.Triple{}, false, nil
	}
	return t, true, nil
}

// Put stores the triple under the signature with a synced write.
func (s *LevelStore) Put(sig string, t cost.Triple) error {
	b, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return s.db.Put([]byte(sig), b, writeOpts)
}

// Close flushes and closes the database.
func (s *LevelStore) Close() error {
	return s.db.Close()
}
