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
	"path/filepath"

	"github.com/ordolang/go-ordo/cost"
)

// FileStore persists the knowledge base as a single JSON file mapping
// signature → triple. The whole file is rewritten on every Put; the format
// is the human-readable textual key/value store the knowledge base has
// always used, loadable across runs.
type FileStore struct {
	path string
	data map[string]cost.Triple
}

// OpenFile loads (or initializes) a file-backed store at path. A missing
// file starts empty; a malformed file is treated as empty rather than
// surfaced, and is rewritten on the next Put.
func OpenFile(path string, logger *slog.Logger) (*FileStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &FileStore{
		path: path,
		data: make(map[string]cost.Triple),
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &s.data); err != nil {
		logger.Warn("knowledge base file is corrupt, starting empty", "path", path, "err", err)
		s.data = make(map[string]cost.Triple)
	}
	return s, nil
}

// Get returns the stored triple for the signature, if any.
func (s *FileStore) Get(sig string) (cost.Triple, bool, error) {
	t, ok := s.data[sig]
	return t, ok, nil
}

// Put stores the triple and rewrites the file before returning.
func (s *FileStore) Put(sig string, t cost.Triple) error {
	s.data[sig] = t
	return s.flush()
}

// Len returns the number of persisted entries.
func (s *FileStore) Len() int {
	return len(s.data)
}

// Close is a no-op for the file store; every Put already persisted.
func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) flush() error {
	b, err := json.MarshalIndent(s.data, "", "    ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, b, 0o644)
}
