// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ordolang/go-ordo/analyzer"
	"github.com/ordolang/go-ordo/cost"
	"github.com/ordolang/go-ordo/kb"
)

func newTestAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()
	store, err := kb.OpenFile(filepath.Join(t.TempDir(), "kb.json"), nil)
	require.NoError(t, err)
	return analyzer.New(kb.New(store, nil), nil, nil)
}

func TestAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lineal.txt")
	require.NoError(t, os.WriteFile(path, []byte(
		"begin\nfor i <- 1 to n do\nbegin\ns <- s + 1\nend\nend\n"), 0644))

	got, err := analyzeFile(newTestAnalyzer(t), path)
	require.NoError(t, err)
	assert.Equal(t, cost.Linear(), got)
}

func TestFaultIsolation(t *testing.T) {
	// A file with a lexical error fails alone; the next file in the batch
	// still analyzes.
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.txt"),
		[]byte("begin x @ 1 end"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "good.txt"),
		[]byte("begin x <- 1 end"), 0644))

	an := newTestAnalyzer(t)

	_, err := analyzeFile(an, filepath.Join(dir, "bad.txt"))
	require.Error(t, err)

	got, err := analyzeFile(an, filepath.Join(dir, "good.txt"))
	require.NoError(t, err)
	assert.Equal(t, cost.One(), got)
}

func TestConfigDefaultsAndOverrides(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, "file", cfg.KB.Backend)
	assert.Equal(t, "knowledge_base.json", cfg.KB.Path)

	// Config file values load with strict field mapping.
	path := filepath.Join(t.TempDir(), "ordo.toml")
	require.NoError(t, os.WriteFile(path, []byte(
		"[KB]\nBackend = \"leveldb\"\nPath = \"kb.db\"\n"), 0644))
	require.NoError(t, loadConfig(path, &cfg))
	assert.Equal(t, "leveldb", cfg.KB.Backend)
	assert.Equal(t, "kb.db", cfg.KB.Path)

	// Unknown fields are rejected.
	bad := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[KB]\nNope = 1\n"), 0644))
	require.Error(t, loadConfig(bad, &cfg))
}
