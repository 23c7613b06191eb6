// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"reflect"
	"time"
	"unicode"

	"github.com/naoina/toml"
	"gopkg.in/urfave/cli.v1"

	"github.com/ordolang/go-ordo/analyzer"
	"github.com/ordolang/go-ordo/kb"
	"github.com/ordolang/go-ordo/oracle"
)

// apiKeyEnv is consulted when the config file carries no credential.
const apiKeyEnv = "ORDO_API_KEY"

var (
	dumpConfigCommand = cli.Command{
		Action:      dumpConfig,
		Name:        "dumpconfig",
		Usage:       "Show configuration values",
		ArgsUsage:   "[outfile]",
		Description: `The dumpconfig command shows configuration values.`,
	}

	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	kbPathFlag = cli.StringFlag{
		Name:  "kb",
		Usage: "Knowledge base path (JSON file or leveldb directory)",
		Value: "knowledge_base.json",
	}
	kbBackendFlag = cli.StringFlag{
		Name:  "kb.backend",
		Usage: `Knowledge base backend ("file" or "leveldb")`,
		Value: "file",
	}
	oracleEndpointFlag = cli.StringFlag{
		Name:  "oracle.endpoint",
		Usage: "Chat-completions endpoint for dependent-loop classification",
	}
	oracleModelFlag = cli.StringFlag{
		Name:  "oracle.model",
		Usage: "Model name sent to the oracle endpoint",
		Value: "gemini-2.0-flash",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "Logging verbosity: 0=error, 1=warn, 2=info, 3=debug",
		Value: 1,
	}
)

// These settings ensure that TOML keys use the same names as Go struct fields.
var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		var link string
		if unicode.IsUpper(rune(rt.Name()[0])) && rt.PkgPath() != "main" {
			link = fmt.Sprintf(", see https://godoc.org/%s#%s for available fields", rt.PkgPath(), rt.Name())
		}
		return fmt.Errorf("field '%s' is not defined in %s%s", field, rt.String(), link)
	},
}

type oracleConfig struct {
	Endpoint   string `toml:",omitempty"`
	Model      string `toml:",omitempty"`
	APIKey     string `toml:",omitempty"`
	TimeoutSec int    `toml:",omitempty"`
}

type kbConfig struct {
	Path    string `toml:",omitempty"`
	Backend string `toml:",omitempty"`
}

type logConfig struct {
	Verbosity int `toml:",omitempty"`
}

type ordoConfig struct {
	Oracle oracleConfig
	KB     kbConfig
	Log    logConfig
}

func defaultConfig() ordoConfig {
	return ordoConfig{
		Oracle: oracleConfig{Model: oracleModelFlag.Value},
		KB:     kbConfig{Path: kbPathFlag.Value, Backend: kbBackendFlag.Value},
		Log:    logConfig{Verbosity: verbosityFlag.Value},
	}
}

func loadConfig(file string, cfg *ordoConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	// Add file name to errors that have a line number.
	if _, ok := err.(*toml.LineError); ok {
		err = errors.New(file + ", " + err.Error())
	}
	return err
}

// makeConfig loads the config file and applies flag and environment
// overrides in that order.
func makeConfig(ctx *cli.Context) (ordoConfig, error) {
	cfg := defaultConfig()

	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}

	if ctx.GlobalIsSet(kbPathFlag.Name) {
		cfg.KB.Path = ctx.GlobalString(kbPathFlag.Name)
	}
	if ctx.GlobalIsSet(kbBackendFlag.Name) {
		cfg.KB.Backend = ctx.GlobalString(kbBackendFlag.Name)
	}
	if ctx.GlobalIsSet(oracleEndpointFlag.Name) {
		cfg.Oracle.Endpoint = ctx.GlobalString(oracleEndpointFlag.Name)
	}
	if ctx.GlobalIsSet(oracleModelFlag.Name) {
		cfg.Oracle.Model = ctx.GlobalString(oracleModelFlag.Name)
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if cfg.Oracle.APIKey == "" {
		cfg.Oracle.APIKey = os.Getenv(apiKeyEnv)
	}
	return cfg, nil
}

// makeLogger builds the process logger from the verbosity setting.
func makeLogger(cfg ordoConfig) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case cfg.Log.Verbosity <= 0:
		level = slog.LevelError
	case cfg.Log.Verbosity == 2:
		level = slog.LevelInfo
	case cfg.Log.Verbosity >= 3:
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// makeAnalyzer assembles the knowledge base, oracle and analyzer from the
// resolved configuration. The returned closer releases the store.
func makeAnalyzer(cfg ordoConfig, logger *slog.Logger) (*analyzer.Analyzer, func() error, error) {
	var (
		store kb.Store
		err   error
	)
	switch cfg.KB.Backend {
	case "", "file":
		store, err = kb.OpenFile(cfg.KB.Path, logger)
	case "leveldb":
		store, err = kb.OpenLevelDB(cfg.KB.Path, logger)
	default:
		return nil, nil, fmt.Errorf("unknown kb backend %q", cfg.KB.Backend)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open knowledge base: %w", err)
	}
	base := kb.New(store, logger)

	var orc oracle.Oracle = oracle.NoOp{}
	if cfg.Oracle.Endpoint != "" && cfg.Oracle.APIKey != "" {
		orc = oracle.NewClient(oracle.Config{
			Endpoint: cfg.Oracle.Endpoint,
			Model:    cfg.Oracle.Model,
			APIKey:   cfg.Oracle.APIKey,
			Timeout:  time.Duration(cfg.Oracle.TimeoutSec) * time.Second,
		}, logger)
	}

	return analyzer.New(base, orc, logger), base.Close, nil
}

// dumpConfig is the dumpconfig command.
func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	// Never write the credential out.
	cfg.Oracle.APIKey = ""

	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}

	dump := os.Stdout
	if ctx.NArg() > 0 {
		dump, err = os.OpenFile(ctx.Args().Get(0), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		defer dump.Close()
	}
	dump.Write(out)

	return nil
}
