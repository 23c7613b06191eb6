// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

// Command ordo is the pseudocode complexity analyzer.
//
// Usage:
//
//	ordo [flags] analyze <dir>
//
// analyze discovers *.txt and *.psc files in the directory, infers a cost
// triple for each and prints a report. A file that fails to lex, parse or
// analyze is reported and the batch continues.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/urfave/cli.v1"

	"github.com/ordolang/go-ordo/analyzer"
	"github.com/ordolang/go-ordo/cost"
	"github.com/ordolang/go-ordo/lang/lexer"
	"github.com/ordolang/go-ordo/lang/parser"
)

const version = "0.1.0"

func main() {
	app := cli.NewApp()
	app.Name = "ordo"
	app.Version = version
	app.Usage = "static asymptotic-complexity analysis of pseudocode"
	app.Flags = []cli.Flag{
		configFileFlag,
		kbPathFlag,
		kbBackendFlag,
		oracleEndpointFlag,
		oracleModelFlag,
		verbosityFlag,
	}
	app.Commands = []cli.Command{
		analyzeCommand,
		tokensCommand,
		astCommand,
		replCommand,
		dumpConfigCommand,
	}
	app.Action = analyzeDir

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var (
	analyzeCommand = cli.Command{
		Action:      analyzeDir,
		Name:        "analyze",
		Usage:       "Analyze every pseudocode file in a directory",
		ArgsUsage:   "<dir>",
		Description: `Discovers *.txt and *.psc files, infers a cost triple for each and prints a report.`,
	}
	tokensCommand = cli.Command{
		Action:      showTokens,
		Name:        "tokens",
		Usage:       "Print the token stream of a source file",
		ArgsUsage:   "<file>",
		Description: `Lexes a single file and prints one token per line.`,
	}
	astCommand = cli.Command{
		Action:      showAST,
		Name:        "ast",
		Usage:       "Print the parse tree of a source file",
		ArgsUsage:   "<file>",
		Description: `Parses a single file and dumps the syntax tree.`,
	}
)

// fileResult is one row of the analyze report.
type fileResult struct {
	name string
	cost cost.Triple
	err  error
}

// analyzeDir is the analyze command and the default action.
func analyzeDir(ctx *cli.Context) error {
	dir := ctx.Args().First()
	if dir == "" {
		dir = "algorithms"
	}

	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	logger := makeLogger(cfg)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".txt" || ext == ".psc" {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if len(files) == 0 {
		fmt.Printf("No algorithm files found in %s.\n", dir)
		return nil
	}

	an, closeKB, err := makeAnalyzer(cfg, logger)
	if err != nil {
		return err
	}
	defer closeKB()

	var results []fileResult
	for _, name := range files {
		triple, err := analyzeFile(an, filepath.Join(dir, name))
		results = append(results, fileResult{name: name, cost: triple, err: err})
		if err != nil {
			logger.Warn("analysis failed", "file", name, "err", err)
		}
	}
	printReport(os.Stdout, results)
	return nil
}

// analyzeFile runs the full pipeline on one file. Any stage error aborts
// this file only.
func analyzeFile(an *analyzer.Analyzer, path string) (cost.Triple, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return cost.Triple{}, err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	prog, err := parser.Parse(name, string(source))
	if err != nil {
		return cost.Triple{}, err
	}
	return an.Analyze(context.Background(), prog), nil
}

// printReport renders the per-file outcome table. Failed files show the
// error in red; oracle sentinel terms show in yellow.
func printReport(out *os.File, results []fileResult) {
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"File", "O", "Omega", "Theta", "Note"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	for _, r := range results {
		switch {
		case r.err != nil:
			table.Append([]string{r.name, "-", "-", "-", red(r.err.Error())})
		case r.cost.HasError():
			table.Append([]string{
				r.name,
				colorTerm(yellow, r.cost.O),
				colorTerm(yellow, r.cost.Omega),
				colorTerm(yellow, r.cost.Theta),
				"oracle failure",
			})
		default:
			table.Append([]string{r.name, string(r.cost.O), string(r.cost.Omega), string(r.cost.Theta), ""})
		}
	}
	table.Render()
}

func colorTerm(paint func(a ...interface{}) string, t cost.Term) string {
	if t.IsError() {
		return paint(string(t))
	}
	return string(t)
}

// showTokens is the tokens command.
func showTokens(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return fmt.Errorf("usage: ordo tokens <file>")
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	toks, err := lexer.Tokenize(filepath.Base(path), string(source))
	if err != nil {
		return err
	}
	for _, tok := range toks {
		fmt.Printf("%s\t%s\t%q\n", tok.Pos, tok.Type, tok.Literal)
	}
	return nil
}

// showAST is the ast command.
func showAST(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return fmt.Errorf("usage: ordo ast <file>")
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	prog, err := parser.Parse(name, string(source))
	if err != nil {
		return err
	}
	spew.Fdump(os.Stdout, prog)
	return nil
}
