// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"github.com/ordolang/go-ordo/analyzer"
	"github.com/ordolang/go-ordo/lang/ast"
	"github.com/ordolang/go-ordo/lang/parser"
)

var replCommand = cli.Command{
	Action:      runRepl,
	Name:        "repl",
	Usage:       "Analyze pseudocode snippets interactively",
	Description: `Reads pseudocode snippets line by line. An empty line submits the buffered snippet for analysis.`,
}

// runRepl is the repl command. Lines accumulate until an empty line, then
// the buffered snippet is parsed and analyzed as one program.
func runRepl(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	logger := makeLogger(cfg)

	an, closeKB, err := makeAnalyzer(cfg, logger)
	if err != nil {
		return err
	}
	defer closeKB()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := filepath.Join(os.TempDir(), ".ordo_history")
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Println("ordo repl — end a snippet with an empty line, ctrl-D to exit")

	var buf []string
	for {
		prompt := "> "
		if len(buf) > 0 {
			prompt = ". "
		}
		input, err := line.Prompt(prompt)
		if err != nil {
			// ctrl-C clears the buffer, ctrl-D exits.
			if err == liner.ErrPromptAborted {
				buf = buf[:0]
				continue
			}
			fmt.Println()
			return nil
		}
		if strings.TrimSpace(input) != "" {
			line.AppendHistory(input)
			buf = append(buf, input)
			continue
		}
		if len(buf) == 0 {
			continue
		}
		snippet := strings.Join(buf, "\n")
		buf = buf[:0]
		evalSnippet(an, snippet)
	}
}

func evalSnippet(an *analyzer.Analyzer, snippet string) {
	prog, err := parseSnippet(snippet)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(an.Analyze(context.Background(), prog).String())
}

// parseSnippet parses REPL input, wrapping bare statements in a main block
// when they are not already a full program.
func parseSnippet(snippet string) (*ast.Program, error) {
	prog, err := parser.Parse("repl", snippet)
	if err == nil {
		return prog, nil
	}
	wrapped := "begin\n" + snippet + "\nend"
	if prog, werr := parser.Parse("repl", wrapped); werr == nil {
		return prog, nil
	}
	return nil, err
}
