// Copyright 2026 The go-ordo Authors
// This file is part of the go-ordo library.
//
// The go-ordo library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.

package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ordolang/go-ordo/cost"
	"github.com/ordolang/go-ordo/lang/ast"
)

// Config holds the settings for the HTTP oracle client.
type Config struct {
	// Endpoint is a chat-completions compatible URL.
	Endpoint string
	// Model is the model name sent with each request.
	Model string
	// APIKey is sent as a bearer token. Empty means not configured.
	APIKey string
	// Timeout bounds a single request, including connect and body read.
	// Zero means DefaultTimeout.
	Timeout time.Duration
	// MaxRetries is the number of retries after a transport or 5xx
	// failure. Zero means DefaultMaxRetries; negative disables retries.
	// Retries back off linearly.
	MaxRetries int
}

const (
	// DefaultTimeout bounds each oracle request; expiry is treated as an
	// ordinary classification failure.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the bounded retry budget around the oracle call.
	DefaultMaxRetries = 2

	retryBackoff = 500 * time.Millisecond
)

// Client classifies subtrees by prompting a chat-completions endpoint with
// the canonical JSON serialization of the subtree and decoding the JSON
// triple it returns.
type Client struct {
	cfg    Config
	http   *http.Client
	logger *slog.Logger
}

// NewClient creates an HTTP oracle client. logger may be nil.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = DefaultMaxRetries
	} else if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: logger.With("component", "oracle"),
	}
}

// chat-completions request/response shapes, reduced to the fields used.
type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Classify sends the subtree to the configured endpoint and decodes the
// returned triple. Transport failures and 5xx responses are retried within
// the bounded budget; everything else fails immediately.
func (c *Client) Classify(ctx context.Context, node ast.Node) (cost.Triple, error) {
	if c.cfg.Endpoint == "" || c.cfg.APIKey == "" {
		return cost.Triple{}, ErrNotConfigured
	}

	subtree, err := json.MarshalIndent(node.Serialize(), "", "  ")
	if err != nil {
		return cost.Triple{}, fmt.Errorf("oracle: serialize subtree: %w", err)
	}
	body, err := json.Marshal(chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(string(subtree))},
		},
	})
	if err != nil {
		return cost.Triple{}, fmt.Errorf("oracle: encode request: %w", err)
	}

	reqID := uuid.New().String()
	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Debug("retrying oracle request", "id", reqID, "attempt", attempt)
			select {
			case <-ctx.Done():
				return cost.Triple{}, ctx.Err()
			case <-time.After(time.Duration(attempt) * retryBackoff):
			}
		}
		raw, retryable, err := c.post(ctx, reqID, body)
		if err != nil {
			lastErr = err
			if retryable {
				continue
			}
			return cost.Triple{}, err
		}
		return decodeTriple(raw)
	}
	return cost.Triple{}, lastErr
}

// post performs one request attempt. The second return value reports
// whether the failure is worth retrying.
func (c *Client) post(ctx context.Context, reqID string, body []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", false, fmt.Errorf("oracle: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("X-Request-Id", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("oracle: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", true, fmt.Errorf("oracle: read response: %w", err)
	}
	if resp.StatusCode >= 500 {
		return "", true, fmt.Errorf("oracle: http %d", resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("oracle: http %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(raw, &cr); err != nil {
		return "", false, fmt.Errorf("oracle: malformed response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", false, fmt.Errorf("oracle: empty response")
	}
	return cr.Choices[0].Message.Content, false, nil
}

// decodeTriple parses the model output into a triple, tolerating markdown
// code fences the model may wrap around the JSON despite instructions.
func decodeTriple(content string) (cost.Triple, error) {
	text := unwrapFenced(strings.TrimSpace(content))

	var fields map[string]string
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return cost.Triple{}, fmt.Errorf("oracle: output is not a JSON object: %w", err)
	}
	for _, key := range []string{"O", "Omega", "Theta"} {
		if _, ok := fields[key]; !ok {
			return cost.Triple{}, fmt.Errorf("oracle: output missing %q", key)
		}
	}
	return cost.Triple{
		O:     cost.Term(fields["O"]),
		Omega: cost.Term(fields["Omega"]),
		Theta: cost.Term(fields["Theta"]),
	}, nil
}

// unwrapFenced removes a surrounding markdown code fence, if present.
func unwrapFenced(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// buildPrompt assembles the classification prompt around the serialized
// subtree.
func buildPrompt(subtree string) string {
	var b strings.Builder
	b.WriteString("You are an expert in algorithmic complexity analysis.\n")
	b.WriteString("Analyze the time complexity of the following abstract syntax tree, ")
	b.WriteString("given in JSON, representing a pseudocode fragment.\n\n")
	b.WriteString("Focus on:\n")
	b.WriteString("1. Dependent loops (inner loop limits depending on outer loop variables).\n")
	b.WriteString("2. Non-linear updates.\n")
	b.WriteString("3. Recursive calls.\n\n")
	b.WriteString("Return ONLY a raw JSON object (no markdown formatting, no explanations) ")
	b.WriteString("with the keys:\n")
	b.WriteString(`- "O": the Big O complexity (worst case).` + "\n")
	b.WriteString(`- "Omega": the Big Omega complexity (best case).` + "\n")
	b.WriteString(`- "Theta": the Big Theta complexity (average case).` + "\n\n")
	b.WriteString(`Use standard notation like "n^2", "n log n", "1", "n".` + "\n\n")
	b.WriteString("AST:\n")
	b.WriteString(subtree)
	b.WriteString("\n")
	return b.String()
}
