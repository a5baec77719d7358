// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package parser parses YAML build specifications.
package parser

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Parser handles YAML build-spec parsing.
type Parser struct {
	filename string
}

// NewParser creates a new Parser for the given file.
func NewParser(filename string) *Parser {
	return &Parser{filename: filename}
}

// Parse reads and parses the build specification file.
func (p *Parser) Parse() (*Spec, error) {
	data, err := os.ReadFile(p.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return p.ParseBytes(data)
}

// ParseBytes parses a build specification from bytes.
func (p *Parser) ParseBytes(data []byte) (*Spec, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return nil, fmt.Errorf("expected document node")
	}

	root := node.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("expected mapping at root")
	}

	var spec Spec
	if err := root.Decode(&spec); err != nil {
		return nil, fmt.Errorf("failed to decode spec: %w", err)
	}

	for i, d := range spec.Documents {
		if d.Path == "" {
			return nil, fmt.Errorf("document %d: missing path", i)
		}
	}

	return &spec, nil
}
