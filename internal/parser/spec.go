// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package parser

import (
	"fmt"

	"github.com/contextcore/contextcore/internal/document"
)

// Spec is a parsed build specification: the document root and the explicit
// list of documents to ingest. There is no tree walking — every document is
// named.
type Spec struct {
	Root      string         `yaml:"root"`
	Documents []DocumentSpec `yaml:"documents"`
}

// DocumentSpec names one document: its path relative to the root, an
// optional source label (the path is used when absent), and flat metadata.
type DocumentSpec struct {
	Path     string         `yaml:"path"`
	Source   string         `yaml:"source"`
	Metadata map[string]any `yaml:"metadata"`
}

// SourceLabel returns the human-readable locator for the document.
func (d DocumentSpec) SourceLabel() string {
	if d.Source != "" {
		return d.Source
	}
	return d.Path
}

// BuildMetadata converts the YAML metadata map into document metadata.
// Values must be flat strings or integers; anything else is rejected.
func (d DocumentSpec) BuildMetadata() (document.Metadata, error) {
	meta := document.NewMetadata()
	for key, raw := range d.Metadata {
		switch v := raw.(type) {
		case string:
			meta.Set(key, document.StringValue(v))
		case int:
			meta.Set(key, document.IntegerValue(int64(v)))
		case int64:
			meta.Set(key, document.IntegerValue(v))
		default:
			return document.Metadata{}, fmt.Errorf("document %s: metadata key %q: value must be a string or integer, got %T",
				d.Path, key, raw)
		}
	}
	return meta, nil
}
