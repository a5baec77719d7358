// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contextcore/contextcore/internal/document"
)

// Cache is a read-only view of a built cache directory: the parsed manifest
// plus, on demand, the documents. It holds no open handles and is safe to
// share between readers.
type Cache struct {
	dir      string
	manifest Manifest
}

// Load reads and parses manifest.json from dir. Documents are loaded lazily
// by LoadDocuments.
func Load(dir string) (*Cache, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	return &Cache{dir: dir, manifest: manifest}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// Manifest returns the parsed manifest.
func (c *Cache) Manifest() Manifest { return c.manifest }

// Len returns the number of documents in the cache.
func (c *Cache) Len() int { return len(c.manifest.Documents) }

// LoadDocuments reads every document listed in the manifest, in manifest
// order (sorted ID order). Each document is validated against its entry: the
// stored ID must match, and the content hash is recomputed and compared
// against the manifest version, which catches silent on-disk corruption. A
// single bad document fails the whole load.
func (c *Cache) LoadDocuments() ([]document.Document, error) {
	docs := make([]document.Document, 0, len(c.manifest.Documents))
	for _, entry := range c.manifest.Documents {
		doc, err := c.loadDocument(entry)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func (c *Cache) loadDocument(entry ManifestEntry) (document.Document, error) {
	path := filepath.Join(c.dir, DocumentsDir, entry.Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return document.Document{}, fmt.Errorf("document %s: %w", entry.ID, err)
	}

	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return document.Document{}, fmt.Errorf("document %s: parsing %s: %w", entry.ID, entry.Filename, err)
	}

	if doc.ID != entry.ID {
		return document.Document{}, fmt.Errorf("document %s: file %s holds id %q",
			entry.ID, entry.Filename, doc.ID)
	}
	if got := document.VersionOf([]byte(doc.Content)); got != entry.Version {
		return document.Document{}, fmt.Errorf("document %s: content hash %s does not match manifest version %s",
			entry.ID, got, entry.Version)
	}

	return doc, nil
}

// marshalJSON is the single serialization point for cache artifacts:
// two-space pretty printing with a trailing newline.
func marshalJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
