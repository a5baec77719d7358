// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cache builds, loads, and verifies the on-disk document cache.
//
// A cache is write-once, read-many. Building materializes three kinds of
// artifacts under the output directory:
//
//	<output_dir>/
//	  manifest.json       cache_version, config, created_at, document entries
//	  index.json          flat DocumentId → filename map, sorted keys
//	  documents/<12-hex>.json  one pretty-printed JSON file per document
//
// The byte layout of every artifact is a contract: the same config and the
// same documents produce the same bytes everywhere, with created_at in
// manifest.json as the single informational exception.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/contextcore/contextcore/internal/document"
)

// filenameHexLen is the digest prefix length used for document filenames.
const filenameHexLen = 12

// Builder builds caches from in-memory documents. Build is single-threaded
// and non-reentrant per output directory.
type Builder struct {
	config BuildConfig
}

// NewBuilder creates a Builder with the given config.
func NewBuilder(config BuildConfig) *Builder {
	return &Builder{config: config}
}

// Build materializes docs into outputDir and returns the loaded cache.
//
// Documents are sorted by ID; duplicate IDs and filename collisions are
// rejected. Everything is written under a sibling temp directory and
// published with a single atomic rename, so the final directory either
// exists complete or not at all. A stale temp directory from a previously
// crashed run is removed before writing.
func (b *Builder) Build(docs []document.Document, outputDir string) (*Cache, error) {
	if _, err := os.Stat(outputDir); err == nil {
		return nil, fmt.Errorf("%s: %w", outputDir, ErrOutputExists)
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("checking output directory: %w", err)
	}

	sorted := make([]document.Document, len(docs))
	copy(sorted, docs)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].ID.Less(sorted[j].ID)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].ID == sorted[i-1].ID {
			return nil, fmt.Errorf("%s: %w", sorted[i].ID, ErrDuplicateDocumentID)
		}
	}

	entries := make([]ManifestEntry, 0, len(sorted))
	seen := make(map[string]document.ID, len(sorted))
	for _, doc := range sorted {
		name, err := documentFilename(doc.Version)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", doc.ID, err)
		}
		if prev, ok := seen[name]; ok {
			return nil, fmt.Errorf("documents %s and %s both map to %s: %w",
				prev, doc.ID, name, ErrFilenameCollision)
		}
		seen[name] = doc.ID
		entries = append(entries, ManifestEntry{
			ID:       doc.ID,
			Version:  doc.Version,
			Filename: name,
		})
	}

	cacheVersion, err := computeCacheVersion(b.config, entries)
	if err != nil {
		return nil, err
	}

	manifest := Manifest{
		CacheVersion: cacheVersion,
		Config:       b.config,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
		Documents:    entries,
	}

	if err := b.writeLayout(outputDir, manifest, sorted); err != nil {
		return nil, err
	}

	return Load(outputDir)
}

// writeLayout writes the full cache layout under a temp sibling of outputDir
// and renames it into place. The temp dir is a sibling (not a system temp
// location) so the rename stays within one filesystem and remains atomic.
func (b *Builder) writeLayout(outputDir string, manifest Manifest, docs []document.Document) (err error) {
	tmpDir := outputDir + ".tmp"
	if err := os.RemoveAll(tmpDir); err != nil {
		return fmt.Errorf("removing stale temp directory %s: %w", tmpDir, err)
	}
	defer func() {
		if err != nil {
			os.RemoveAll(tmpDir)
		}
	}()

	docsDir := filepath.Join(tmpDir, DocumentsDir)
	if err := os.MkdirAll(docsDir, 0755); err != nil {
		return fmt.Errorf("creating %s: %w", docsDir, err)
	}

	index := make(map[string]string, len(manifest.Documents))
	for i, doc := range docs {
		entry := manifest.Documents[i]
		index[string(entry.ID)] = entry.Filename
		if err := writeJSON(filepath.Join(docsDir, entry.Filename), doc); err != nil {
			return fmt.Errorf("document %s: %w", entry.ID, err)
		}
	}

	if err := writeJSON(filepath.Join(tmpDir, IndexFile), index); err != nil {
		return err
	}
	if err := writeJSON(filepath.Join(tmpDir, ManifestFile), manifest); err != nil {
		return err
	}

	if err := os.Rename(tmpDir, outputDir); err != nil {
		return fmt.Errorf("publishing %s: %w", outputDir, err)
	}
	return nil
}

// documentFilename derives the on-disk filename for a document version: the
// first 12 hex characters of the content digest plus ".json".
func documentFilename(v document.Version) (string, error) {
	hexDigest, ok := v.Hex()
	if !ok || len(hexDigest) < filenameHexLen {
		return "", fmt.Errorf("%q: %w", v, ErrInvalidVersionFormat)
	}
	return hexDigest[:filenameHexLen] + ".json", nil
}

// writeJSON writes v as pretty-printed JSON with a trailing newline. Struct
// field declaration order and sorted map keys pin the byte layout.
func writeJSON(path string, v any) error {
	data, err := marshalJSON(v)
	if err != nil {
		return fmt.Errorf("serializing %s: %w", filepath.Base(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
