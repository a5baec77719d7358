// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/contextcore/contextcore/internal/document"
)

// On-disk layout names.
const (
	ManifestFile = "manifest.json"
	IndexFile    = "index.json"
	DocumentsDir = "documents"
)

// Manifest describes a built cache. The JSON field order is part of the
// on-disk contract. CreatedAt is informational only and is excluded from the
// cache version digest.
type Manifest struct {
	CacheVersion string          `json:"cache_version"`
	Config       BuildConfig     `json:"config"`
	CreatedAt    string          `json:"created_at"`
	Documents    []ManifestEntry `json:"documents"`
}

// ManifestEntry records one document: its ID, content version, and on-disk
// filename. Entries are always in sorted ID order.
type ManifestEntry struct {
	ID       document.ID      `json:"id"`
	Version  document.Version `json:"version"`
	Filename string           `json:"filename"`
}

// computeCacheVersion digests the build config together with the sorted
// (id, version) pairs. The input is the canonical config JSON followed by a
// "<id>:<version>" line per document, newline-separated with no trailing
// newline. CreatedAt never contributes.
func computeCacheVersion(config BuildConfig, entries []ManifestEntry) (string, error) {
	configJSON, err := config.canonicalJSON()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.Write(configJSON)
	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(string(e.ID))
		b.WriteString(":")
		b.WriteString(string(e.Version))
	}

	sum := sha256.Sum256([]byte(b.String()))
	return document.VersionPrefix + hex.EncodeToString(sum[:]), nil
}
