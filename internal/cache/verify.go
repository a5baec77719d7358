// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contextcore/contextcore/internal/document"
	"github.com/contextcore/contextcore/internal/validator"
)

// Report is the result of a full cache integrity sweep. Each field covers one
// independent check so callers can surface exactly what is wrong.
type Report struct {
	ManifestValid     bool
	ManifestErrors    []string
	CacheVersionMatch bool
	MissingFiles      []string
	HashMismatches    []string
	IndexErrors       []string
	Orphans           []string
}

// OK reports whether every check passed.
func (r *Report) OK() bool {
	return r.ManifestValid &&
		len(r.ManifestErrors) == 0 &&
		r.CacheVersionMatch &&
		len(r.MissingFiles) == 0 &&
		len(r.HashMismatches) == 0 &&
		len(r.IndexErrors) == 0 &&
		len(r.Orphans) == 0
}

// Verify runs the full integrity sweep over a cache directory: the manifest
// parses and matches the schema, the recomputed cache version matches, every
// listed file exists with matching content hash, index.json agrees with the
// manifest, and documents/ holds no orphan files. Verify never modifies the
// cache; it returns an error only when dir itself is not readable.
func Verify(dir string) (*Report, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("cache directory: %w", err)
	}

	report := &Report{}

	raw, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		report.ManifestErrors = append(report.ManifestErrors, fmt.Sprintf("reading manifest: %v", err))
		return report, nil
	}

	var manifest Manifest
	if err := json.Unmarshal(raw, &manifest); err != nil {
		report.ManifestErrors = append(report.ManifestErrors, fmt.Sprintf("parsing manifest: %v", err))
		return report, nil
	}
	report.ManifestValid = true

	for _, e := range validator.ValidateManifest(raw) {
		report.ManifestErrors = append(report.ManifestErrors, e.Error())
	}

	expected, err := computeCacheVersion(manifest.Config, manifest.Documents)
	if err != nil {
		report.ManifestErrors = append(report.ManifestErrors, err.Error())
	} else {
		report.CacheVersionMatch = expected == manifest.CacheVersion
	}

	listed := make(map[string]bool, len(manifest.Documents))
	for _, entry := range manifest.Documents {
		listed[entry.Filename] = true
		verifyEntry(dir, entry, report)
	}

	verifyIndex(dir, manifest, report)

	docEntries, err := os.ReadDir(filepath.Join(dir, DocumentsDir))
	if err != nil {
		report.MissingFiles = append(report.MissingFiles, DocumentsDir+"/")
	} else {
		for _, de := range docEntries {
			if !listed[de.Name()] {
				report.Orphans = append(report.Orphans, de.Name())
			}
		}
	}

	return report, nil
}

// verifyEntry checks one manifest entry: the file exists, parses, carries the
// right ID, and its content hashes to both the manifest version and the
// filename prefix.
func verifyEntry(dir string, entry ManifestEntry, report *Report) {
	path := filepath.Join(dir, DocumentsDir, entry.Filename)
	data, err := os.ReadFile(path)
	if err != nil {
		report.MissingFiles = append(report.MissingFiles, entry.Filename)
		return
	}

	var doc document.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		report.HashMismatches = append(report.HashMismatches,
			fmt.Sprintf("%s: not a document file: %v", entry.Filename, err))
		return
	}

	if doc.ID != entry.ID {
		report.HashMismatches = append(report.HashMismatches,
			fmt.Sprintf("%s: holds id %q, manifest says %q", entry.Filename, doc.ID, entry.ID))
	}

	got := document.VersionOf([]byte(doc.Content))
	if got != entry.Version {
		report.HashMismatches = append(report.HashMismatches,
			fmt.Sprintf("%s: content hash %s, manifest version %s", entry.Filename, got, entry.Version))
		return
	}
	if name, err := documentFilename(got); err != nil || name != entry.Filename {
		report.HashMismatches = append(report.HashMismatches,
			fmt.Sprintf("%s: filename does not match content hash %s", entry.Filename, got))
	}
}

// verifyIndex checks that index.json is exactly the manifest's id → filename
// mapping.
func verifyIndex(dir string, manifest Manifest, report *Report) {
	raw, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		report.IndexErrors = append(report.IndexErrors, fmt.Sprintf("reading index: %v", err))
		return
	}

	var index map[string]string
	if err := json.Unmarshal(raw, &index); err != nil {
		report.IndexErrors = append(report.IndexErrors, fmt.Sprintf("parsing index: %v", err))
		return
	}

	for _, entry := range manifest.Documents {
		name, ok := index[string(entry.ID)]
		if !ok {
			report.IndexErrors = append(report.IndexErrors, fmt.Sprintf("missing id %q", entry.ID))
			continue
		}
		if name != entry.Filename {
			report.IndexErrors = append(report.IndexErrors,
				fmt.Sprintf("id %q maps to %q, manifest says %q", entry.ID, name, entry.Filename))
		}
	}
	if len(index) != len(manifest.Documents) {
		report.IndexErrors = append(report.IndexErrors,
			fmt.Sprintf("index has %d entries, manifest has %d", len(index), len(manifest.Documents)))
	}
}
