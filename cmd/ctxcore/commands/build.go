// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/contextcore/contextcore/internal/cache"
	"github.com/contextcore/contextcore/internal/document"
	"github.com/contextcore/contextcore/internal/errors"
	"github.com/contextcore/contextcore/internal/parser"
)

// Build ingests the documents named by a build spec and materializes a cache.
func Build(specFile, outputDir string) error {
	p := parser.NewParser(specFile)
	spec, err := p.Parse()
	if err != nil {
		if _, statErr := os.Stat(specFile); statErr != nil {
			return errors.SpecFileError(specFile, statErr)
		}
		return errors.InvalidYAMLError(specFile, err)
	}

	baseDir := filepath.Dir(specFile)
	root := filepath.Join(baseDir, spec.Root)

	docs := make([]document.Document, 0, len(spec.Documents))
	for _, ds := range spec.Documents {
		doc, err := ingestDocument(root, ds)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
	}

	builder := cache.NewBuilder(cache.DefaultBuildConfig())
	built, err := builder.Build(docs, outputDir)
	if err != nil {
		if stderrors.Is(err, cache.ErrOutputExists) {
			return errors.CacheExistsError(outputDir, err)
		}
		return err
	}

	fmt.Printf("✓ Built %s (%d documents)\n  cache version %s\n",
		outputDir, built.Len(), built.Manifest().CacheVersion)
	return nil
}

func ingestDocument(root string, ds parser.DocumentSpec) (document.Document, error) {
	path := filepath.Join(root, ds.Path)

	id, err := document.IDFromPath(root, path)
	if err != nil {
		return document.Document{}, fmt.Errorf("document %s: %w", ds.Path, err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return document.Document{}, fmt.Errorf("document %s: %w", ds.Path, err)
	}

	meta, err := ds.BuildMetadata()
	if err != nil {
		return document.Document{}, err
	}

	return document.Ingest(id, ds.SourceLabel(), content, meta)
}
