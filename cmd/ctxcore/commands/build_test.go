// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProject lays out a build spec and its documents in a temp dir and
// returns the spec path.
func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	docsDir := filepath.Join(dir, "docs")
	require.NoError(t, os.MkdirAll(filepath.Join(docsDir, "ops"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "guide.md"),
		[]byte("Deployment is automated."), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(docsDir, "ops", "runbook.md"),
		[]byte("restart the deployment service"), 0644))

	specPath := filepath.Join(dir, "spec.yaml")
	spec := `root: docs
documents:
  - path: guide.md
    metadata:
      team: platform
  - path: ops/runbook.md
`
	require.NoError(t, os.WriteFile(specPath, []byte(spec), 0644))
	return specPath
}

func TestBuild_CreatesCache(t *testing.T) {
	specPath := writeProject(t)
	outDir := filepath.Join(filepath.Dir(specPath), "out")

	require.NoError(t, Build(specPath, outDir))

	assert.FileExists(t, filepath.Join(outDir, "manifest.json"))
	assert.FileExists(t, filepath.Join(outDir, "index.json"))

	index, err := os.ReadFile(filepath.Join(outDir, "index.json"))
	require.NoError(t, err)
	var mapping map[string]string
	require.NoError(t, json.Unmarshal(index, &mapping))
	assert.Len(t, mapping, 2)
	assert.Contains(t, mapping, "guide.md")
	assert.Contains(t, mapping, "ops/runbook.md")
}

func TestBuild_RefusesExistingOutput(t *testing.T) {
	specPath := writeProject(t)
	outDir := filepath.Join(filepath.Dir(specPath), "out")
	require.NoError(t, os.MkdirAll(outDir, 0755))

	err := Build(specPath, outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestBuild_MissingSpec(t *testing.T) {
	err := Build("/nonexistent/spec.yaml", filepath.Join(t.TempDir(), "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not readable")
}

func TestBuild_MissingDocument(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(specPath,
		[]byte("root: .\ndocuments:\n  - path: ghost.md\n"), 0644))

	err := Build(specPath, filepath.Join(dir, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost.md")
}

func TestSelect_PrintsResultJSON(t *testing.T) {
	specPath := writeProject(t)
	outDir := filepath.Join(filepath.Dir(specPath), "out")
	require.NoError(t, Build(specPath, outDir))

	var buf bytes.Buffer
	require.NoError(t, Select(&buf, outDir, "deployment", 4000))

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))

	docs := result["documents"].([]any)
	assert.Len(t, docs, 2)

	sel := result["selection"].(map[string]any)
	assert.Equal(t, float64(2), sel["documents_considered"])
	assert.Equal(t, float64(4000), sel["budget_tokens"])
}

func TestSelect_InvalidBudget(t *testing.T) {
	specPath := writeProject(t)
	outDir := filepath.Join(filepath.Dir(specPath), "out")
	require.NoError(t, Build(specPath, outDir))

	var buf bytes.Buffer
	err := Select(&buf, outDir, "deployment", -1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "budget")
}

func TestSelect_MissingCache(t *testing.T) {
	var buf bytes.Buffer
	err := Select(&buf, filepath.Join(t.TempDir(), "nope"), "q", 10)
	require.Error(t, err)
}

func TestVerify_CleanCache(t *testing.T) {
	specPath := writeProject(t)
	outDir := filepath.Join(filepath.Dir(specPath), "out")
	require.NoError(t, Build(specPath, outDir))

	var buf bytes.Buffer
	require.NoError(t, Verify(&buf, outDir))
	assert.Contains(t, buf.String(), "verified")
}

func TestVerify_TamperedCache(t *testing.T) {
	specPath := writeProject(t)
	outDir := filepath.Join(filepath.Dir(specPath), "out")
	require.NoError(t, Build(specPath, outDir))

	// Corrupt one stored document.
	entries, err := os.ReadDir(filepath.Join(outDir, "documents"))
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	victim := filepath.Join(outDir, "documents", entries[0].Name())
	data, err := os.ReadFile(victim)
	require.NoError(t, err)
	tampered := bytes.Replace(data, []byte("Deployment"), []byte("Sabotage.."), 1)
	tampered = bytes.Replace(tampered, []byte("restart"), []byte("destroy"), 1)
	require.NoError(t, os.WriteFile(victim, tampered, 0644))

	var buf bytes.Buffer
	err = Verify(&buf, outDir)
	require.Error(t, err)
	assert.Contains(t, buf.String(), "✗")
}
