// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package validator provides JSON Schema validation for cache manifests.
package validator

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed manifest.schema.json
var schemaJSON []byte

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// ValidationError is one schema violation, with the JSON path where it was
// found when available.
type ValidationError struct {
	Message string
	Path    string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s (at %s)", e.Message, e.Path)
	}
	return e.Message
}

// ValidateManifest validates raw manifest.json bytes against the embedded
// schema. A nil result means the manifest is structurally valid; deeper
// integrity checks (hashes, file presence) are the cache package's job.
func ValidateManifest(raw []byte) []ValidationError {
	schema, err := manifestSchema()
	if err != nil {
		return []ValidationError{{Message: fmt.Sprintf("compiling manifest schema: %v", err)}}
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return []ValidationError{{Message: fmt.Sprintf("parsing manifest: %v", err)}}
	}

	if err := schema.Validate(doc); err != nil {
		return convertSchemaError(err)
	}
	return nil
}

// manifestSchema compiles the embedded schema once.
func manifestSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var schemaDoc any
		if err := json.Unmarshal(schemaJSON, &schemaDoc); err != nil {
			compileErr = fmt.Errorf("parsing schema JSON: %w", err)
			return
		}

		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("manifest.schema.json", schemaDoc); err != nil {
			compileErr = fmt.Errorf("adding schema resource: %w", err)
			return
		}

		compiledSchema, compileErr = compiler.Compile("manifest.schema.json")
	})
	return compiledSchema, compileErr
}

// convertSchemaError flattens the jsonschema error tree into per-line
// validation errors.
func convertSchemaError(err error) []ValidationError {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []ValidationError{{Message: err.Error()}}
	}

	var errors []ValidationError
	for _, line := range strings.Split(ve.Error(), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		path := ""
		if idx := strings.Index(line, "at '"); idx != -1 {
			rest := line[idx+4:]
			if end := strings.Index(rest, "'"); end != -1 {
				path = rest[:end]
			}
		}

		errors = append(errors, ValidationError{Message: line, Path: path})
	}

	if len(errors) == 0 {
		errors = append(errors, ValidationError{Message: ve.Error()})
	}
	return errors
}
