// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package errors provides enhanced error handling with actionable guidance.
package errors

import (
	"fmt"
	"strings"
)

// UserError represents an error with actionable guidance for users.
type UserError struct {
	Title      string   // Clear, concise error title
	Context    string   // Why this error matters
	Solutions  []string // Ordered list of things to try
	Underlying error    // Original error (optional)
}

// Error implements the error interface.
func (e *UserError) Error() string {
	var b strings.Builder

	b.WriteString("Error: ")
	b.WriteString(e.Title)
	b.WriteString("\n")

	if e.Context != "" {
		b.WriteString("\n")
		b.WriteString(e.Context)
		b.WriteString("\n")
	}

	if len(e.Solutions) > 0 {
		b.WriteString("\nTry these solutions:\n")
		for i, solution := range e.Solutions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, solution)
		}
	}

	if e.Underlying != nil {
		fmt.Fprintf(&b, "\nDetails: %v\n", e.Underlying)
	}

	return b.String()
}

// Unwrap returns the underlying error for error chain inspection.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// SpecFileError creates an error for missing or unreadable build specs.
func SpecFileError(path string, err error) *UserError {
	return &UserError{
		Title:   fmt.Sprintf("Build specification not readable: %s", path),
		Context: "The builder needs a valid build specification to know which documents to ingest.",
		Solutions: []string{
			"Check that the file path is correct",
			"Verify the file exists and is readable",
		},
		Underlying: err,
	}
}

// InvalidYAMLError creates an error for YAML parsing failures.
func InvalidYAMLError(file string, err error) *UserError {
	return &UserError{
		Title:   "Failed to parse build specification",
		Context: "The YAML syntax in your spec file is invalid.",
		Solutions: []string{
			"Check for proper YAML indentation (use spaces, not tabs)",
			"Verify all strings with special characters are quoted",
			"Validate YAML syntax with: yamllint " + file,
		},
		Underlying: err,
	}
}

// CacheExistsError creates an error for an occupied output directory.
func CacheExistsError(dir string, err error) *UserError {
	return &UserError{
		Title:   fmt.Sprintf("Cache directory already exists: %s", dir),
		Context: "Caches are write-once; an existing directory is never overwritten.",
		Solutions: []string{
			"Pick a different output directory with --output",
			"Remove the old cache first if it is no longer needed",
		},
		Underlying: err,
	}
}

// CorruptCacheError creates an error for caches that fail loading or
// verification.
func CorruptCacheError(dir string, err error) *UserError {
	return &UserError{
		Title:   fmt.Sprintf("Cache failed integrity checks: %s", dir),
		Context: "The on-disk cache does not match its manifest; its contents cannot be trusted.",
		Solutions: []string{
			"Run: ctxcore verify " + dir + " for a per-check report",
			"Rebuild the cache from the original documents",
		},
		Underlying: err,
	}
}

// InvalidBudgetError creates an error for unusable token budgets.
func InvalidBudgetError(budget int, err error) *UserError {
	return &UserError{
		Title:   fmt.Sprintf("Invalid token budget: %d", budget),
		Context: "Budgets are non-negative token counts; zero selects nothing but is well-formed.",
		Solutions: []string{
			"Pass a non-negative value to --budget",
		},
		Underlying: err,
	}
}
