// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"fmt"
	"io"

	"github.com/contextcore/contextcore/internal/cache"
)

// Verify runs the full integrity sweep and prints a line per check. It
// returns an error when any check fails so the CLI exits non-zero.
func Verify(out io.Writer, cacheDir string) error {
	report, err := cache.Verify(cacheDir)
	if err != nil {
		return err
	}

	printCheck(out, "manifest parses", report.ManifestValid)
	printCheck(out, "manifest matches schema", len(report.ManifestErrors) == 0)
	printCheck(out, "cache version matches", report.CacheVersionMatch)
	printCheck(out, "all listed files present", len(report.MissingFiles) == 0)
	printCheck(out, "all content hashes match", len(report.HashMismatches) == 0)
	printCheck(out, "index matches manifest", len(report.IndexErrors) == 0)
	printCheck(out, "no orphan files", len(report.Orphans) == 0)

	for _, detail := range collectDetails(report) {
		fmt.Fprintf(out, "  - %s\n", detail)
	}

	if !report.OK() {
		return fmt.Errorf("cache verification failed: %s", cacheDir)
	}

	fmt.Fprintf(out, "✓ %s verified\n", cacheDir)
	return nil
}

func printCheck(out io.Writer, name string, ok bool) {
	mark := "✓"
	if !ok {
		mark = "✗"
	}
	fmt.Fprintf(out, "%s %s\n", mark, name)
}

func collectDetails(report *cache.Report) []string {
	var details []string
	details = append(details, report.ManifestErrors...)
	for _, f := range report.MissingFiles {
		details = append(details, "missing file: "+f)
	}
	details = append(details, report.HashMismatches...)
	details = append(details, report.IndexErrors...)
	for _, f := range report.Orphans {
		details = append(details, "orphan file: "+f)
	}
	return details
}
