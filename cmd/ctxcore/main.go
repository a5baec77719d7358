// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package main provides the CLI entry point for the context-selection engine.
package main

import (
	"fmt"
	"os"

	"github.com/contextcore/contextcore/cmd/ctxcore/commands"
	"github.com/spf13/cobra"
)

var (
	version        = "0.1.0"
	buildOutputDir string
	selectQuery    string
	selectBudget   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ctxcore",
		Short: "Deterministic context-selection engine",
		Long: `ctxcore ingests text documents into an immutable content-addressed
cache and answers queries with a ranked, token-budgeted subset of
those documents. Identical inputs produce byte-identical outputs.`,
	}

	// Version flag
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("ctxcore version {{.Version}}\n")

	// build command
	buildCmd := &cobra.Command{
		Use:   "build [spec-file]",
		Short: "Build a document cache",
		Long:  `Build an immutable content-addressed cache from the documents listed in a build specification.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Build(args[0], buildOutputDir)
		},
	}
	buildCmd.Flags().StringVarP(&buildOutputDir, "output", "o", "cache", "Output directory for the cache")

	// select command
	selectCmd := &cobra.Command{
		Use:   "select [cache-dir]",
		Short: "Select documents from a cache",
		Long:  `Score, order, and budget the cached documents against a query and print the selection as JSON.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Select(cmd.OutOrStdout(), args[0], selectQuery, selectBudget)
		},
	}
	selectCmd.Flags().StringVarP(&selectQuery, "query", "q", "", "Query string")
	selectCmd.Flags().IntVarP(&selectBudget, "budget", "b", 4000, "Token budget")

	// verify command
	verifyCmd := &cobra.Command{
		Use:   "verify [cache-dir]",
		Short: "Verify a cache's integrity",
		Long:  `Run the full integrity sweep over a cache directory and report each check.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return commands.Verify(cmd.OutOrStdout(), args[0])
		},
	}

	rootCmd.AddCommand(buildCmd, selectCmd, verifyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
