// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package commands

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/contextcore/contextcore/internal/cache"
	"github.com/contextcore/contextcore/internal/errors"
	"github.com/contextcore/contextcore/internal/pipeline"
	"github.com/contextcore/contextcore/internal/selector"
)

// Select runs the selection pipeline over a cache and writes the result JSON.
func Select(out io.Writer, cacheDir, query string, budget int) error {
	c, err := cache.Load(cacheDir)
	if err != nil {
		return errors.CorruptCacheError(cacheDir, err)
	}

	result, err := pipeline.Select(c, query, budget)
	if err != nil {
		if stderrors.Is(err, selector.ErrInvalidBudget) {
			return errors.InvalidBudgetError(budget, err)
		}
		return errors.CorruptCacheError(cacheDir, err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing result: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}
