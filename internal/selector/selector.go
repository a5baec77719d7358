// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package selector

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidBudget is returned when a selection is requested with a negative
// token budget.
var ErrInvalidBudget = errors.New("invalid token budget")

// Order sorts scored documents into the selection total order: score
// descending, ties broken by ID ascending (byte lex). The explicit
// comparator is what makes float-valued scores deterministic across
// platforms.
func Order(scored []ScoredDocument) {
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Details.Score != scored[j].Details.Score {
			return scored[i].Details.Score > scored[j].Details.Score
		}
		return scored[i].Document.ID.Less(scored[j].Document.ID)
	})
}

// Ordered reports whether scored satisfies the selection total order. Used
// by tests to check the invariant post-sort.
func Ordered(scored []ScoredDocument) bool {
	for i := 1; i < len(scored); i++ {
		prev, cur := scored[i-1], scored[i]
		if prev.Details.Score < cur.Details.Score {
			return false
		}
		if prev.Details.Score == cur.Details.Score && !prev.Document.ID.Less(cur.Document.ID) {
			return false
		}
	}
	return true
}

// Admit walks ordered documents and greedily fills the token budget: each
// document is admitted iff it still fits, and a document that does not fit
// is skipped without stopping the walk — a later, smaller document may still
// fit. Documents are never truncated or partially included. A zero budget
// admits nothing; a negative budget fails with ErrInvalidBudget.
func Admit(ordered []ScoredDocument, counter TokenCounter, budget int) ([]SelectedDocument, int, error) {
	if budget < 0 {
		return nil, 0, fmt.Errorf("budget %d: %w", budget, ErrInvalidBudget)
	}

	selected := make([]SelectedDocument, 0, len(ordered))
	used := 0
	for _, sd := range ordered {
		tokens := counter.Count(sd.Document)
		if used+tokens > budget {
			continue
		}
		used += tokens
		selected = append(selected, SelectedDocument{
			ID:      sd.Document.ID,
			Source:  sd.Document.Source,
			Content: sd.Document.Content,
			Version: sd.Document.Version,
			Score:   sd.Details.Score,
			Tokens:  tokens,
			Why:     sd.Details,
		})
	}
	return selected, used, nil
}
