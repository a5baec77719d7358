// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package selector

import "github.com/contextcore/contextcore/internal/document"

// SelectedDocument is one admitted document in the selection result. The
// field order matches the public JSON contract.
type SelectedDocument struct {
	ID      document.ID      `json:"id"`
	Source  string           `json:"source"`
	Content string           `json:"content"`
	Version document.Version `json:"version"`
	Score   float64          `json:"score"`
	Tokens  int              `json:"tokens"`
	Why     ScoreDetails     `json:"why"`
}

// Selection summarizes a selection run.
type Selection struct {
	Query               Query `json:"query"`
	BudgetTokens        int   `json:"budget_tokens"`
	TokensUsed          int   `json:"tokens_used"`
	DocumentsConsidered int   `json:"documents_considered"`
	DocumentsSelected   int   `json:"documents_selected"`
}

// Result is the selector's public output.
type Result struct {
	Documents []SelectedDocument `json:"documents"`
	Selection Selection          `json:"selection"`
}

// NewResult assembles a Result. considered is the cache size, not the
// selected count; selected may be empty but is never nil.
func NewResult(q Query, budget, considered int, selected []SelectedDocument, used int) *Result {
	if selected == nil {
		selected = []SelectedDocument{}
	}
	return &Result{
		Documents: selected,
		Selection: Selection{
			Query:               q,
			BudgetTokens:        budget,
			TokensUsed:          used,
			DocumentsConsidered: considered,
			DocumentsSelected:   len(selected),
		},
	}
}
