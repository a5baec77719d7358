// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package pipeline

import (
	"fmt"

	"github.com/contextcore/contextcore/internal/selector"
)

// loadStage reads and verifies the cached documents.
type loadStage struct{}

func LoadDocuments() Stage { return &loadStage{} }

func (s *loadStage) Name() string { return "load" }

func (s *loadStage) Run(ctx *Context) error {
	docs, err := ctx.Cache.LoadDocuments()
	if err != nil {
		return fmt.Errorf("loading cache documents: %w", err)
	}
	ctx.Documents = docs
	return nil
}

// scoreStage parses the query and scores every document.
type scoreStage struct {
	scorer selector.Scorer
}

func Score(scorer selector.Scorer) Stage { return &scoreStage{scorer: scorer} }

func (s *scoreStage) Name() string { return "score" }

func (s *scoreStage) Run(ctx *Context) error {
	ctx.Query = selector.NewQuery(ctx.RawQuery)
	ctx.Scored = selector.ScoreAll(s.scorer, ctx.Query, ctx.Documents)
	return nil
}

// orderStage sorts scored documents into the selection total order.
type orderStage struct{}

func Order() Stage { return &orderStage{} }

func (s *orderStage) Name() string { return "order" }

func (s *orderStage) Run(ctx *Context) error {
	selector.Order(ctx.Scored)
	return nil
}

// budgetStage greedily fills the token budget.
type budgetStage struct {
	counter selector.TokenCounter
}

func Budget(counter selector.TokenCounter) Stage { return &budgetStage{counter: counter} }

func (s *budgetStage) Name() string { return "budget" }

func (s *budgetStage) Run(ctx *Context) error {
	selected, used, err := selector.Admit(ctx.Scored, s.counter, ctx.Budget)
	if err != nil {
		return err
	}
	ctx.Selected = selected
	ctx.TokensUsed = used
	return nil
}

// assembleStage builds the final result.
type assembleStage struct{}

func Assemble() Stage { return &assembleStage{} }

func (s *assembleStage) Name() string { return "assemble" }

func (s *assembleStage) Run(ctx *Context) error {
	ctx.Result = selector.NewResult(ctx.Query, ctx.Budget, len(ctx.Documents), ctx.Selected, ctx.TokensUsed)
	return nil
}
