// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package pipeline composes the selection stages: load, score, order,
// budget, assemble. Stages are synchronous and run in order; the first
// failing stage aborts the run.
package pipeline

import (
	"fmt"

	"github.com/contextcore/contextcore/internal/cache"
	"github.com/contextcore/contextcore/internal/document"
	"github.com/contextcore/contextcore/internal/selector"
)

// Context carries data between pipeline stages.
type Context struct {
	Cache    *cache.Cache
	RawQuery string
	Budget   int

	Query      selector.Query
	Documents  []document.Document
	Scored     []selector.ScoredDocument
	Selected   []selector.SelectedDocument
	TokensUsed int
	Result     *selector.Result
}

// Stage is a single step in a pipeline.
type Stage interface {
	Name() string
	Run(ctx *Context) error
}

// Pipeline executes a sequence of stages.
type Pipeline struct {
	stages []Stage
}

// New creates a pipeline from the given stages.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages}
}

// Run executes each stage in order, stopping on the first error.
func (p *Pipeline) Run(ctx *Context) error {
	for _, s := range p.stages {
		if err := s.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Select runs the full selection pipeline with the v0 scorer and token
// counter: score every cached document against the query, order by score
// descending with ID tie-break, and greedily fill the token budget.
func Select(c *cache.Cache, rawQuery string, budget int) (*selector.Result, error) {
	if budget < 0 {
		return nil, fmt.Errorf("budget %d: %w", budget, selector.ErrInvalidBudget)
	}

	ctx := &Context{
		Cache:    c,
		RawQuery: rawQuery,
		Budget:   budget,
	}

	p := New(
		LoadDocuments(),
		Score(selector.TermFrequencyScorer{}),
		Order(),
		Budget(selector.ApproxTokenCounter{}),
		Assemble(),
	)
	if err := p.Run(ctx); err != nil {
		return nil, err
	}
	return ctx.Result, nil
}
