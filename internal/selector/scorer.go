// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package selector

import (
	"strings"

	"github.com/contextcore/contextcore/internal/document"
)

// ScoreDetails explains a document's score. On the wire the score value
// itself travels as the selected document's score field, so it is excluded
// here.
type ScoreDetails struct {
	QueryTerms  []string `json:"query_terms"`
	TermMatches int      `json:"term_matches"`
	TotalWords  int      `json:"total_words"`
	Score       float64  `json:"-"`
}

// Scorer scores a document against a query. Implementations must be pure:
// no I/O, no randomness, no clocks — identical inputs must yield identical
// details on every platform.
type Scorer interface {
	Score(q Query, doc document.Document) ScoreDetails
}

// TermFrequencyScorer is the v0 scorer: the ratio of query-term occurrences
// to total words, with exact word equality after lowercasing. Deliberately
// naive — no smoothing, no TF-IDF — because a stable definition matters more
// than a clever one.
type TermFrequencyScorer struct{}

// Score implements Scorer.
func (TermFrequencyScorer) Score(q Query, doc document.Document) ScoreDetails {
	words := splitWords(strings.ToLower(doc.Content))

	matches := 0
	for _, term := range q.Terms {
		for _, w := range words {
			if w == term {
				matches++
			}
		}
	}

	score := 0.0
	if len(words) > 0 {
		score = float64(matches) / float64(len(words))
	}

	return ScoreDetails{
		QueryTerms:  q.Terms,
		TermMatches: matches,
		TotalWords:  len(words),
		Score:       score,
	}
}

// ScoredDocument pairs a document with its score details.
type ScoredDocument struct {
	Document document.Document
	Details  ScoreDetails
}

// ScoreAll scores every document. Input order is preserved; ordering is
// Order's job.
func ScoreAll(s Scorer, q Query, docs []document.Document) []ScoredDocument {
	scored := make([]ScoredDocument, 0, len(docs))
	for _, doc := range docs {
		scored = append(scored, ScoredDocument{Document: doc, Details: s.Score(q, doc)})
	}
	return scored
}
