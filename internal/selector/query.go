// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package selector implements the three-phase selection pipeline primitives:
// deterministic scoring, total ordering with tie-breaking, and greedy
// token-budget admission.
package selector

import "strings"

// Query is a parsed selection query. Terms are derived from Raw by
// lowercasing and splitting on runs of ASCII whitespace; empty strings never
// appear.
type Query struct {
	Raw   string   `json:"raw"`
	Terms []string `json:"terms"`
}

// NewQuery parses a raw query string.
func NewQuery(raw string) Query {
	terms := splitWords(strings.ToLower(raw))
	return Query{Raw: raw, Terms: terms}
}

// splitWords splits s on runs of ASCII whitespace. The result is never nil,
// so empty word lists serialize as [] rather than null.
func splitWords(s string) []string {
	words := strings.FieldsFunc(s, isASCIISpace)
	if words == nil {
		words = []string{}
	}
	return words
}

func isASCIISpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
