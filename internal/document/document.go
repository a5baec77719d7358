// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"
)

// VersionPrefix is the digest scheme tag carried by every version string.
const VersionPrefix = "sha256:"

// Version identifies document content: "sha256:" followed by the lowercase
// hex SHA-256 digest of the content bytes exactly as ingested. No newline
// normalization, no whitespace trimming, no Unicode normalization — two
// documents share a version iff their content bytes are identical.
type Version string

// VersionOf computes the version of the given content bytes.
func VersionOf(content []byte) Version {
	sum := sha256.Sum256(content)
	return Version(VersionPrefix + hex.EncodeToString(sum[:]))
}

// Hex returns the hex digest portion of the version, or false if the version
// string does not carry the sha256 prefix.
func (v Version) Hex() (string, bool) {
	return strings.CutPrefix(string(v), VersionPrefix)
}

func (v Version) String() string {
	return string(v)
}

// Document is an immutable ingested document. The JSON field order is part
// of the on-disk contract and must not be reordered.
type Document struct {
	ID       ID       `json:"id"`
	Version  Version  `json:"version"`
	Source   string   `json:"source"`
	Content  string   `json:"content"`
	Metadata Metadata `json:"metadata"`
}

// Ingest validates content and constructs a Document. It is the only way to
// create one: the version is always derived from the content bytes, and
// non-UTF-8 content is rejected with ErrInvalidUTF8. Source is an
// informational locator and participates in neither identity nor version.
func Ingest(id ID, source string, content []byte, metadata Metadata) (Document, error) {
	if !utf8.Valid(content) {
		return Document{}, fmt.Errorf("document %s: content: %w", id, ErrInvalidUTF8)
	}
	return Document{
		ID:       id,
		Version:  VersionOf(content),
		Source:   source,
		Content:  string(content),
		Metadata: metadata,
	}, nil
}
