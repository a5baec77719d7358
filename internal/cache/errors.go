// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import "errors"

// Errors returned by cache building and loading. IO and serialization
// failures are wrapped stdlib errors carrying the offending path or entry;
// the sentinels below cover the build-specific failure modes. All are fatal
// for the operation — nothing is retried.
var (
	// ErrOutputExists is returned when the build target directory already exists.
	ErrOutputExists = errors.New("output directory already exists")

	// ErrDuplicateDocumentID is returned when two input documents share an ID.
	ErrDuplicateDocumentID = errors.New("duplicate document id")

	// ErrFilenameCollision is returned when two distinct documents map to the
	// same on-disk filename.
	ErrFilenameCollision = errors.New("filename collision")

	// ErrInvalidVersionFormat is returned when a document version does not
	// carry the sha256 prefix expected by filename assignment.
	ErrInvalidVersionFormat = errors.New("invalid version format")
)
