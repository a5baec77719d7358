// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package document

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestVersionOf(t *testing.T) {
	content := []byte("Deployment is automated.")
	sum := sha256.Sum256(content)
	want := Version("sha256:" + hex.EncodeToString(sum[:]))

	if got := VersionOf(content); got != want {
		t.Errorf("VersionOf() = %s, want %s", got, want)
	}
}

func TestVersionHex(t *testing.T) {
	v := VersionOf([]byte("x"))
	hexDigest, ok := v.Hex()
	if !ok {
		t.Fatal("Hex() reported malformed version")
	}
	if len(hexDigest) != 64 {
		t.Errorf("digest length = %d, want 64", len(hexDigest))
	}
	if _, ok := Version("md5:abc").Hex(); ok {
		t.Error("Hex() accepted a non-sha256 version")
	}
}

func TestIngest(t *testing.T) {
	meta := NewMetadata()
	meta.Set("team", StringValue("platform"))

	doc, err := Ingest("guide.md", "guide.md", []byte("hello"), meta)
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}
	if doc.ID != "guide.md" {
		t.Errorf("ID = %q", doc.ID)
	}
	if doc.Version != VersionOf([]byte("hello")) {
		t.Errorf("Version = %s", doc.Version)
	}
	if doc.Content != "hello" {
		t.Errorf("Content = %q", doc.Content)
	}
}

func TestIngestRejectsInvalidUTF8(t *testing.T) {
	_, err := Ingest("bad.md", "bad.md", []byte{0xff, 0xfe, 0xfd}, NewMetadata())
	if !errors.Is(err, ErrInvalidUTF8) {
		t.Errorf("expected ErrInvalidUTF8, got %v", err)
	}
}

func TestVersionDependsOnContentOnly(t *testing.T) {
	content := []byte("same content")

	a, err := Ingest("a.md", "src/a.md", content, NewMetadata())
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	meta := NewMetadata()
	meta.Set("owner", StringValue("someone"))
	meta.Set("rev", IntegerValue(42))
	b, err := Ingest("b.md", "elsewhere/b.md", content, meta)
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	if a.Version != b.Version {
		t.Errorf("identical content produced different versions: %s vs %s", a.Version, b.Version)
	}
}

func TestVersionSensitiveToEveryByte(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"LF vs CRLF", "hi\n", "hi\r\n"},
		{"trailing space", "hi", "hi "},
		{"case", "Hi", "hi"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if VersionOf([]byte(tt.a)) == VersionOf([]byte(tt.b)) {
				t.Errorf("contents %q and %q share a version", tt.a, tt.b)
			}
		})
	}
}

func TestDocumentJSONFieldOrder(t *testing.T) {
	doc, err := Ingest("a.md", "a.md", []byte("hello"), NewMetadata())
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	// Field order is part of the on-disk contract.
	order := []string{`"id"`, `"version"`, `"source"`, `"content"`, `"metadata"`}
	last := -1
	for _, field := range order {
		idx := strings.Index(string(data), field)
		if idx == -1 {
			t.Fatalf("field %s missing from %s", field, data)
		}
		if idx < last {
			t.Errorf("field %s out of order in %s", field, data)
		}
		last = idx
	}
}

func TestDocumentJSONRoundTrip(t *testing.T) {
	meta := NewMetadata()
	meta.Set("team", StringValue("docs"))
	meta.Set("priority", IntegerValue(3))

	doc, err := Ingest("ops/runbook.md", "ops/Runbook.md", []byte("restart the thing\n"), meta)
	if err != nil {
		t.Fatalf("Ingest() failed: %v", err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	var back Document
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}

	if back.ID != doc.ID || back.Version != doc.Version || back.Source != doc.Source || back.Content != doc.Content {
		t.Errorf("round trip changed document: %+v vs %+v", back, doc)
	}
	if v, ok := back.Metadata.Get("priority"); !ok {
		t.Error("metadata key lost in round trip")
	} else if n, _ := v.AsInteger(); n != 3 {
		t.Errorf("priority = %d, want 3", n)
	}
}
