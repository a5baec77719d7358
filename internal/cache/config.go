// Copyright 2026 Context Core Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package cache

import (
	"encoding/json"
	"fmt"
)

// ConfigV0 is the only build-config variant.
const ConfigV0 = "v0"

// BuildConfig is the versioned cache build configuration. Its canonical JSON
// form participates in the cache version digest, so the serialization must
// stay deterministic.
type BuildConfig struct {
	Version string `json:"version"`
}

// DefaultBuildConfig returns the v0 configuration.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{Version: ConfigV0}
}

// canonicalJSON returns the pretty-printed, sorted-key serialization of the
// config. Round-tripping through a generic map lets encoding/json sort the
// keys regardless of struct declaration order.
func (c BuildConfig) canonicalJSON() ([]byte, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("canonicalizing config: %w", err)
	}
	out, err := json.MarshalIndent(generic, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("canonicalizing config: %w", err)
	}
	return out, nil
}
