// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/glazeapp/glaze/lib/asset"
)

const sampleConfig = `{
	// Application metadata.
	"app": {
		"name": "Notes",
		"identifier": "org.example.notes",
		"version": "1.2.0",
	},
	"asset_root": "dist",
	"output": "generated/app.glzbundle",
	"platforms": ["linux", "windows"],
	"icons": {
		"sources": ["icons/app.png", "icons/app@2x.png"],
	},
	"compression": {
		"enabled": true,
		"algorithm": "zstd",
	},
	"isolation": { "enabled": true },
	"csp": "default-src 'self'",
}`

func TestParseJSONC(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.App.Name != "Notes" || cfg.App.Identifier != "org.example.notes" {
		t.Errorf("app metadata not parsed: %+v", cfg.App)
	}
	if !cfg.Compression.Enabled || cfg.Compression.Algorithm != "zstd" {
		t.Errorf("compression section not parsed: %+v", cfg.Compression)
	}
	if !cfg.Isolation.Enabled {
		t.Error("isolation section not parsed")
	}
	if len(cfg.Platforms) != 2 {
		t.Errorf("platforms = %v, want two entries", cfg.Platforms)
	}
}

func TestLoadFileResolvesRelativePaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glaze.conf.json")
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if cfg.AssetRoot != filepath.Join(dir, "dist") {
		t.Errorf("AssetRoot = %q, want it resolved against the config dir", cfg.AssetRoot)
	}
	if cfg.Output != filepath.Join(dir, "generated", "app.glzbundle") {
		t.Errorf("Output = %q, want it resolved against the config dir", cfg.Output)
	}
	for _, source := range cfg.Icons.Sources {
		if !filepath.IsAbs(source) {
			t.Errorf("icon source %q not resolved to absolute", source)
		}
	}
}

func TestValidateJoinsAllErrors(t *testing.T) {
	cfg := &Config{Platforms: []string{"beos"}}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("empty config should not validate")
	}

	message := err.Error()
	for _, want := range []string{"app.name", "app.identifier", "asset_root", "output", "beos"} {
		if !strings.Contains(message, want) {
			t.Errorf("validation error does not mention %q: %s", want, message)
		}
	}
}

func TestValidateAcceptsSample(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("sample config should validate: %v", err)
	}
}

func TestCompressionTagResolution(t *testing.T) {
	tests := []struct {
		name    string
		section CompressionConfig
		want    asset.CompressionTag
	}{
		{"disabled", CompressionConfig{}, asset.CompressionNone},
		{"enabled default", CompressionConfig{Enabled: true}, asset.CompressionZstd},
		{"enabled lz4", CompressionConfig{Enabled: true, Algorithm: "lz4"}, asset.CompressionLZ4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Compression: tt.section}
			tag, err := cfg.CompressionTag()
			if err != nil {
				t.Fatalf("CompressionTag failed: %v", err)
			}
			if tag != tt.want {
				t.Errorf("CompressionTag = %s, want %s", tag, tt.want)
			}
		})
	}

	cfg := &Config{Compression: CompressionConfig{Enabled: true, Algorithm: "brotli"}}
	if _, err := cfg.CompressionTag(); err == nil {
		t.Error("unknown algorithm should fail")
	}
}

func TestIconMatrixDefaults(t *testing.T) {
	cfg := &Config{}
	matrix, err := cfg.IconMatrix()
	if err != nil {
		t.Fatalf("IconMatrix failed: %v", err)
	}
	if len(matrix) == 0 {
		t.Error("expected default matrix")
	}
}
