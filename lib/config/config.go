// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads the declarative Glaze application configuration
// consumed by the codegen pipeline.
//
// The config file is JSONC — JSON extended with // line comments,
// /* block comments */, and trailing commas — stripped with
// tidwall/jsonc before decoding. It is the single source of truth for
// a build: there are no environment overrides and no merging of
// multiple files, which keeps generation deterministic and auditable.
//
// Relative paths in the file (asset root, icon sources, output) are
// resolved against the directory containing the config file, so a
// build behaves the same regardless of the working directory the tool
// is invoked from.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"

	"github.com/glazeapp/glaze/lib/asset"
	"github.com/glazeapp/glaze/lib/icon"
)

// Config is the parsed glaze.conf.json.
type Config struct {
	// App identifies the application being built.
	App AppConfig `json:"app"`

	// AssetRoot is the directory of frontend assets to embed.
	AssetRoot string `json:"asset_root"`

	// Output is the path the emitted bundle is written to.
	Output string `json:"output"`

	// Platforms lists the icon target platforms for this build.
	Platforms []string `json:"platforms"`

	// Icons configures icon sources and size requirements.
	Icons IconConfig `json:"icons"`

	// Compression configures payload compression. The zero value
	// (absent section) means disabled.
	Compression CompressionConfig `json:"compression"`

	// Isolation configures the security bridge. The zero value means
	// disabled.
	Isolation IsolationConfig `json:"isolation"`

	// CSP is the base Content-Security-Policy the runtime serves.
	// Codegen augments it with the hash tokens of embedded scripts
	// and styles.
	CSP string `json:"csp"`
}

// AppConfig is application metadata recorded in the bundle.
type AppConfig struct {
	// Name is the human-readable application name.
	Name string `json:"name"`

	// Identifier is the reverse-DNS application identifier, e.g.
	// "org.example.notes".
	Identifier string `json:"identifier"`

	// Version is the application version string.
	Version string `json:"version"`
}

// IconConfig configures icon generation.
type IconConfig struct {
	// Sources are candidate source images; the largest usable one is
	// selected, preferring "@2x" retina sources on ties.
	Sources []string `json:"sources"`

	// MatrixFile optionally points at a YAML file overriding the
	// built-in per-platform size requirements.
	MatrixFile string `json:"matrix_file,omitempty"`
}

// CompressionConfig is the compression feature toggle, resolved once
// at pipeline construction rather than consulted as scattered
// conditionals.
type CompressionConfig struct {
	// Enabled turns asset compression on.
	Enabled bool `json:"enabled"`

	// Algorithm selects the codec: "zstd" (default when enabled) or
	// "lz4".
	Algorithm string `json:"algorithm,omitempty"`
}

// IsolationConfig is the isolation feature toggle.
type IsolationConfig struct {
	// Enabled turns bridge script generation on.
	Enabled bool `json:"enabled"`
}

// Parse strips JSONC comments and trailing commas from data, then
// unmarshals the result.
func Parse(data []byte) (*Config, error) {
	stripped := jsonc.ToJSON(data)

	var cfg Config
	if err := json.Unmarshal(stripped, &cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}
	return &cfg, nil
}

// LoadFile reads a JSONC config file, parses it, and resolves its
// relative paths against the file's directory.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolving config directory: %w", err)
	}
	cfg.resolvePaths(baseDir)

	return cfg, nil
}

// resolvePaths makes every configured path absolute relative to the
// config file's directory.
func (c *Config) resolvePaths(baseDir string) {
	resolve := func(path string) string {
		if path == "" || filepath.IsAbs(path) {
			return path
		}
		return filepath.Join(baseDir, path)
	}

	c.AssetRoot = resolve(c.AssetRoot)
	c.Output = resolve(c.Output)
	c.Icons.MatrixFile = resolve(c.Icons.MatrixFile)
	for i, source := range c.Icons.Sources {
		c.Icons.Sources[i] = resolve(source)
	}
}

// Validate checks the configuration for errors, joining all of them
// so a user fixes everything in one pass.
func (c *Config) Validate() error {
	var errs []error

	if c.App.Name == "" {
		errs = append(errs, fmt.Errorf("app.name is required"))
	}
	if c.App.Identifier == "" {
		errs = append(errs, fmt.Errorf("app.identifier is required"))
	}
	if c.AssetRoot == "" {
		errs = append(errs, fmt.Errorf("asset_root is required"))
	}
	if c.Output == "" {
		errs = append(errs, fmt.Errorf("output is required"))
	}

	if len(c.Platforms) == 0 {
		errs = append(errs, fmt.Errorf("at least one platform is required"))
	}
	for _, name := range c.Platforms {
		if _, err := icon.ParsePlatform(name); err != nil {
			errs = append(errs, err)
		}
	}

	if len(c.Platforms) > 0 && len(c.Icons.Sources) == 0 {
		errs = append(errs, fmt.Errorf("icons.sources is required when platforms are configured"))
	}

	if c.Compression.Enabled && c.Compression.Algorithm != "" {
		if _, err := asset.ParseCompressionTag(c.Compression.Algorithm); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// CompressionTag resolves the compression section to the tag the
// pipeline applies: CompressionNone when disabled, zstd when enabled
// with no explicit algorithm.
func (c *Config) CompressionTag() (asset.CompressionTag, error) {
	if !c.Compression.Enabled {
		return asset.CompressionNone, nil
	}
	if c.Compression.Algorithm == "" {
		return asset.CompressionZstd, nil
	}
	return asset.ParseCompressionTag(c.Compression.Algorithm)
}

// IconPlatforms returns the configured platforms as typed values.
// Call Validate first; unknown names are skipped here.
func (c *Config) IconPlatforms() []icon.Platform {
	platforms := make([]icon.Platform, 0, len(c.Platforms))
	for _, name := range c.Platforms {
		platform, err := icon.ParsePlatform(name)
		if err != nil {
			continue
		}
		platforms = append(platforms, platform)
	}
	return platforms
}

// IconMatrix loads the configured matrix override, or returns the
// defaults when none is configured.
func (c *Config) IconMatrix() (icon.Matrix, error) {
	if c.Icons.MatrixFile == "" {
		return icon.DefaultMatrix(), nil
	}
	return icon.LoadMatrix(c.Icons.MatrixFile)
}
