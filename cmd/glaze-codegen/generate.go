// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/glazeapp/glaze/lib/asset"
	"github.com/glazeapp/glaze/lib/bundle"
	"github.com/glazeapp/glaze/lib/config"
	"github.com/glazeapp/glaze/lib/icon"
	"github.com/glazeapp/glaze/lib/isolation"
)

// generateCmd implements the "generate" command: config to bundle in
// one pass.
func generateCmd(args []string, logger *slog.Logger) error {
	flagSet := pflag.NewFlagSet("generate", pflag.ContinueOnError)
	configPath := flagSet.String("config", "glaze.conf.json", "path to the project configuration")
	output := flagSet.String("output", "", "override the configured bundle output path")
	seed := flagSet.String("seed", "", "derive isolation key material from this seed instead of fresh randomness (reproducible builds)")
	iconsDir := flagSet.String("icons-dir", "", "additionally export rendered icon artifacts under this directory")
	allowPartial := flagSet.Bool("allow-partial", false, "continue past unreadable asset files instead of failing")
	workers := flagSet.Int("workers", 0, "asset worker pool size (0 = GOMAXPROCS)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}
	if flagSet.NArg() != 0 {
		return fmt.Errorf("unexpected arguments: %v", flagSet.Args())
	}

	cfg, err := config.LoadFile(*configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration %s: %w", *configPath, err)
	}

	compression, err := cfg.CompressionTag()
	if err != nil {
		return err
	}
	logger.Debug("pipeline configured",
		"asset_root", cfg.AssetRoot,
		"compression", compression,
		"isolation", cfg.Isolation.Enabled)

	entries, err := asset.Load(cfg.AssetRoot, asset.LoadOptions{
		Compression:  compression,
		AllowPartial: *allowPartial,
		Workers:      *workers,
		Logger:       logger,
	})
	if err != nil {
		return fmt.Errorf("loading assets from %s: %w", cfg.AssetRoot, err)
	}
	logger.Info("assets loaded", "count", len(entries))

	platforms := cfg.IconPlatforms()
	matrix, err := cfg.IconMatrix()
	if err != nil {
		return err
	}

	var artifacts []icon.Artifact
	if len(platforms) > 0 && len(cfg.Icons.Sources) > 0 {
		source, err := icon.SelectSource(cfg.Icons.Sources)
		if err != nil {
			return err
		}
		logger.Debug("icon source selected", "path", source.Path, "edge", source.Edge, "retina", source.Retina)
		artifacts, err = icon.TranscodeAll(source, platforms, matrix)
		if err != nil {
			return err
		}
		logger.Info("icons rendered", "artifacts", len(artifacts), "platforms", len(platforms))
	}

	if *iconsDir != "" {
		if err := exportIcons(artifacts, *iconsDir); err != nil {
			return err
		}
	}

	var payload *isolation.Payload
	if cfg.Isolation.Enabled {
		payload, err = isolation.Generate(isolation.Options{Seed: seedBytes(*seed)})
		if err != nil {
			return fmt.Errorf("generating isolation bridge: %w", err)
		}
		logger.Debug("isolation bridge generated", "script_bytes", len(payload.Script))
	}

	context, err := bundle.Assemble(bundle.Input{
		App:              cfg.App,
		CSP:              cfg.CSP,
		Entries:          entries,
		Icons:            artifacts,
		Platforms:        platforms,
		Matrix:           matrix,
		IsolationEnabled: cfg.Isolation.Enabled,
		Isolation:        payload,
		Compression:      compression,
	})
	if err != nil {
		return err
	}

	destination := cfg.Output
	if *output != "" {
		destination = *output
	}
	hash, err := context.Emit(destination)
	if err != nil {
		return err
	}
	logger.Info("bundle emitted", "path", destination, "ref", hash.Ref())
	return nil
}

// seedBytes converts the --seed flag into Generate's seed input. An
// empty flag means fresh randomness.
func seedBytes(seed string) []byte {
	if seed == "" {
		return nil
	}
	return []byte(seed)
}

// exportIcons writes the rendered artifacts as plain files under dir,
// mirroring each artifact's relative name.
func exportIcons(artifacts []icon.Artifact, dir string) error {
	for _, artifact := range artifacts {
		path := filepath.Join(dir, string(artifact.Platform), filepath.FromSlash(artifact.Name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("creating icon directory: %w", err)
		}
		if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
			return fmt.Errorf("writing icon %s: %w", artifact.Name, err)
		}
	}
	return nil
}
