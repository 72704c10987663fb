// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Glaze packages.
//
// [WriteTree] materializes a map of relative paths to contents as a
// file tree under a fresh temporary directory, creating intermediate
// directories as needed. Asset pipeline tests use it to stand up
// source trees without repeating MkdirAll/WriteFile boilerplate.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no Glaze-internal dependencies.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteTree writes each file (keyed by slash-separated relative path)
// under a new temporary directory and returns that directory. The
// directory is removed when the test completes.
func WriteTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for relPath, content := range files {
		path := filepath.Join(root, filepath.FromSlash(relPath))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}
	return root
}
