// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package icon

import (
	"os"
	"path/filepath"
	"testing"
)

func writeMatrixFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "icon-matrix.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing matrix file: %v", err)
	}
	return path
}

func TestDefaultMatrixValid(t *testing.T) {
	if err := DefaultMatrix().Validate(); err != nil {
		t.Fatalf("DefaultMatrix does not validate: %v", err)
	}
}

func TestMatrixSizesSorted(t *testing.T) {
	matrix := Matrix{Windows: {256, 16, 48}}
	sizes := matrix.Sizes(Windows)
	want := []int{16, 48, 256}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("Sizes = %v, want %v", sizes, want)
		}
	}
}

func TestMatrixLargest(t *testing.T) {
	matrix := DefaultMatrix()
	if got := matrix.Largest([]Platform{Linux}); got != 512 {
		t.Errorf("Largest(linux) = %d, want 512", got)
	}
	if got := matrix.Largest([]Platform{Linux, MacOS}); got != 1024 {
		t.Errorf("Largest(linux, macos) = %d, want 1024", got)
	}
	if got := matrix.Largest(nil); got != 0 {
		t.Errorf("Largest(nil) = %d, want 0", got)
	}
}

func TestLoadMatrixOverridesListedPlatformsOnly(t *testing.T) {
	path := writeMatrixFile(t, `
platforms:
  windows: [16, 32, 256]
`)

	matrix, err := LoadMatrix(path)
	if err != nil {
		t.Fatalf("LoadMatrix failed: %v", err)
	}

	windows := matrix.Sizes(Windows)
	if len(windows) != 3 || windows[2] != 256 {
		t.Errorf("windows sizes = %v, want [16 32 256]", windows)
	}

	// Unlisted platforms keep their defaults.
	if len(matrix.Sizes(MacOS)) != len(DefaultMatrix().Sizes(MacOS)) {
		t.Error("macos sizes should remain at defaults")
	}
}

func TestLoadMatrixRejectsUnknownPlatform(t *testing.T) {
	path := writeMatrixFile(t, `
platforms:
  beos: [32]
`)
	if _, err := LoadMatrix(path); err == nil {
		t.Error("LoadMatrix should reject an unknown platform")
	}
}

func TestLoadMatrixRejectsInvalidSize(t *testing.T) {
	path := writeMatrixFile(t, `
platforms:
  linux: [0, 128]
`)
	if _, err := LoadMatrix(path); err == nil {
		t.Error("LoadMatrix should reject a non-positive size")
	}
}

func TestLoadMatrixMissingFile(t *testing.T) {
	if _, err := LoadMatrix(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadMatrix should fail on a missing file")
	}
}
