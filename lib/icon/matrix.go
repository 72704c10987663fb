// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package icon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// matrixFile is the on-disk shape of an icon matrix override:
//
//	platforms:
//	  windows: [16, 24, 32, 48, 64, 256]
//	  macos: [16, 32, 128, 256, 512]
//
// Listed platforms replace the built-in sizes wholesale; platforms not
// listed keep their defaults. Replacing rather than merging keeps the
// override file a complete statement of what the build produces.
type matrixFile struct {
	Platforms map[string][]int `yaml:"platforms"`
}

// LoadMatrix reads a YAML matrix override file and applies it on top
// of the built-in defaults.
func LoadMatrix(path string) (Matrix, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading icon matrix %s: %w", path, err)
	}

	var file matrixFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing icon matrix %s: %w", path, err)
	}

	matrix := DefaultMatrix()
	for name, sizes := range file.Platforms {
		platform, err := ParsePlatform(name)
		if err != nil {
			return nil, fmt.Errorf("icon matrix %s: %w", path, err)
		}
		matrix[platform] = sizes
	}

	if err := matrix.Validate(); err != nil {
		return nil, fmt.Errorf("icon matrix %s: %w", path, err)
	}
	return matrix, nil
}
