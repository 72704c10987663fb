// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package icon

import (
	"fmt"
)

// Transcode renders the source into the native icon artifacts for one
// platform, at every size the matrix requires. Windows and macOS
// produce a single multi-resolution container; Linux produces one PNG
// per size in the freedesktop hicolor layout.
//
// All mandatory sizes are rendered or the call fails — a partial icon
// set is never returned. Deterministic: same source and matrix yield
// byte-identical artifacts.
func Transcode(source *Source, platform Platform, matrix Matrix) ([]Artifact, error) {
	sizes := matrix.Sizes(platform)
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no icon sizes required for platform %s", platform)
	}

	rendered, err := renderAll(source, sizes)
	if err != nil {
		return nil, err
	}

	switch platform {
	case Windows:
		data, err := buildICO(rendered, sizes)
		if err != nil {
			return nil, err
		}
		return []Artifact{{
			Platform: Windows,
			Name:     "app.ico",
			Sizes:    sizes,
			Data:     data,
		}}, nil

	case MacOS:
		data, err := buildICNS(rendered, sizes, source.Retina)
		if err != nil {
			return nil, err
		}
		return []Artifact{{
			Platform: MacOS,
			Name:     "app.icns",
			Sizes:    sizes,
			Data:     data,
		}}, nil

	case Linux:
		artifacts := make([]Artifact, 0, len(sizes))
		for _, size := range sizes {
			artifacts = append(artifacts, Artifact{
				Platform: Linux,
				Name:     fmt.Sprintf("hicolor/%dx%d/apps/app.png", size, size),
				Sizes:    []int{size},
				Data:     rendered[size],
			})
		}
		return artifacts, nil

	default:
		return nil, fmt.Errorf("unknown icon platform: %q", platform)
	}
}

// TranscodeAll runs Transcode for every requested platform from a
// single decoded source.
func TranscodeAll(source *Source, platforms []Platform, matrix Matrix) ([]Artifact, error) {
	// Validate against the largest requirement across all platforms
	// up front so the error names the true constraint rather than
	// whichever platform happened to be processed first.
	if err := source.CheckSize(matrix.Largest(platforms)); err != nil {
		return nil, err
	}

	var artifacts []Artifact
	for _, platform := range platforms {
		platformArtifacts, err := Transcode(source, platform, matrix)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, platformArtifacts...)
	}
	return artifacts, nil
}
