// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package icon

import (
	"fmt"
	"sort"
)

// Platform identifies an icon target platform.
type Platform string

const (
	Windows Platform = "windows"
	MacOS   Platform = "macos"
	Linux   Platform = "linux"
)

// KnownPlatforms lists every supported platform in canonical order.
var KnownPlatforms = []Platform{Windows, MacOS, Linux}

// ParsePlatform parses a platform name from configuration.
func ParsePlatform(name string) (Platform, error) {
	switch Platform(name) {
	case Windows, MacOS, Linux:
		return Platform(name), nil
	default:
		return "", fmt.Errorf("unknown icon platform: %q", name)
	}
}

// Matrix maps each platform to the square icon sizes (edge length in
// pixels) its container must include. Every listed size is mandatory:
// the transcoder either produces all of them or fails.
type Matrix map[Platform][]int

// DefaultMatrix returns the built-in required sizes per platform.
// Windows sizes follow the shell's scaling steps; macOS sizes are the
// standard icns slots; Linux sizes cover the common hicolor theme
// directories.
func DefaultMatrix() Matrix {
	return Matrix{
		Windows: {16, 24, 32, 48, 64, 256},
		MacOS:   {16, 32, 64, 128, 256, 512, 1024},
		Linux:   {32, 128, 256, 512},
	}
}

// Sizes returns the required sizes for a platform in ascending order.
// The returned slice is a copy.
func (m Matrix) Sizes(platform Platform) []int {
	sizes := append([]int(nil), m[platform]...)
	sort.Ints(sizes)
	return sizes
}

// Largest returns the biggest size any of the given platforms
// requires. Zero when no platform has requirements.
func (m Matrix) Largest(platforms []Platform) int {
	largest := 0
	for _, platform := range platforms {
		for _, size := range m[platform] {
			if size > largest {
				largest = size
			}
		}
	}
	return largest
}

// Validate checks that every platform in the matrix is known and every
// size is positive.
func (m Matrix) Validate() error {
	for platform, sizes := range m {
		if _, err := ParsePlatform(string(platform)); err != nil {
			return err
		}
		if len(sizes) == 0 {
			return fmt.Errorf("platform %s has no required sizes", platform)
		}
		for _, size := range sizes {
			if size <= 0 {
				return fmt.Errorf("platform %s has invalid icon size %d", platform, size)
			}
		}
	}
	return nil
}

// Artifact is one generated icon blob ready for embedding. Windows
// and macOS produce a single multi-resolution container per platform;
// Linux produces one PNG per size.
type Artifact struct {
	// Platform is the target platform this blob belongs to.
	Platform Platform `cbor:"platform"`

	// Name is the artifact's path within the bundle's icon section,
	// e.g. "app.ico", "app.icns", or "hicolor/256x256/apps/app.png".
	Name string `cbor:"name"`

	// Sizes lists the square sizes contained in this blob, ascending.
	// A single-size PNG has exactly one element.
	Sizes []int `cbor:"sizes"`

	// Data is the container bytes, accepted as-is by the platform's
	// packaging step.
	Data []byte `cbor:"data"`
}

// UnsupportedFormatError reports a source image in a format the
// transcoder cannot decode.
type UnsupportedFormatError struct {
	// Path is the offending source file.
	Path string

	// Format is the detected format name, empty when the file could
	// not be decoded at all.
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Format == "" {
		return fmt.Sprintf("icon source %s: unrecognized image format (want PNG or JPEG)", e.Path)
	}
	return fmt.Sprintf("icon source %s: unsupported image format %q (want PNG or JPEG)", e.Path, e.Format)
}

// TooSmallError reports a source image smaller than the largest size a
// target platform requires. Upscaling is never performed — it would
// silently degrade quality.
type TooSmallError struct {
	// Path is the offending source file.
	Path string

	// Required is the largest requested size in pixels.
	Required int

	// Actual is the source's smaller edge in pixels.
	Actual int
}

func (e *TooSmallError) Error() string {
	return fmt.Sprintf("icon source %s is %dpx but %dpx is required; provide a larger source instead of upscaling",
		e.Path, e.Actual, e.Required)
}
