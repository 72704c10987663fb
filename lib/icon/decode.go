// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package icon

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // registers the JPEG decoder with image.Decode
	_ "image/png"  // registers the PNG decoder with image.Decode
	"os"
	"path/filepath"
	"strings"
)

// Source is a decoded, validated icon source image.
type Source struct {
	// Path is the file the image was decoded from, kept for error
	// reporting.
	Path string

	// Image is the decoded pixel data, converted to NRGBA. The
	// conversion guarantees the alpha channel the ICO and ICNS
	// containers require; opaque sources (JPEG has no alpha) get a
	// fully opaque alpha plane.
	Image *image.NRGBA

	// Edge is the smaller of the source's width and height. A
	// non-square source is usable up to a square of this size.
	Edge int

	// Retina marks a high-density source, recognized by the "@2x"
	// file stem convention from the Apple developer guidelines.
	Retina bool
}

// DecodeSource reads and decodes an icon source file. Only PNG and
// JPEG are supported; anything else is an *UnsupportedFormatError
// naming the file.
func DecodeSource(path string) (*Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening icon source %s: %w", path, err)
	}
	defer file.Close()

	decoded, format, err := image.Decode(file)
	if err != nil {
		return nil, &UnsupportedFormatError{Path: path}
	}
	if format != "png" && format != "jpeg" {
		return nil, &UnsupportedFormatError{Path: path, Format: format}
	}

	bounds := decoded.Bounds()
	edge := bounds.Dx()
	if bounds.Dy() < edge {
		edge = bounds.Dy()
	}
	if edge <= 0 {
		return nil, fmt.Errorf("icon source %s has empty dimensions", path)
	}

	// Normalize to NRGBA so every downstream stage sees one pixel
	// format with an alpha channel.
	normalized := image.NewNRGBA(bounds)
	draw.Draw(normalized, bounds, decoded, bounds.Min, draw.Src)

	return &Source{
		Path:   path,
		Image:  normalized,
		Edge:   edge,
		Retina: IsRetina(path),
	}, nil
}

// CheckSize validates that the source can render the largest requested
// size without upscaling. Returns a *TooSmallError naming the source
// and the requirement otherwise.
func (s *Source) CheckSize(largest int) error {
	if s.Edge < largest {
		return &TooSmallError{Path: s.Path, Required: largest, Actual: s.Edge}
	}
	return nil
}

// IsRetina reports whether a path follows the "@2x" high-density
// naming convention: the file stem ends with "@2x".
func IsRetina(path string) bool {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return strings.HasSuffix(stem, "@2x")
}

// SelectSource decodes all candidate source paths and picks the one
// best suited for rendering: the largest usable edge, preferring a
// retina ("@2x") source on ties. At least one path is required.
func SelectSource(paths []string) (*Source, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no icon source paths configured")
	}

	var best *Source
	for _, path := range paths {
		source, err := DecodeSource(path)
		if err != nil {
			return nil, err
		}
		if best == nil || source.Edge > best.Edge ||
			(source.Edge == best.Edge && source.Retina && !best.Retina) {
			best = source
		}
	}
	return best, nil
}
