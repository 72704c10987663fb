// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package icon

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

// pngEncoder pins the encoder configuration so identical pixels always
// produce identical bytes. BestCompression keeps embedded icons small;
// icons are encoded once per build, so the extra CPU is irrelevant.
var pngEncoder = png.Encoder{CompressionLevel: png.BestCompression}

// render scales the source to a size×size square and returns it
// PNG-encoded. Catmull-Rom is a fixed-kernel resampler: no dithering,
// no randomness, so rendering is deterministic. Rendering at the
// source's own size skips resampling entirely.
func render(source *Source, size int) ([]byte, error) {
	bounds := source.Image.Bounds()

	var square *image.NRGBA
	if bounds.Dx() == size && bounds.Dy() == size {
		square = source.Image
	} else {
		// A non-square source is cropped to a centered square before
		// scaling so the icon is never distorted.
		crop := centeredSquare(bounds, source.Edge)
		square = image.NewNRGBA(image.Rect(0, 0, size, size))
		xdraw.CatmullRom.Scale(square, square.Bounds(), source.Image, crop, xdraw.Src, nil)
	}

	var buffer bytes.Buffer
	if err := pngEncoder.Encode(&buffer, square); err != nil {
		return nil, fmt.Errorf("encoding %dpx icon from %s: %w", size, source.Path, err)
	}
	return buffer.Bytes(), nil
}

// renderAll renders the source at every requested size, validating the
// size requirement first. Sizes must be ascending (as produced by
// Matrix.Sizes); the result maps size to PNG bytes in the same order.
func renderAll(source *Source, sizes []int) (map[int][]byte, error) {
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no icon sizes requested for %s", source.Path)
	}
	largest := sizes[len(sizes)-1]
	if err := source.CheckSize(largest); err != nil {
		return nil, err
	}

	rendered := make(map[int][]byte, len(sizes))
	for _, size := range sizes {
		data, err := render(source, size)
		if err != nil {
			return nil, err
		}
		rendered[size] = data
	}
	return rendered, nil
}

// centeredSquare returns the largest centered edge×edge rectangle
// within bounds.
func centeredSquare(bounds image.Rectangle, edge int) image.Rectangle {
	x0 := bounds.Min.X + (bounds.Dx()-edge)/2
	y0 := bounds.Min.Y + (bounds.Dy()-edge)/2
	return image.Rect(x0, y0, x0+edge, y0+edge)
}
