// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

// Package icon transcodes source icon images into the platform-native
// icon containers embedded in a Glaze runtime bundle.
//
// A source image (PNG or JPEG) is decoded once, validated against the
// largest size the target platform requires, and rendered into the
// platform's container format:
//
//   - windows: a single multi-resolution .ico (PNG-compressed entries,
//     the format Windows Vista and later accept directly)
//   - macos: a single multi-resolution .icns (PNG payloads in
//     per-size OSType blocks)
//   - linux: the freedesktop hicolor layout, one PNG per size
//
// The required (platform, size) matrix is built in and can be
// overridden from a YAML file for targets that need extra sizes (store
// submissions, for example). Every required size must be produced or
// transcoding fails — partial icon sets are never emitted.
//
// Sources are never upscaled: a source smaller than the largest
// requested size is a *TooSmallError, not a blurry icon. Downscaling
// uses Catmull-Rom resampling, which is deterministic, so the same
// source and matrix always produce byte-identical containers.
package icon
