// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

// Package asset turns a frontend asset tree into the entries embedded
// in a Glaze runtime bundle.
//
// The pipeline has three stages, each usable on its own:
//
//   - Walk enumerates regular files under a root in a stable
//     lexicographic order, so repeated builds from identical inputs
//     see identical orderings.
//   - ComputeDigest hashes the ORIGINAL file bytes with SHA-256 and
//     derives the Content-Security-Policy token ('sha256-<base64>')
//     that authorizes the asset when served from the embedded bundle.
//   - Compress optionally compresses the payload (zstd or LZ4) with a
//     stored-uncompressed fallback for incompressible data.
//
// Load runs all three over a root directory, fanning the per-file
// hash/compress work out to a bounded worker pool. Files are
// independent, so the pool shares no mutable state; results are
// reassembled in walk order before being returned, which keeps
// parallelism invisible to the emitted output.
//
// The digest is always computed over the original uncompressed bytes,
// never the compressed form, so integrity checks survive compression
// algorithm changes.
package asset
