// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package asset

import "strings"

// Entry is one asset as it will be embedded in the runtime bundle.
//
// The Data slice is owned exclusively by the entry: the load pipeline
// moves buffers into entries and the assembler moves entries into the
// runtime context. Nothing retains a reference back to the source
// filesystem once loading completes.
type Entry struct {
	// Path is the slash-separated path relative to the asset root.
	// Unique within a bundle (enforced, with case folding, at
	// assembly).
	Path string `cbor:"path"`

	// Data is the embedded payload: the compressed bytes when
	// Compression is not CompressionNone, the original bytes
	// otherwise.
	Data []byte `cbor:"data"`

	// Digest is the SHA-256 digest of the ORIGINAL uncompressed
	// bytes. Never computed over the compressed form, so integrity
	// checks survive compression changes.
	Digest Digest `cbor:"digest"`

	// Size is the original uncompressed length in bytes.
	Size int64 `cbor:"size"`

	// CompressedSize is the stored payload length when compressed.
	// Zero (and absent on the wire) for uncompressed entries.
	CompressedSize int64 `cbor:"compressed_size,omitempty"`

	// Compression identifies how Data was compressed.
	Compression CompressionTag `cbor:"compression,omitempty"`
}

// Compressed reports whether the stored payload is compressed.
func (e *Entry) Compressed() bool {
	return e.Compression != CompressionNone
}

// Payload returns the original uncompressed bytes, reversing
// compression if necessary.
func (e *Entry) Payload() ([]byte, error) {
	return Decompress(e.Data, e.Compression, int(e.Size))
}

// ContributesCSPToken reports whether this entry's digest belongs in
// the runtime's Content-Security-Policy. Scripts and styles are
// allow-listed by hash; other content types (images, fonts, markup)
// are not subject to hash sources.
func (e *Entry) ContributesCSPToken() bool {
	switch {
	case strings.HasSuffix(e.Path, ".js"), strings.HasSuffix(e.Path, ".mjs"):
		return true
	case strings.HasSuffix(e.Path, ".css"):
		return true
	default:
		return false
	}
}
