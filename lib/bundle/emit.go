// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/glazeapp/glaze/lib/codec"
)

// Bundle file layout:
//
//	[0:6]   magic "GLAZEB"
//	[6]     format version (1)
//	[7]     reserved (0)
//	[8:16]  body length, little-endian uint64
//	[16:48] BLAKE3 keyed hash of the body (bundle body domain)
//	[48:]   CBOR-encoded body, Core Deterministic Encoding
var bundleMagic = [6]byte{'G', 'L', 'A', 'Z', 'E', 'B'}

const (
	bundleVersion = 1
	headerSize    = 48
)

// Emit encodes the context and writes it to path, creating parent
// directories as needed. The write is atomic: the bundle is staged in
// a temporary file in the destination directory and renamed into
// place, so a crashed or interrupted build never leaves a partial
// bundle where the loader would find it.
//
// Emission is deterministic: the same context produces the same bytes
// on every invocation. Emit returns the body hash so callers can log
// it or use it as a cache key.
func (c *RuntimeContext) Emit(path string) (Hash, error) {
	encoded, err := codec.Marshal(body{
		App:       c.app,
		CSP:       c.csp,
		Entries:   c.entries,
		Icons:     c.icons,
		Isolation: c.isolation,
	})
	if err != nil {
		return Hash{}, fmt.Errorf("encoding bundle body: %w", err)
	}

	hash := HashBody(encoded)

	header := make([]byte, headerSize)
	copy(header[0:6], bundleMagic[:])
	header[6] = bundleVersion
	header[7] = 0
	binary.LittleEndian.PutUint64(header[8:16], uint64(len(encoded)))
	copy(header[16:48], hash[:])

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Hash{}, fmt.Errorf("creating bundle directory: %w", err)
	}

	// Stage in the destination directory so the rename cannot cross
	// filesystems.
	tmp, err := os.CreateTemp(dir, ".bundle-*")
	if err != nil {
		return Hash{}, fmt.Errorf("creating temporary bundle file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(header); err != nil {
		tmp.Close()
		return Hash{}, fmt.Errorf("writing bundle header: %w", err)
	}
	if _, err := tmp.Write(encoded); err != nil {
		tmp.Close()
		return Hash{}, fmt.Errorf("writing bundle body: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return Hash{}, fmt.Errorf("syncing bundle file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return Hash{}, fmt.Errorf("closing bundle file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return Hash{}, fmt.Errorf("renaming bundle into place: %w", err)
	}
	return hash, nil
}
