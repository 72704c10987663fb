// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/glazeapp/glaze/lib/asset"
	"github.com/glazeapp/glaze/lib/codec"
)

// Read parses an emitted bundle, verifying the magic, the format
// version, and the body hash before decoding. A bundle whose header
// hash does not match its body is rejected outright — a truncated or
// corrupted bundle must never reach the runtime.
func Read(path string) (*RuntimeContext, Hash, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Hash{}, fmt.Errorf("reading bundle: %w", err)
	}
	encoded, stored, err := verifyFraming(path, raw)
	if err != nil {
		return nil, Hash{}, err
	}

	var decoded body
	if err := codec.Unmarshal(encoded, &decoded); err != nil {
		return nil, Hash{}, fmt.Errorf("decoding bundle %s: %w", path, err)
	}

	return &RuntimeContext{
		app:       decoded.App,
		csp:       decoded.CSP,
		entries:   decoded.Entries,
		icons:     decoded.Icons,
		isolation: decoded.Isolation,
	}, stored, nil
}

// verifyFraming checks the magic, version, declared body length, and
// body hash of a raw bundle file, returning the body bytes and the
// stored hash.
func verifyFraming(path string, raw []byte) ([]byte, Hash, error) {
	if len(raw) < headerSize {
		return nil, Hash{}, fmt.Errorf("bundle %s: %d bytes, shorter than the %d-byte header", path, len(raw), headerSize)
	}
	if !bytes.Equal(raw[0:6], bundleMagic[:]) {
		return nil, Hash{}, fmt.Errorf("bundle %s: bad magic %q", path, raw[0:6])
	}
	if raw[6] != bundleVersion {
		return nil, Hash{}, fmt.Errorf("bundle %s: unsupported format version %d", path, raw[6])
	}

	bodyLen := binary.LittleEndian.Uint64(raw[8:16])
	encoded := raw[headerSize:]
	if uint64(len(encoded)) != bodyLen {
		return nil, Hash{}, fmt.Errorf("bundle %s: body is %d bytes, header says %d", path, len(encoded), bodyLen)
	}

	var stored Hash
	copy(stored[:], raw[16:48])
	if computed := HashBody(encoded); computed != stored {
		return nil, Hash{}, fmt.Errorf("bundle %s: body hash mismatch: header %s, computed %s", path, stored.Ref(), computed.Ref())
	}
	return encoded, stored, nil
}

// ReadBody returns the verified raw CBOR body of an emitted bundle.
// It performs the same header and hash checks as [Read] but skips
// decoding, for tooling that wants the encoded bytes (diagnostics,
// cache keys).
func ReadBody(path string) ([]byte, Hash, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, Hash{}, fmt.Errorf("reading bundle: %w", err)
	}
	encoded, stored, err := verifyFraming(path, raw)
	if err != nil {
		return nil, Hash{}, err
	}
	return encoded, stored, nil
}

// Lookup returns the decompressed bytes of the entry at path,
// verifying the stored digest against the decompressed content. The
// digest check catches bundles whose body hash is intact but whose
// entry was built from corrupted input.
func (c *RuntimeContext) Lookup(path string) ([]byte, error) {
	for i := range c.entries {
		if c.entries[i].Path != path {
			continue
		}
		data, err := c.entries[i].Payload()
		if err != nil {
			return nil, fmt.Errorf("entry %s: %w", path, err)
		}
		if asset.ComputeDigest(data) != c.entries[i].Digest {
			return nil, fmt.Errorf("entry %s: content digest mismatch", path)
		}
		return data, nil
	}
	return nil, fmt.Errorf("entry %s: not found in bundle", path)
}
