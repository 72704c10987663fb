// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Hash is the 32-byte BLAKE3 digest identifying a bundle body. Asset
// integrity uses SHA-256 (the CSP grammar demands it); the bundle
// identity does not face the CSP grammar, so it uses BLAKE3 keyed
// hashing with domain separation like the rest of the artifact
// tooling.
type Hash [32]byte

// bodyDomainKey is the 32-byte key for BLAKE3 keyed hashing of bundle
// bodies. A fixed format constant — changing it invalidates every
// existing bundle hash. The bytes are the ASCII domain name,
// zero-padded to 32 bytes, so the key is inspectable in hex dumps
// without sacrificing any cryptographic property.
var bodyDomainKey = [32]byte{
	'g', 'l', 'a', 'z', 'e', '.', 'b', 'u', 'n', 'd', 'l', 'e', '.',
	'b', 'o', 'd', 'y', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// HashBody computes the body-domain BLAKE3 keyed hash of an encoded
// bundle body. Stored in the bundle header, verified by the loader,
// and used by build tooling as the generation cache key.
func HashBody(body []byte) Hash {
	hasher, err := blake3.NewKeyed(bodyDomainKey[:])
	if err != nil {
		// NewKeyed only fails on a wrong key length, which the fixed
		// array size rules out.
		panic("bundle: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(body)
	var hash Hash
	copy(hash[:], hasher.Sum(nil))
	return hash
}

// String returns the hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Ref returns the short bundle reference: "bnd-" followed by the
// first 12 hex characters. Used in logs and CLI output.
func (h Hash) Ref() string {
	return "bnd-" + hex.EncodeToString(h[:6])
}

// ParseHash parses a 64-character hex string into a Hash.
func ParseHash(hexString string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(hexString)
	if err != nil {
		return hash, fmt.Errorf("parsing bundle hash: %w", err)
	}
	if len(decoded) != 32 {
		return hash, fmt.Errorf("bundle hash is %d bytes, want 32", len(decoded))
	}
	copy(hash[:], decoded)
	return hash, nil
}
