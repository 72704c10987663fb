// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package asset

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// Digest is the 32-byte SHA-256 digest of an asset's original
// (pre-compression) bytes. SHA-256 is not a free choice here: the CSP
// hash-source grammar (CSP Level 2 §4.2) admits only sha256, sha384,
// and sha512, and the Glaze runtime serves 'sha256-…' tokens.
type Digest [32]byte

// ComputeDigest hashes data with SHA-256. Pure and deterministic:
// identical bytes always produce an identical digest.
func ComputeDigest(data []byte) Digest {
	return sha256.Sum256(data)
}

// CSPToken returns the Content-Security-Policy source token that
// authorizes content with this digest, in the quoted form the policy
// grammar requires: 'sha256-<standard base64 of the raw digest>'.
//
// Every embedded script and style contributes its token to the
// runtime's effective policy; omitting one breaks that asset at load
// time, so the token format is part of the codegen↔runtime contract.
func (d Digest) CSPToken() string {
	return "'sha256-" + base64.StdEncoding.EncodeToString(d[:]) + "'"
}

// String returns the hex encoding of the digest. This is the canonical
// format in logs, CLI output, and bundle metadata.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// MarshalText implements encoding.TextMarshaler so digests serialize
// as hex strings in CBOR and JSON.
func (d Digest) MarshalText() ([]byte, error) {
	return []byte(hex.EncodeToString(d[:])), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Digest) UnmarshalText(text []byte) error {
	decoded, err := hex.DecodeString(string(text))
	if err != nil {
		return fmt.Errorf("parsing asset digest: %w", err)
	}
	if len(decoded) != sha256.Size {
		return fmt.Errorf("asset digest is %d bytes, want %d", len(decoded), sha256.Size)
	}
	copy(d[:], decoded)
	return nil
}

// ParseDigest parses a 64-character hex string into a Digest.
func ParseDigest(hexString string) (Digest, error) {
	var digest Digest
	err := digest.UnmarshalText([]byte(hexString))
	return digest, err
}
