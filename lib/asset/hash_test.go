// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package asset

import (
	"crypto/sha256"
	"encoding/base64"
	"strings"
	"testing"
)

func TestComputeDigestMatchesIndependentHash(t *testing.T) {
	data := []byte("const answer = 42;\n")

	digest := ComputeDigest(data)
	independent := sha256.Sum256(data)

	if digest != Digest(independent) {
		t.Errorf("ComputeDigest disagrees with crypto/sha256: %s vs %x", digest, independent)
	}
}

func TestComputeDigestDeterministic(t *testing.T) {
	data := []byte("body { margin: 0; }")
	if ComputeDigest(data) != ComputeDigest(data) {
		t.Error("identical input produced different digests")
	}
	if ComputeDigest([]byte("a")) == ComputeDigest([]byte("b")) {
		t.Error("different inputs produced identical digests")
	}
}

func TestCSPTokenFormat(t *testing.T) {
	data := []byte("console.log('hello');")
	digest := ComputeDigest(data)
	token := digest.CSPToken()

	if !strings.HasPrefix(token, "'sha256-") || !strings.HasSuffix(token, "'") {
		t.Fatalf("CSP token %q is not of the form 'sha256-…'", token)
	}

	// The base64 payload must decode back to the raw digest.
	payload := strings.TrimSuffix(strings.TrimPrefix(token, "'sha256-"), "'")
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		t.Fatalf("CSP token payload is not standard base64: %v", err)
	}
	if string(raw) != string(digest[:]) {
		t.Error("CSP token payload does not match the digest bytes")
	}
}

func TestDigestTextRoundtrip(t *testing.T) {
	digest := ComputeDigest([]byte("roundtrip"))

	text, err := digest.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText failed: %v", err)
	}
	if len(text) != 64 {
		t.Errorf("hex digest is %d characters, want 64", len(text))
	}

	parsed, err := ParseDigest(string(text))
	if err != nil {
		t.Fatalf("ParseDigest failed: %v", err)
	}
	if parsed != digest {
		t.Error("text roundtrip lost the digest value")
	}
}

func TestParseDigestRejectsBadInput(t *testing.T) {
	for _, input := range []string{"", "zz", "abcd", strings.Repeat("0", 63)} {
		if _, err := ParseDigest(input); err == nil {
			t.Errorf("ParseDigest(%q) should fail", input)
		}
	}
}
