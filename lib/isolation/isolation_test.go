// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package isolation

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/glazeapp/glaze/lib/asset"
)

func TestGenerateFreshKeys(t *testing.T) {
	first, err := Generate(Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := Generate(Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Stale-key reuse across builds is forbidden: two invocations
	// must produce independent key material and therefore different
	// scripts.
	if bytes.Equal(first.Key, second.Key) {
		t.Error("two builds produced the same isolation key")
	}
	if bytes.Equal(first.Script, second.Script) {
		t.Error("two builds produced the same bridge script")
	}
}

func TestGenerateSeededDeterministic(t *testing.T) {
	seed := []byte("fixture seed for reproducible builds")

	first, err := Generate(Options{Seed: seed})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := Generate(Options{Seed: seed})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !bytes.Equal(first.Key, second.Key) || !bytes.Equal(first.Nonce, second.Nonce) {
		t.Error("same seed produced different key material")
	}
	if !bytes.Equal(first.Script, second.Script) {
		t.Error("same seed produced different scripts")
	}

	different, err := Generate(Options{Seed: []byte("another seed")})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if bytes.Equal(first.Key, different.Key) {
		t.Error("different seeds produced the same key")
	}
}

func TestGenerateKeyMaterialSizes(t *testing.T) {
	payload, err := Generate(Options{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(payload.Key) != 32 {
		t.Errorf("key is %d bytes, want 32", len(payload.Key))
	}
	if len(payload.Nonce) != 12 {
		t.Errorf("nonce is %d bytes, want 12", len(payload.Nonce))
	}
}

func TestScriptEmbedsKeyMaterial(t *testing.T) {
	payload, err := Generate(Options{Seed: []byte("embed check")})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	script := string(payload.Script)
	if !bytes.Contains(payload.Script, []byte(hex.EncodeToString(payload.Key))) {
		t.Error("rendered script does not contain the channel key")
	}
	if !bytes.Contains(payload.Script, []byte(hex.EncodeToString(payload.Nonce))) {
		t.Error("rendered script does not contain the nonce")
	}
	if !bytes.Contains([]byte(script), []byte(channelName)) {
		t.Error("rendered script does not name the message channel")
	}
}

func TestCSPTokenMatchesScriptDigest(t *testing.T) {
	payload, err := Generate(Options{Seed: []byte("csp check")})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Independently recompute the token from the emitted script
	// bytes; it must equal the one carried in the payload.
	independent := asset.ComputeDigest(payload.Script)
	if independent.CSPToken() != payload.CSPToken() {
		t.Errorf("CSP token mismatch: independent %s vs payload %s",
			independent.CSPToken(), payload.CSPToken())
	}
}
