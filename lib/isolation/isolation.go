// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

// Package isolation generates the security bridge script embedded in a
// Glaze runtime bundle.
//
// The bridge is a self-contained script that forces every
// application-to-host message through a validated channel bound to a
// per-build random key. The script's SHA-256 CSP token is computed
// here so the runtime can allow-list exactly this script and nothing
// else.
//
// Keys are freshly random on every invocation: a cached key would be
// shared across builds, and a leaked one would then open every
// installation built from it. The only exception is an explicit seed,
// used by test fixtures and reproducible-build verification, which
// derives the key material deterministically via HKDF-SHA256.
package isolation

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"fmt"
	"io"
	"text/template"

	"golang.org/x/crypto/hkdf"

	"github.com/glazeapp/glaze/lib/asset"
)

//go:embed bridge.js.tmpl
var bridgeTemplate string

// ScriptPath is the relative path under which the bridge script is
// embedded as an ordinary asset entry, so it is hashed, compressed,
// and served exactly like application assets.
const ScriptPath = "__glaze/isolation.js"

// channelName is the message channel identifier baked into the
// script. A format constant shared with the runtime.
const channelName = "glaze:isolation:v1"

// Payload is the generated isolation artifact.
type Payload struct {
	// Script is the rendered bridge script bytes.
	Script []byte `cbor:"script"`

	// Key is the per-build 32-byte channel key.
	Key []byte `cbor:"key"`

	// Nonce is the per-build 12-byte nonce.
	Nonce []byte `cbor:"nonce"`

	// Digest is the SHA-256 digest of Script. Its CSP token is what
	// the runtime adds to its script-src policy.
	Digest asset.Digest `cbor:"digest"`
}

// CSPToken returns the policy token that allow-lists the bridge
// script.
func (p *Payload) CSPToken() string {
	return p.Digest.CSPToken()
}

// TemplateError reports a bridge template that could not be rendered.
// Always fatal: a broken isolation bridge would silently disable the
// security boundary it exists to enforce, so there is no degraded
// mode.
type TemplateError struct {
	Err error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("rendering isolation bridge script: %v", e.Err)
}

func (e *TemplateError) Unwrap() error { return e.Err }

// Options controls payload generation.
type Options struct {
	// Seed, when non-empty, derives the key and nonce
	// deterministically with HKDF-SHA256 instead of crypto/rand.
	// For test fixtures and reproducible-build verification only —
	// production builds must leave it empty so every build gets a
	// fresh key.
	Seed []byte
}

// Generate renders the bridge script with fresh key material and
// computes its CSP digest.
func Generate(opts Options) (*Payload, error) {
	key := make([]byte, 32)
	nonce := make([]byte, 12)

	if len(opts.Seed) > 0 {
		reader := hkdf.New(sha256.New, opts.Seed, nil, []byte("glaze isolation key material"))
		if _, err := io.ReadFull(reader, key); err != nil {
			return nil, fmt.Errorf("deriving isolation key from seed: %w", err)
		}
		if _, err := io.ReadFull(reader, nonce); err != nil {
			return nil, fmt.Errorf("deriving isolation nonce from seed: %w", err)
		}
	} else {
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generating isolation key: %w", err)
		}
		if _, err := rand.Read(nonce); err != nil {
			return nil, fmt.Errorf("generating isolation nonce: %w", err)
		}
	}

	script, err := renderScript(key, nonce)
	if err != nil {
		return nil, err
	}

	return &Payload{
		Script: script,
		Key:    key,
		Nonce:  nonce,
		Digest: asset.ComputeDigest(script),
	}, nil
}

// renderScript executes the bridge template with the given key
// material.
func renderScript(key, nonce []byte) ([]byte, error) {
	parsed, err := template.New("bridge").Parse(bridgeTemplate)
	if err != nil {
		return nil, &TemplateError{Err: err}
	}

	var buffer bytes.Buffer
	data := struct {
		Key     string
		Nonce   string
		Channel string
	}{
		Key:     hex.EncodeToString(key),
		Nonce:   hex.EncodeToString(nonce),
		Channel: channelName,
	}
	if err := parsed.Execute(&buffer, data); err != nil {
		return nil, &TemplateError{Err: err}
	}
	return buffer.Bytes(), nil
}
