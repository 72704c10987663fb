// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"github.com/glazeapp/glaze/lib/asset"
	"github.com/glazeapp/glaze/lib/config"
	"github.com/glazeapp/glaze/lib/icon"
)

// RuntimeContext is the fully-assembled bundle content, immutable
// after [Assemble] returns. It owns its entries, icons, and isolation
// payload exclusively — upstream stages move their buffers in and
// retain nothing, and no field references the source filesystem.
//
// A context is constructed once per build invocation and consumed
// exactly once by [RuntimeContext.Emit].
type RuntimeContext struct {
	app       config.AppConfig
	csp       string
	entries   []asset.Entry
	icons     []icon.Artifact
	isolation *isolationRecord
}

// isolationRecord is the bundle-side view of the isolation payload:
// key material and the script's digest. The script bytes themselves
// live in the entry list under isolation.ScriptPath, so they are
// hashed, compressed, and embedded like any other asset.
type isolationRecord struct {
	Key    []byte       `cbor:"key"`
	Nonce  []byte       `cbor:"nonce"`
	Path   string       `cbor:"path"`
	Digest asset.Digest `cbor:"digest"`
}

// body is the CBOR shape of an emitted bundle. Field order is
// irrelevant on the wire — Core Deterministic Encoding sorts map keys.
type body struct {
	App       config.AppConfig `cbor:"app"`
	CSP       string           `cbor:"csp"`
	Entries   []asset.Entry    `cbor:"entries"`
	Icons     []icon.Artifact  `cbor:"icons,omitempty"`
	Isolation *isolationRecord `cbor:"isolation,omitempty"`
}

// App returns the application metadata snapshot.
func (c *RuntimeContext) App() config.AppConfig { return c.app }

// CSP returns the fully-augmented Content-Security-Policy: the
// configured base policy plus the hash token of every embedded script
// and style, plus the isolation script's token when enabled.
func (c *RuntimeContext) CSP() string { return c.csp }

// Entries returns the asset entries in their stable emission order
// (lexicographic by path). Callers must not mutate the returned
// slice.
func (c *RuntimeContext) Entries() []asset.Entry { return c.entries }

// Icons returns the generated icon artifacts. Callers must not mutate
// the returned slice.
func (c *RuntimeContext) Icons() []icon.Artifact { return c.icons }

// IsolationEnabled reports whether the context carries an isolation
// payload.
func (c *RuntimeContext) IsolationEnabled() bool { return c.isolation != nil }
