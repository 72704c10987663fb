// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

// Package bundle assembles and emits the Glaze runtime bundle.
//
// A bundle is the immutable artifact a Glaze application embeds at
// compile time and consumes at startup: every frontend asset with its
// integrity digest and optional compression, the generated platform
// icons, the isolation bridge payload, the application metadata, and
// the fully-augmented Content-Security-Policy.
//
// The lifecycle is strict: [Assemble] merges the upstream artifacts
// into one RuntimeContext, validating its invariants fail-fast;
// [RuntimeContext.Emit] serializes it exactly once; the context is
// then discarded. Nothing persists across builds except the emitted
// file.
//
// On disk a bundle is a fixed binary header (magic, version, body
// length, BLAKE3 body hash) followed by a CBOR body in Core
// Deterministic Encoding. Identical context content reproduces the
// artifact byte for byte, which makes the body hash usable as a build
// cache key. Emission goes through a temporary file renamed into
// place, so a concurrent compile step never observes a partial
// artifact.
package bundle
