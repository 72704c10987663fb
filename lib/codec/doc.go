// Copyright 2026 The Glaze Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Glaze's standard CBOR encoding configuration.
//
// Glaze uses two serialization formats with a clear boundary:
//
//   - JSON (as JSONC on disk) for human-authored input: glaze.conf.json
//     and icon matrix override files.
//   - CBOR for generated artifacts: the runtime bundle body emitted by
//     lib/bundle and read back by the runtime at startup.
//
// This package provides the shared CBOR encoding and decoding modes so
// that the emitter and the loader encode identically without
// duplicating configuration. The encoder uses Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer encoding,
// no indefinite-length items. Same logical data always produces
// identical bytes, which is the property reproducible bundle emission
// rests on: map iteration order never reaches the wire.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(file)
//	decoder := codec.NewDecoder(file)
package codec
