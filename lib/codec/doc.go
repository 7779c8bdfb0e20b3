// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides Loom's standard CBOR encoding configuration.
//
// Loom uses two serialization formats with a clear boundary:
//
//   - YAML for the human-edited surface: plan files authored by
//     people and read back by the loader.
//   - CBOR for machine artifacts: snapshot payloads and the rows the
//     plan store persists.
//
// This package provides the shared CBOR encoding and decoding modes so
// that every Loom package encodes identically without duplicating
// configuration. The encoder uses Core Deterministic Encoding (RFC 8949
// §4.2): sorted map keys, smallest integer encoding, no
// indefinite-length items. Same logical data always produces identical
// bytes, which is what makes snapshot digests meaningful.
//
// For buffer-oriented operations (snapshot payloads, store rows):
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations:
//
//	encoder := codec.NewEncoder(w)
//	decoder := codec.NewDecoder(r)
//
// # Struct Tag Rules
//
// The struct tag on a type documents its serialization format:
//
//   - `cbor` tag: this type is ONLY ever serialized as CBOR. Examples:
//     snapshot envelope records.
//   - `json` tag: this type may be serialized as BOTH JSON and CBOR.
//     fxamacker/cbor v2 reads `json` tags as fallback when `cbor`
//     tags are absent, so a single `json` tag controls field naming
//     and omitempty for both formats. Examples: types used in CLI
//     --json output.
//
// Never use both `cbor` and `json` tags on the same field. The tag
// choice documents the contract.
package codec
