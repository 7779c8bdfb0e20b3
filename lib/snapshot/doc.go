// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

// Package snapshot serializes a plan graph to a single self-verifying
// file and restores it.
//
// The file layout is:
//
//	magic (8 bytes) || digest (32 bytes) || zstd(CBOR payload)
//
// The payload is the full graph: one record per work item and one
// record per dependency edge, encoded with Loom's deterministic CBOR
// configuration (lib/codec) and compressed with zstd. The digest is a
// BLAKE3 keyed hash of the compressed payload; keyed hashing gives
// domain separation, so snapshot digests can never collide with
// hashes computed elsewhere over the same bytes.
//
// Restore replays the records through the same Insert and Connect
// paths the graph exposes, so a snapshot that was valid when written
// is re-validated on the way back in. A payload edited to contain a
// cycle or an incompatible edge fails to load.
package snapshot
