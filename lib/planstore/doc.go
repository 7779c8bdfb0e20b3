// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

// Package planstore persists named plans in SQLite.
//
// The store keeps any number of plans side by side, keyed by name.
// Saving a plan replaces whatever was stored under that name; loading
// rebuilds the graph by replaying the stored rows through the graph's
// Insert and Connect paths, so a stored plan is re-validated the same
// way a plan file is.
//
// The schema flattens work items into columns and keeps nested
// attributes (timeline, participants) as deterministic CBOR blobs via
// lib/codec. Rows carry an explicit position column so adjacency
// order survives the round trip.
package planstore
