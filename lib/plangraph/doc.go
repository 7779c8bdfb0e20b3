// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

// Package plangraph owns the directed acyclic graph of work items and
// their typed dependencies. It is the invariant-bearing core of Loom:
// every mutation re-establishes acyclicity, identifier uniqueness, and
// policy-valid edges before returning.
//
// # Invariants
//
// Between any two public calls on a [Graph]:
//
//   - No directed cycle exists, across any combination of edge types.
//   - No two items share an identifier.
//   - Every edge's (source kind, target kind, dependency type) triple
//     was permitted by [workitem.AllowedDependency] when inserted.
//
// [Graph.Connect] enforces these transactionally: the candidate edge
// is added tentatively, the whole graph is scanned for a cycle, and on
// detection the edge is removed again before the error returns — a
// failed call leaves the graph exactly as it found it.
//
// # Ownership
//
// The graph stores items in an internal arena and maps identifiers to
// arena positions for O(1) lookup. Items are inserted once and never
// removed; there is no delete or disconnect operation. Dependencies
// can only be created through Connect.
//
// # Concurrency
//
// Graph is not safe for concurrent use. A failed Connect passes
// through a transiently cyclic state, so hosts that share a graph
// across goroutines must hold one exclusive lock for the whole logical
// operation, not per call.
//
// This package depends only on [workitem]. It performs no I/O.
package plangraph
