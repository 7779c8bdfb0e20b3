// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

// Package workitem defines the closed set of work-item variants that
// populate a Loom plan graph, the typed dependency relationships that
// connect them, and the compatibility policy deciding which
// relationships are legal between which kinds.
//
// # Variants
//
// [Item] is a closed sum: exactly five concrete types implement it —
// [Spec], [Project], [Epic], [UserStory], and [Task]. Every variant
// carries an immutable 128-bit identifier and a display name; the
// remaining attributes differ per variant:
//
//	Spec       link, owner
//	Project    link, owner, timeline, participants
//	Epic       link, owner, timeline (required), points, participants
//	UserStory  link, owner, timeline (required), points
//	Task       link, owner, timeline (required), points
//
// Attribute mutators are variant-gated: calling a mutator on a
// variant that does not carry the attribute fails with
// [ErrUnsupportedAttribute]. The gates live here, on the variants
// themselves, so that the rules for which kind carries which
// attribute stay in one place.
//
// # Construction
//
// Items are built with [Builder], which validates required-field
// presence per variant. Identifiers are caller-supplied and cannot be
// changed after construction — this removes the possibility of a
// graph index going stale under identifier mutation.
//
// # Dependencies and policy
//
// [DependencyType] enumerates the three edge labels (contains,
// blocks, resources_required_for). [AllowedDependency] is the pure
// static table deciding whether an ordered (from kind, to kind,
// dependency type) triple is semantically valid. The table encodes
// the containment hierarchy Spec ⊇ Project ⊇ Epic ⊇ UserStory ⊇ Task
// plus same-level coordination edges.
//
// This package depends only on [timeline] for the schedule attachment.
// It performs no I/O and holds no global state.
package workitem
