// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

// Package timeline provides the schedule attachment carried by work
// items. A [Timeline] pairs a start instant with an end instant and a
// coarse [Span] classification of the elapsed time (hours, days, or
// weeks, rounded up).
//
// The graph engine never inspects timelines — it stores and returns
// them as opaque item attributes. All arithmetic lives here.
//
// This package depends on no other Loom packages.
package timeline
