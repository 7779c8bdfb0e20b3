// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

// Package planfile loads plan definitions from YAML.
//
// A plan file is the human-edited surface of Loom. Work items are
// declared in a map keyed by short local names, and dependencies
// reference those keys rather than raw ids:
//
//	plan:
//	  name: release-q3
//	items:
//	  atlas:
//	    kind: project
//	    name: Atlas
//	    owner: noor
//	    participants: [mika, aiden]
//	  checkout:
//	    kind: epic
//	    name: Checkout flow
//	    points: 13
//	    timeline:
//	      start: 2026-04-06T00:00:00Z
//	      span: {unit: weeks, count: 2}
//	dependencies:
//	  - {from: atlas, to: checkout, type: contains}
//
// Item ids are optional in the file; omitted ids are generated at
// load time. Loading replays every declaration through the graph's
// Insert and Connect paths, so a file that names an incompatible
// dependency or closes a cycle fails to load with the same errors the
// API reports.
package planfile
