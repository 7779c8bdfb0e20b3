// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

// Package planui renders plan graphs for terminal output.
//
// The renderer is static: it produces styled strings for the CLI
// rather than driving an interactive program. Each work item renders
// as a single line with a kind badge, name, and the attributes the
// item carries; dependencies render as an indented fan under their
// source item.
//
// Colors come from a Theme of lipgloss ANSI 256-color codes so output
// degrades gracefully in plain terminals and disappears entirely when
// the writer is not a TTY (lipgloss handles profile detection).
package planui
