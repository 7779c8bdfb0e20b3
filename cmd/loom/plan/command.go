// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import "github.com/loomplan/loom/cmd/loom/cli"

// Command returns the "plan" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "plan",
		Summary: "Validate and inspect plan files",
		Description: `Work with YAML plan files.

A plan file declares work items (specs, projects, epics, user stories,
tasks) and the dependencies between them. Loading a plan validates the
whole declaration: unknown fields, incompatible dependency types, and
cycles are all reported with the offending entry named.`,
		Subcommands: []*cli.Command{
			CheckCommand(),
			ShowCommand(),
			StatsCommand(),
			DepsCommand(),
			SnapshotCommand(),
			RestoreCommand(),
		},
	}
}
