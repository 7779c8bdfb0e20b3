// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete loom CLI command tree.
package commands

import (
	"fmt"

	"github.com/loomplan/loom/cmd/loom/cli"
	plancmd "github.com/loomplan/loom/cmd/loom/plan"
	storecmd "github.com/loomplan/loom/cmd/loom/store"
	"github.com/loomplan/loom/lib/version"
)

// Root builds and returns the complete loom CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "loom",
		Description: `Loom: work-item dependency planning.

Declare specs, projects, epics, user stories, and tasks in YAML plan
files, validate the dependencies between them, and keep validated
plans as binary snapshots or in a local database.`,
		Subcommands: []*cli.Command{
			plancmd.Command(),
			storecmd.Command(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("loom %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Validate a plan file",
				Command:     "loom plan check release.yaml",
			},
			{
				Description: "Render a plan with summary counts",
				Command:     "loom plan show release.yaml --stats",
			},
			{
				Description: "Everything the rollout epic depends on",
				Command:     "loom plan deps release.yaml rollout",
			},
			{
				Description: "Snapshot a validated plan",
				Command:     "loom plan snapshot release.yaml --out release.snap",
			},
			{
				Description: "Save a plan to the local database",
				Command:     "loom store save release.yaml --db plans.db",
			},
			{
				Description: "List stored plans",
				Command:     "loom store list --db plans.db",
			},
		},
	}
}
