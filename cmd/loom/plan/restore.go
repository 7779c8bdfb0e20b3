// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/loomplan/loom/cmd/loom/cli"
	"github.com/loomplan/loom/lib/planui"
	"github.com/loomplan/loom/lib/snapshot"
)

// RestoreCommand returns the "restore" subcommand that reads a binary
// snapshot back into a graph and reports on it.
func RestoreCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
		Show bool
	}

	return &cli.Command{
		Name:    "restore",
		Summary: "Read a binary snapshot",
		Description: `Read a snapshot file, verify its digest, and rebuild the
graph. Restoring replays every item and dependency through the same
validation as loading a plan file, so a snapshot that decodes cleanly
is known to be a valid acyclic plan.

By default prints a one-line summary. With --show, renders the full
item listing.`,
		Usage: "loom plan restore <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Verify a snapshot and print its counts",
				Command:     "loom plan restore release.snap",
			},
			{
				Description: "Render the snapshot contents",
				Command:     "loom plan restore release.snap --show",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("restore", pflag.ContinueOnError)
			params.AddFlag(flagSet)
			flagSet.BoolVar(&params.Show, "show", false, "render the full item listing")
			return flagSet
		},
		Run: func(args []string) error {
			path, err := singlePathArg(args)
			if err != nil {
				return err
			}
			graph, err := snapshot.Load(path)
			if err != nil {
				return fmt.Errorf("read snapshot: %w", err)
			}

			if done, err := params.EmitJSON(graphDocument(graph)); done {
				return err
			}

			if params.Show {
				renderer := planui.NewRenderer(planui.DefaultTheme)
				fmt.Print(renderer.Graph(graph))
				return nil
			}
			stats := graph.Stats()
			fmt.Printf("%s: %d items, %d dependencies\n",
				path, stats.Items, stats.Dependencies)
			return nil
		},
	}
}
