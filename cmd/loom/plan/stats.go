// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"

	"github.com/loomplan/loom/cmd/loom/cli"
	"github.com/loomplan/loom/lib/planfile"
	"github.com/loomplan/loom/lib/planui"
)

// StatsCommand returns the "stats" subcommand that prints aggregate
// counts for a plan file.
func StatsCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
	}

	return &cli.Command{
		Name:    "stats",
		Summary: "Print summary counts for a plan file",
		Description: `Load a plan file and print item counts per kind and
dependency counts per type.`,
		Usage: "loom plan stats <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Summarize a plan",
				Command:     "loom plan stats release.yaml",
			},
			{
				Description: "Summary as JSON",
				Command:     "loom plan stats release.yaml --json",
			},
		},
		Flags: flagsWithJSON("stats", &params.JSONOutput),
		Run: func(args []string) error {
			path, err := singlePathArg(args)
			if err != nil {
				return err
			}
			loaded, err := planfile.Load(path)
			if err != nil {
				return fmt.Errorf("load plan: %w", err)
			}

			stats := loaded.Graph.Stats()
			if done, err := params.EmitJSON(stats); done {
				return err
			}

			renderer := planui.NewRenderer(planui.DefaultTheme)
			fmt.Print(renderer.Stats(stats))
			return nil
		},
	}
}
