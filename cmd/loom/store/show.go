// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/loomplan/loom/cmd/loom/cli"
	"github.com/loomplan/loom/lib/planstore"
	"github.com/loomplan/loom/lib/planui"
)

// ShowCommand returns the "show" subcommand that renders a stored
// plan by name.
func ShowCommand() *cli.Command {
	var params struct {
		Database string
		Stats    bool
	}

	return &cli.Command{
		Name:    "show",
		Summary: "Render a stored plan",
		Usage:   "loom store show <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Render the stored release plan",
				Command:     "loom store show release",
			},
			{
				Description: "Render with summary counts",
				Command:     "loom store show --db plans.db release --stats",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			addDatabaseFlag(flagSet, &params.Database)
			flagSet.BoolVar(&params.Stats, "stats", false, "append summary counts")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("plan name required")
			}
			if len(args) > 1 {
				return fmt.Errorf("unexpected argument: %s", args[1])
			}
			name := args[0]

			planStore, err := planstore.Open(planstore.StoreConfig{Path: params.Database})
			if err != nil {
				return fmt.Errorf("open plan database: %w", err)
			}
			defer planStore.Close()

			graph, err := planStore.LoadPlan(context.Background(), name)
			if errors.Is(err, planstore.ErrPlanNotFound) {
				return fmt.Errorf("no stored plan %q", name)
			}
			if err != nil {
				return fmt.Errorf("load plan: %w", err)
			}

			renderer := planui.NewRenderer(planui.DefaultTheme)
			fmt.Print(renderer.Graph(graph))
			if params.Stats {
				fmt.Print(renderer.Stats(graph.Stats()))
			}
			return nil
		},
	}
}
