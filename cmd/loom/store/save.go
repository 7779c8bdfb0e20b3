// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/loomplan/loom/cmd/loom/cli"
	"github.com/loomplan/loom/lib/planfile"
	"github.com/loomplan/loom/lib/planstore"
)

// SaveCommand returns the "save" subcommand that loads a plan file
// and stores the validated graph under a name.
func SaveCommand() *cli.Command {
	var params struct {
		Database string
		Name     string
	}

	return &cli.Command{
		Name:    "save",
		Summary: "Save a plan file to the database",
		Description: `Load and validate a plan file, then store the graph in the
database. The stored name defaults to the plan name declared in the
file; --name overrides it. Saving under an existing name replaces the
stored plan.`,
		Usage: "loom store save <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Save under the plan's declared name",
				Command:     "loom store save release.yaml",
			},
			{
				Description: "Save under an explicit name",
				Command:     "loom store save release.yaml --name release-2026q3 --db plans.db",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("save", pflag.ContinueOnError)
			addDatabaseFlag(flagSet, &params.Database)
			flagSet.StringVar(&params.Name, "name", "", "stored name (default: the plan's declared name)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("plan file path required")
			}
			if len(args) > 1 {
				return fmt.Errorf("unexpected argument: %s", args[1])
			}
			loaded, err := planfile.Load(args[0])
			if err != nil {
				return fmt.Errorf("load plan: %w", err)
			}

			name := params.Name
			if name == "" {
				name = loaded.Name
			}
			logger := cli.NewCommandLogger().With(
				"command", "store/save",
				"plan", name,
			)

			planStore, err := planstore.Open(planstore.StoreConfig{
				Path:   params.Database,
				Logger: logger,
			})
			if err != nil {
				return fmt.Errorf("open plan database: %w", err)
			}
			defer planStore.Close()

			ctx := context.Background()
			if err := planStore.SavePlan(ctx, name, loaded.Description, loaded.Graph); err != nil {
				return fmt.Errorf("save plan: %w", err)
			}

			stats := loaded.Graph.Stats()
			fmt.Printf("saved %q: %d items, %d dependencies\n",
				name, stats.Items, stats.Dependencies)
			return nil
		},
	}
}
