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
)

// DeleteCommand returns the "delete" subcommand that removes a stored
// plan by name.
func DeleteCommand() *cli.Command {
	var params struct {
		Database string
	}

	return &cli.Command{
		Name:    "delete",
		Summary: "Delete a stored plan",
		Usage:   "loom store delete <name> [flags]",
		Examples: []cli.Example{
			{
				Description: "Delete the stored release plan",
				Command:     "loom store delete release --db plans.db",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("delete", pflag.ContinueOnError)
			addDatabaseFlag(flagSet, &params.Database)
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

			logger := cli.NewCommandLogger().With(
				"command", "store/delete",
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

			err = planStore.DeletePlan(context.Background(), name)
			if errors.Is(err, planstore.ErrPlanNotFound) {
				return fmt.Errorf("no stored plan %q", name)
			}
			if err != nil {
				return fmt.Errorf("delete plan: %w", err)
			}
			fmt.Printf("deleted %q\n", name)
			return nil
		},
	}
}
