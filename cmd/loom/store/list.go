// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package store

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"github.com/loomplan/loom/cmd/loom/cli"
	"github.com/loomplan/loom/lib/planstore"
)

// ListCommand returns the "list" subcommand that prints every stored
// plan with its counts and save time.
func ListCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
		Database string
	}

	return &cli.Command{
		Name:    "list",
		Summary: "List stored plans",
		Usage:   "loom store list [flags]",
		Examples: []cli.Example{
			{
				Description: "List plans in the default database",
				Command:     "loom store list",
			},
			{
				Description: "List plans as JSON",
				Command:     "loom store list --db plans.db --json",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("list", pflag.ContinueOnError)
			params.AddFlag(flagSet)
			addDatabaseFlag(flagSet, &params.Database)
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				return fmt.Errorf("unexpected argument: %s", args[0])
			}
			planStore, err := planstore.Open(planstore.StoreConfig{Path: params.Database})
			if err != nil {
				return fmt.Errorf("open plan database: %w", err)
			}
			defer planStore.Close()

			plans, err := planStore.ListPlans(context.Background())
			if err != nil {
				return fmt.Errorf("list plans: %w", err)
			}

			if done, err := params.EmitJSON(plans); done {
				return err
			}

			if len(plans) == 0 {
				fmt.Println("no stored plans")
				return nil
			}
			tw := tabwriter.NewWriter(os.Stdout, 2, 0, 3, ' ', 0)
			fmt.Fprintln(tw, "NAME\tITEMS\tDEPS\tSAVED")
			for _, info := range plans {
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\n",
					info.Name, info.Items, info.Edges,
					info.SavedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}
}
