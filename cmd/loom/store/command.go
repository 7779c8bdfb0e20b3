// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

// Package store implements the "loom store" subcommand group: named
// plans persisted in a local SQLite database.
package store

import (
	"github.com/spf13/pflag"

	"github.com/loomplan/loom/cmd/loom/cli"
)

// defaultDatabase is where plans are kept unless --db says otherwise.
const defaultDatabase = "loom.db"

// Command returns the "store" subcommand group.
func Command() *cli.Command {
	return &cli.Command{
		Name:    "store",
		Summary: "Persist plans to a local database",
		Description: `Keep named plans in a local SQLite database.

Plans are saved under the name declared in the plan file (or an
explicit --name) and can be listed, rendered, and deleted. Saving a
plan under an existing name replaces the stored copy.`,
		Subcommands: []*cli.Command{
			SaveCommand(),
			ListCommand(),
			ShowCommand(),
			DeleteCommand(),
		},
	}
}

// addDatabaseFlag registers the shared --db flag.
func addDatabaseFlag(flagSet *pflag.FlagSet, path *string) {
	flagSet.StringVar(path, "db", defaultDatabase, "path to the plan database")
}
