// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/loomplan/loom/cmd/loom/cli"
	"github.com/loomplan/loom/lib/planfile"
	"github.com/loomplan/loom/lib/snapshot"
)

// SnapshotCommand returns the "snapshot" subcommand that writes a
// validated plan to a binary snapshot file.
func SnapshotCommand() *cli.Command {
	var params struct {
		Out string
	}

	return &cli.Command{
		Name:    "snapshot",
		Summary: "Write a plan to a binary snapshot",
		Description: `Load a plan file and write the validated graph to a compact
binary snapshot: a deterministic CBOR payload, zstd-compressed, with a
keyed BLAKE3 digest so corruption is detected on restore.

The default output path is the plan file path with its extension
replaced by ".snap".`,
		Usage: "loom plan snapshot <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Snapshot next to the plan file",
				Command:     "loom plan snapshot release.yaml",
			},
			{
				Description: "Snapshot to an explicit path",
				Command:     "loom plan snapshot release.yaml --out /srv/plans/release.snap",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("snapshot", pflag.ContinueOnError)
			flagSet.StringVar(&params.Out, "out", "", "output path (default: plan path with .snap extension)")
			return flagSet
		},
		Run: func(args []string) error {
			path, err := singlePathArg(args)
			if err != nil {
				return err
			}
			loaded, err := planfile.Load(path)
			if err != nil {
				return fmt.Errorf("load plan: %w", err)
			}

			out := params.Out
			if out == "" {
				out = snapshotPath(path)
			}
			if err := snapshot.Save(out, loaded.Graph); err != nil {
				return fmt.Errorf("write snapshot: %w", err)
			}

			stats := loaded.Graph.Stats()
			fmt.Printf("wrote %s: %d items, %d dependencies\n",
				out, stats.Items, stats.Dependencies)
			return nil
		},
	}
}

// snapshotPath replaces the plan file extension with ".snap".
func snapshotPath(path string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndex(path, "/") {
		return path[:i] + ".snap"
	}
	return path + ".snap"
}
