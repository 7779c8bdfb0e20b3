// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"
	"os"

	"github.com/loomplan/loom/cmd/loom/cli"
	"github.com/loomplan/loom/lib/planfile"
)

// CheckCommand returns the "check" subcommand that validates a plan
// file without producing output beyond a pass/fail verdict.
func CheckCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
	}

	return &cli.Command{
		Name:    "check",
		Summary: "Validate a plan file",
		Description: `Load a plan file and report whether it is valid.

Validation covers the full declaration: YAML shape (unknown fields are
rejected), item attributes per kind, dependency compatibility, and
acyclicity. Exits 0 for a valid plan and 1 for an invalid one, so the
command works as a pre-commit or CI gate.`,
		Usage: "loom plan check <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Validate a plan file",
				Command:     "loom plan check release.yaml",
			},
			{
				Description: "Machine-readable verdict for CI",
				Command:     "loom plan check release.yaml --json",
			},
		},
		Flags: flagsWithJSON("check", &params.JSONOutput),
		Run: func(args []string) error {
			path, err := singlePathArg(args)
			if err != nil {
				return err
			}

			type verdict struct {
				Valid bool   `json:"valid"`
				Plan  string `json:"plan,omitempty"`
				Items int    `json:"items"`
				Edges int    `json:"edges"`
				Error string `json:"error,omitempty"`
			}

			loaded, loadErr := planfile.Load(path)
			if loadErr != nil {
				result := verdict{Valid: false, Error: loadErr.Error()}
				if done, err := params.EmitJSON(result); done {
					if err != nil {
						return err
					}
					return &cli.ExitError{Code: 1}
				}
				fmt.Fprintf(os.Stderr, "plan invalid: %v\n", loadErr)
				return &cli.ExitError{Code: 1}
			}

			stats := loaded.Graph.Stats()
			result := verdict{
				Valid: true,
				Plan:  loaded.Name,
				Items: stats.Items,
				Edges: stats.Dependencies,
			}
			if done, err := params.EmitJSON(result); done {
				return err
			}
			fmt.Printf("plan ok: %q, %d items, %d dependencies\n",
				loaded.Name, stats.Items, stats.Dependencies)
			return nil
		},
	}
}
