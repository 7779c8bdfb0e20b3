// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/loomplan/loom/cmd/loom/cli"
)

// flagsWithJSON returns a Flags factory for a subcommand whose only
// flag is --json.
func flagsWithJSON(name string, output *cli.JSONOutput) func() *pflag.FlagSet {
	return func() *pflag.FlagSet {
		flagSet := pflag.NewFlagSet(name, pflag.ContinueOnError)
		output.AddFlag(flagSet)
		return flagSet
	}
}

// singlePathArg extracts the one required file path argument.
func singlePathArg(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("plan file path required")
	}
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected argument: %s", args[1])
	}
	return args[0], nil
}
