// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func TestCommand_Execute_DispatchesToSubcommand(t *testing.T) {
	var called string

	root := &Command{
		Name: "loom",
		Subcommands: []*Command{
			{
				Name: "version",
				Run: func(args []string) error {
					called = "version"
					return nil
				},
			},
			{
				Name: "plan",
				Run: func(args []string) error {
					called = "plan"
					return nil
				},
			},
		},
	}

	if err := root.Execute([]string{"plan"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "plan" {
		t.Errorf("dispatched to %q, want %q", called, "plan")
	}
}

func TestCommand_Execute_NestedSubcommands(t *testing.T) {
	var called string
	var receivedArgs []string

	root := &Command{
		Name: "loom",
		Subcommands: []*Command{
			{
				Name: "plan",
				Subcommands: []*Command{
					{
						Name: "check",
						Run: func(args []string) error {
							called = "plan check"
							receivedArgs = args
							return nil
						},
					},
				},
			},
		},
	}

	if err := root.Execute([]string{"plan", "check", "release.yaml"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if called != "plan check" {
		t.Errorf("dispatched to %q, want %q", called, "plan check")
	}
	if len(receivedArgs) != 1 || receivedArgs[0] != "release.yaml" {
		t.Errorf("args = %v, want [release.yaml]", receivedArgs)
	}
}

func TestCommand_Execute_FlagParsing(t *testing.T) {
	var snapshotPath string
	var target string

	command := &Command{
		Name: "check",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("check", pflag.ContinueOnError)
			flagSet.StringVar(&snapshotPath, "snapshot", "plan.snap", "snapshot path")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 0 {
				target = args[0]
			}
			return nil
		},
	}

	if err := command.Execute([]string{"--snapshot", "release.snap", "release.yaml"}); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if snapshotPath != "release.snap" {
		t.Errorf("snapshotPath = %q, want %q", snapshotPath, "release.snap")
	}
	if target != "release.yaml" {
		t.Errorf("target = %q, want %q", target, "release.yaml")
	}
}

func TestCommand_Execute_UnknownFlagSuggestion(t *testing.T) {
	command := &Command{
		Name: "show",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flagSet.Bool("stats", false, "include summary counts")
			flagSet.String("snapshot", "plan.snap", "snapshot path")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--stast"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "did you mean --stats") {
		t.Errorf("error = %q, want suggestion for '--stats'", errStr)
	}
	// Suggestion should be on the same line as the error, not buried.
	if !strings.Contains(errStr, "stast") {
		t.Errorf("error = %q, should mention the bad flag", errStr)
	}
	// Should include a pointer to --help.
	if !strings.Contains(errStr, "--help") {
		t.Errorf("error = %q, should point to --help", errStr)
	}
}

func TestCommand_Execute_UnknownFlagNoSuggestion(t *testing.T) {
	command := &Command{
		Name: "show",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flagSet.Bool("stats", false, "include summary counts")
			return flagSet
		},
		Run: func(args []string) error { return nil },
	}

	err := command.Execute([]string{"--zzzzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown flag")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not suggest for distant flag", err.Error())
	}
	if !strings.Contains(err.Error(), "--help") {
		t.Errorf("error = %q, should point to --help", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandSuggestion(t *testing.T) {
	root := &Command{
		Name: "loom",
		Subcommands: []*Command{
			{Name: "plan"},
			{Name: "snapshot"},
			{Name: "version"},
		},
	}

	err := root.Execute([]string{"paln"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if !strings.Contains(err.Error(), "did you mean \"plan\"") {
		t.Errorf("error = %q, want suggestion for 'plan'", err.Error())
	}
}

func TestCommand_Execute_UnknownSubcommandNoSuggestion(t *testing.T) {
	root := &Command{
		Name: "loom",
		Subcommands: []*Command{
			{Name: "plan"},
			{Name: "version"},
		},
	}

	err := root.Execute([]string{"zzzzzzz"})
	if err == nil {
		t.Fatal("Execute() = nil, want error for unknown subcommand")
	}
	if strings.Contains(err.Error(), "did you mean") {
		t.Errorf("error = %q, should not contain suggestion for distant input", err.Error())
	}
}

func TestCommand_Execute_HelpFlag(t *testing.T) {
	for _, helpArg := range []string{"-h", "--help", "help"} {
		t.Run(helpArg, func(t *testing.T) {
			root := &Command{
				Name:    "loom",
				Summary: "Work-item planning graphs",
				Subcommands: []*Command{
					{Name: "plan", Summary: "Plan file operations"},
				},
			}

			err := root.Execute([]string{helpArg})
			if err != nil {
				t.Errorf("Execute(%q) error: %v", helpArg, err)
			}
		})
	}
}

func TestCommand_Execute_NoArgsShowsHelp(t *testing.T) {
	root := &Command{
		Name: "loom",
		Subcommands: []*Command{
			{Name: "plan", Summary: "Plan file operations"},
		},
	}

	err := root.Execute([]string{})
	if err == nil {
		t.Fatal("Execute() = nil, want error for missing subcommand")
	}
	if !strings.Contains(err.Error(), "subcommand required") {
		t.Errorf("error = %q, want 'subcommand required'", err.Error())
	}
}

func TestCommand_PrintHelp(t *testing.T) {
	command := &Command{
		Name:        "loom",
		Description: "Work-item dependency planning.",
		Subcommands: []*Command{
			{Name: "plan", Summary: "Validate and inspect plan files"},
			{Name: "store", Summary: "Persist plans to a local database"},
			{Name: "version", Summary: "Print version information"},
		},
		Examples: []Example{
			{
				Description: "Validate a plan file",
				Command:     "loom plan check release.yaml",
			},
			{
				Description: "Render a stored plan",
				Command:     "loom store show --db plans.db release",
			},
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	// Verify structural elements are present.
	for _, want := range []string{
		"Work-item dependency planning.",
		"Usage:",
		"loom <command> [flags]",
		"Commands:",
		"plan",
		"Validate and inspect plan files",
		"store",
		"Persist plans to a local database",
		"Examples:",
		"loom plan check release.yaml",
		"loom store show",
		"Run 'loom <command> --help'",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_PrintHelp_WithFlags(t *testing.T) {
	command := &Command{
		Name:    "show",
		Summary: "Render a plan file",
		Usage:   "loom plan show <file> [flags]",
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			flagSet.String("snapshot", "plan.snap", "snapshot to render instead of a plan file")
			flagSet.Bool("stats", false, "append summary counts")
			return flagSet
		},
	}

	var buffer bytes.Buffer
	command.PrintHelp(&buffer)
	output := buffer.String()

	for _, want := range []string{
		"loom plan show <file> [flags]",
		"Flags:",
		"snapshot",
		"stats",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("help output missing %q\n\nFull output:\n%s", want, output)
		}
	}
}

func TestCommand_FullName(t *testing.T) {
	root := &Command{Name: "loom"}
	plan := &Command{Name: "plan", parent: root}
	check := &Command{Name: "check", parent: plan}

	if got := root.fullName(); got != "loom" {
		t.Errorf("root.fullName() = %q, want %q", got, "loom")
	}
	if got := plan.fullName(); got != "loom plan" {
		t.Errorf("plan.fullName() = %q, want %q", got, "loom plan")
	}
	if got := check.fullName(); got != "loom plan check" {
		t.Errorf("check.fullName() = %q, want %q", got, "loom plan check")
	}
}
