// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/pflag"

	"github.com/loomplan/loom/cmd/loom/cli"
	"github.com/loomplan/loom/lib/planfile"
	"github.com/loomplan/loom/lib/plangraph"
	"github.com/loomplan/loom/lib/planui"
)

// DepsCommand returns the "deps" subcommand that lists the
// dependencies of one item in a plan file.
func DepsCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
		Direct bool
	}

	return &cli.Command{
		Name:    "deps",
		Summary: "List the dependencies of an item",
		Description: `Load a plan file and list everything the named item depends
on. The item is addressed by its file key or by its identifier.

By default the full transitive closure is listed: every item reachable
by following outgoing dependency edges. With --direct, only the item's
own outgoing edges are listed with their dependency types.`,
		Usage: "loom plan deps <file> <item> [flags]",
		Examples: []cli.Example{
			{
				Description: "Everything the rollout epic depends on",
				Command:     "loom plan deps release.yaml rollout",
			},
			{
				Description: "Only the direct edges",
				Command:     "loom plan deps release.yaml rollout --direct",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("deps", pflag.ContinueOnError)
			params.AddFlag(flagSet)
			flagSet.BoolVar(&params.Direct, "direct", false, "list direct edges only")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) < 2 {
				return fmt.Errorf("plan file path and item key required")
			}
			if len(args) > 2 {
				return fmt.Errorf("unexpected argument: %s", args[2])
			}
			path, key := args[0], args[1]

			loaded, err := planfile.Load(path)
			if err != nil {
				return fmt.Errorf("load plan: %w", err)
			}

			id, err := resolveItem(loaded, key)
			if err != nil {
				return err
			}
			item, _ := loaded.Graph.Lookup(id)
			renderer := planui.NewRenderer(planui.DefaultTheme)

			if params.Direct {
				deps, _ := loaded.Graph.Dependencies(id)
				if done, err := params.EmitJSON(directDocument(loaded, deps)); done {
					return err
				}
				fmt.Print(renderer.ItemLine(item))
				for i, dep := range deps {
					target, _ := loaded.Graph.Lookup(dep.TargetID)
					fmt.Print(renderer.DependencyLine(dep, target, i == len(deps)-1))
				}
				return nil
			}

			reached := loaded.Graph.Deps(id)
			if done, err := params.EmitJSON(closureDocument(loaded, reached)); done {
				return err
			}
			fmt.Print(renderer.ItemLine(item))
			for _, targetID := range reached {
				target, _ := loaded.Graph.Lookup(targetID)
				fmt.Printf("  %s\n", target.Name())
			}
			return nil
		},
	}
}

// resolveItem maps a file key or identifier string to an item id.
func resolveItem(loaded *planfile.Plan, key string) (uuid.UUID, error) {
	if id, ok := loaded.IDs[key]; ok {
		return id, nil
	}
	id, err := uuid.Parse(key)
	if err != nil {
		return uuid.Nil, fmt.Errorf("no item %q in plan %q", key, loaded.Name)
	}
	if _, ok := loaded.Graph.Lookup(id); !ok {
		return uuid.Nil, fmt.Errorf("no item %q in plan %q", key, loaded.Name)
	}
	return id, nil
}

type depDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	Type string `json:"type,omitempty"`
}

func directDocument(loaded *planfile.Plan, deps []plangraph.Dependency) []depDocument {
	documents := make([]depDocument, 0, len(deps))
	for _, dep := range deps {
		target, _ := loaded.Graph.Lookup(dep.TargetID)
		documents = append(documents, depDocument{
			ID:   target.ID().String(),
			Name: target.Name(),
			Kind: string(target.Kind()),
			Type: string(dep.Type),
		})
	}
	return documents
}

func closureDocument(loaded *planfile.Plan, ids []uuid.UUID) []depDocument {
	documents := make([]depDocument, 0, len(ids))
	for _, id := range ids {
		target, _ := loaded.Graph.Lookup(id)
		documents = append(documents, depDocument{
			ID:   target.ID().String(),
			Name: target.Name(),
			Kind: string(target.Kind()),
		})
	}
	return documents
}
