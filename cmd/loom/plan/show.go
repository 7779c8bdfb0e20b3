// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/loomplan/loom/cmd/loom/cli"
	"github.com/loomplan/loom/lib/planfile"
	"github.com/loomplan/loom/lib/plangraph"
	"github.com/loomplan/loom/lib/planui"
	"github.com/loomplan/loom/lib/schema/workitem"
	"github.com/loomplan/loom/lib/timeline"
)

// ShowCommand returns the "show" subcommand that renders a plan file
// as a styled item listing with dependency fans.
func ShowCommand() *cli.Command {
	var params struct {
		cli.JSONOutput
		Stats bool
	}

	return &cli.Command{
		Name:    "show",
		Summary: "Render a plan file",
		Description: `Load a plan file and render every item with its outgoing
dependencies. Items are listed in declaration order (sorted by file
key) with kind badges, points, owners, timelines, and participants.`,
		Usage: "loom plan show <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Render a plan",
				Command:     "loom plan show release.yaml",
			},
			{
				Description: "Render with summary counts appended",
				Command:     "loom plan show release.yaml --stats",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("show", pflag.ContinueOnError)
			params.AddFlag(flagSet)
			flagSet.BoolVar(&params.Stats, "stats", false, "append summary counts")
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

			if done, err := params.EmitJSON(graphDocument(loaded.Graph)); done {
				return err
			}

			renderer := planui.NewRenderer(planui.DefaultTheme)
			fmt.Print(renderer.Graph(loaded.Graph))
			if params.Stats {
				fmt.Print(renderer.Stats(loaded.Graph.Stats()))
			}
			return nil
		},
	}
}

// itemDocument is the JSON shape of one item and its outgoing edges.
type itemDocument struct {
	ID           string             `json:"id"`
	Kind         string             `json:"kind"`
	Name         string             `json:"name"`
	Link         string             `json:"link,omitempty"`
	Owner        string             `json:"owner,omitempty"`
	Timeline     *timeline.Timeline `json:"timeline,omitempty"`
	Points       *int               `json:"points,omitempty"`
	Participants []string           `json:"participants,omitempty"`
	Dependencies []edgeDocument     `json:"dependencies,omitempty"`
}

type edgeDocument struct {
	To   string `json:"to"`
	Type string `json:"type"`
}

// graphDocument flattens a graph into JSON-ready item documents in
// insertion order.
func graphDocument(graph *plangraph.Graph) []itemDocument {
	items := graph.Items()
	documents := make([]itemDocument, 0, len(items))
	for _, item := range items {
		documents = append(documents, describeItem(graph, item))
	}
	return documents
}

func describeItem(graph *plangraph.Graph, item workitem.Item) itemDocument {
	doc := itemDocument{
		ID:           item.ID().String(),
		Kind:         string(item.Kind()),
		Name:         item.Name(),
		Participants: item.Participants(),
	}
	if link, ok := item.Link(); ok {
		doc.Link = link
	}
	if owner, ok := item.Owner(); ok {
		doc.Owner = owner
	}
	if tl, ok := item.Timeline(); ok {
		doc.Timeline = &tl
	}
	if points, ok := item.Points(); ok {
		doc.Points = &points
	}
	deps, _ := graph.Dependencies(item.ID())
	for _, dep := range deps {
		doc.Dependencies = append(doc.Dependencies, edgeDocument{
			To:   dep.TargetID.String(),
			Type: string(dep.Type),
		})
	}
	return doc
}
