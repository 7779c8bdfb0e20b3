// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package planui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/loomplan/loom/lib/plangraph"
	"github.com/loomplan/loom/lib/schema/workitem"
	"github.com/loomplan/loom/lib/timeline"
)

// Renderer produces styled terminal output for a plan graph.
type Renderer struct {
	theme Theme
}

// NewRenderer creates a renderer with the given theme.
func NewRenderer(theme Theme) Renderer {
	return Renderer{theme: theme}
}

// kindBadges maps each kind to its badge text. Short forms keep item
// lines aligned without a full column layout.
var kindBadges = map[workitem.Kind]string{
	workitem.KindSpec:      "spec ",
	workitem.KindProject:   "proj ",
	workitem.KindEpic:      "epic ",
	workitem.KindUserStory: "story",
	workitem.KindTask:      "task ",
}

// ItemLine renders a single work item as one line: kind badge, name,
// then whichever optional attributes the item carries.
func (r Renderer) ItemLine(item workitem.Item) string {
	badge := lipgloss.NewStyle().
		Foreground(r.theme.KindColor(item.Kind())).
		Bold(true).
		Render("[" + kindBadges[item.Kind()] + "]")

	name := lipgloss.NewStyle().
		Foreground(r.theme.NormalText).
		Render(item.Name())

	var parts []string
	parts = append(parts, badge, name)

	faint := lipgloss.NewStyle().Foreground(r.theme.FaintText)
	if points, ok := item.Points(); ok {
		parts = append(parts, faint.Render(fmt.Sprintf("%dpt", points)))
	}
	if owner, ok := item.Owner(); ok {
		parts = append(parts, faint.Render("@"+owner))
	}
	if tl, ok := item.Timeline(); ok {
		parts = append(parts, faint.Render(timelineSummary(tl)))
	}
	if participants := item.Participants(); len(participants) > 0 {
		parts = append(parts, faint.Render("+"+strings.Join(participants, ",")))
	}
	return strings.Join(parts, " ")
}

// DependencyLine renders one outgoing dependency as an indented fan
// segment under its source item. The last segment uses a corner
// character instead of a tee.
func (r Renderer) DependencyLine(dep plangraph.Dependency, target workitem.Item, last bool) string {
	connector := "├─"
	if last {
		connector = "└─"
	}

	arrow := lipgloss.NewStyle().
		Foreground(r.theme.DependencyColor(dep.Type)).
		Render(string(dep.Type) + " →")

	targetName := lipgloss.NewStyle().
		Foreground(r.theme.KindColor(target.Kind())).
		Render(target.Name())

	faint := lipgloss.NewStyle().Foreground(r.theme.BorderColor)
	return "  " + faint.Render(connector) + " " + arrow + " " + targetName
}

// Graph renders the whole plan: every item in insertion order, each
// followed by its outgoing dependency fan.
func (r Renderer) Graph(graph *plangraph.Graph) string {
	var builder strings.Builder
	for _, item := range graph.Items() {
		builder.WriteString(r.ItemLine(item))
		builder.WriteByte('\n')

		deps, _ := graph.Dependencies(item.ID())
		for i, dep := range deps {
			target, ok := graph.Lookup(dep.TargetID)
			if !ok {
				continue
			}
			builder.WriteString(r.DependencyLine(dep, target, i == len(deps)-1))
			builder.WriteByte('\n')
		}
	}
	return builder.String()
}

// Stats renders the graph's summary counts as a small block: item
// counts by kind, then dependency counts by type.
func (r Renderer) Stats(stats plangraph.Stats) string {
	header := lipgloss.NewStyle().
		Foreground(r.theme.HeaderForeground).
		Bold(true)
	faint := lipgloss.NewStyle().Foreground(r.theme.FaintText)

	var builder strings.Builder
	builder.WriteString(header.Render(fmt.Sprintf("%d items", stats.Items)))
	builder.WriteByte('\n')
	for _, kind := range []workitem.Kind{
		workitem.KindSpec, workitem.KindProject, workitem.KindEpic,
		workitem.KindUserStory, workitem.KindTask,
	} {
		count := stats.ByKind[kind]
		if count == 0 {
			continue
		}
		builder.WriteString(fmt.Sprintf("  %s %s\n",
			lipgloss.NewStyle().Foreground(r.theme.KindColor(kind)).Render(string(kind)),
			faint.Render(fmt.Sprintf("%d", count))))
	}

	builder.WriteString(header.Render(fmt.Sprintf("%d dependencies", stats.Dependencies)))
	builder.WriteByte('\n')
	for _, dep := range []workitem.DependencyType{
		workitem.Contains, workitem.Blocks, workitem.ResourcesRequiredFor,
	} {
		count := stats.ByType[dep]
		if count == 0 {
			continue
		}
		builder.WriteString(fmt.Sprintf("  %s %s\n",
			lipgloss.NewStyle().Foreground(r.theme.DependencyColor(dep)).Render(string(dep)),
			faint.Render(fmt.Sprintf("%d", count))))
	}
	return builder.String()
}

// timelineSummary returns the compact form of a timeline: the span if
// one is recorded, otherwise the classified distance from start to
// end, otherwise just the start date.
func timelineSummary(tl timeline.Timeline) string {
	start := tl.Start.Format("2006-01-02")
	switch {
	case tl.Span != nil:
		return start + " " + tl.Span.String()
	case tl.End != nil:
		return start + " " + timeline.Classify(tl.End.Sub(tl.Start)).String()
	default:
		return start
	}
}
