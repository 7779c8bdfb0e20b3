// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package planfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/loomplan/loom/lib/plangraph"
	"github.com/loomplan/loom/lib/schema/workitem"
	"github.com/loomplan/loom/lib/timeline"
)

// Document is the YAML shape of a plan file.
type Document struct {
	// Plan carries plan-level metadata.
	Plan Meta `yaml:"plan"`

	// Items declares work items keyed by a short local name. The key
	// exists only within the file; dependencies reference it.
	Items map[string]ItemEntry `yaml:"items"`

	// Dependencies declares edges between item keys.
	Dependencies []DependencyEntry `yaml:"dependencies"`
}

// Meta is plan-level metadata.
type Meta struct {
	// Name identifies the plan. Required. The plan store uses it as
	// the storage key.
	Name string `yaml:"name"`

	// Description is free-form text for humans.
	Description string `yaml:"description,omitempty"`
}

// ItemEntry declares one work item.
type ItemEntry struct {
	// Kind selects the work-item variant: spec, project, epic,
	// user_story, or task. Required.
	Kind string `yaml:"kind"`

	// Name is the display name. Required.
	Name string `yaml:"name"`

	// ID pins the item's id. Optional; omitted ids are generated.
	ID string `yaml:"id,omitempty"`

	Link  string `yaml:"link,omitempty"`
	Owner string `yaml:"owner,omitempty"`

	// Timeline is required for epic, user_story, and task, optional
	// for project, and rejected for spec.
	Timeline *TimelineEntry `yaml:"timeline,omitempty"`

	// Points is an effort estimate. Only epic, user_story, and task
	// accept it.
	Points *int `yaml:"points,omitempty"`

	// Participants lists people working the item. Only project and
	// epic accept it.
	Participants []string `yaml:"participants,omitempty"`
}

// TimelineEntry declares a timeline as a start plus exactly one of an
// end instant or a span.
type TimelineEntry struct {
	Start time.Time      `yaml:"start"`
	End   *time.Time     `yaml:"end,omitempty"`
	Span  *timeline.Span `yaml:"span,omitempty"`
}

// DependencyEntry declares one edge between item keys.
type DependencyEntry struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
	Type string `yaml:"type"`
}

// Plan is the loaded result: the validated graph plus the key-to-id
// mapping so callers can resolve file keys.
type Plan struct {
	Name        string
	Description string
	Graph       *plangraph.Graph

	// IDs maps each file key to the id of the item built from it.
	IDs map[string]uuid.UUID
}

// Load reads and builds a plan from the file at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading plan file: %w", err)
	}
	plan, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return plan, nil
}

// Parse builds a plan from YAML bytes. Every item and dependency is
// replayed through the graph's own validation.
func Parse(data []byte) (*Plan, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	// Reject unknown fields so typos surface as errors instead of
	// silently dropped attributes.
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("plan file is empty")
		}
		return nil, fmt.Errorf("parsing plan file: %w", err)
	}
	return build(&doc)
}

func build(doc *Document) (*Plan, error) {
	if doc.Plan.Name == "" {
		return nil, fmt.Errorf("plan.name is required")
	}
	if len(doc.Items) == 0 {
		return nil, fmt.Errorf("plan %q declares no items", doc.Plan.Name)
	}

	plan := &Plan{
		Name:        doc.Plan.Name,
		Description: doc.Plan.Description,
		Graph:       plangraph.New(),
		IDs:         make(map[string]uuid.UUID, len(doc.Items)),
	}

	// Insert in sorted key order so generated graphs are stable
	// across loads of the same file.
	items := make(map[string]workitem.Item, len(doc.Items))
	for _, key := range sortedKeys(doc.Items) {
		item, err := buildItem(key, doc.Items[key])
		if err != nil {
			return nil, err
		}
		if err := plan.Graph.Insert(item); err != nil {
			return nil, fmt.Errorf("item %q: %w", key, err)
		}
		items[key] = item
		plan.IDs[key] = item.ID()
	}

	for i, entry := range doc.Dependencies {
		from, ok := items[entry.From]
		if !ok {
			return nil, fmt.Errorf("dependency %d: unknown item key %q", i, entry.From)
		}
		to, ok := items[entry.To]
		if !ok {
			return nil, fmt.Errorf("dependency %d: unknown item key %q", i, entry.To)
		}
		depType, err := workitem.ParseDependencyType(entry.Type)
		if err != nil {
			return nil, fmt.Errorf("dependency %d (%s -> %s): %w", i, entry.From, entry.To, err)
		}
		if err := plan.Graph.Connect(from, to, depType); err != nil {
			return nil, fmt.Errorf("dependency %d (%s -> %s): %w", i, entry.From, entry.To, err)
		}
	}
	return plan, nil
}

func buildItem(key string, entry ItemEntry) (workitem.Item, error) {
	kind, err := workitem.ParseKind(entry.Kind)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", key, err)
	}

	id := uuid.New()
	if entry.ID != "" {
		id, err = uuid.Parse(entry.ID)
		if err != nil {
			return nil, fmt.Errorf("item %q: parsing id: %w", key, err)
		}
	}

	builder := workitem.Builder{}.WithID(id).WithName(entry.Name)
	if entry.Link != "" {
		builder = builder.WithLink(entry.Link)
	}
	if entry.Owner != "" {
		builder = builder.WithOwner(entry.Owner)
	}
	if entry.Timeline != nil {
		tl, err := entry.Timeline.resolve()
		if err != nil {
			return nil, fmt.Errorf("item %q: timeline: %w", key, err)
		}
		builder = builder.WithTimeline(tl)
	}
	if entry.Points != nil {
		builder = builder.WithPoints(*entry.Points)
	}
	if len(entry.Participants) > 0 {
		builder = builder.WithParticipants(entry.Participants...)
	}

	item, err := builder.Build(kind)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", key, err)
	}
	return item, nil
}

// resolve turns a file timeline entry into a timeline value,
// enforcing the start plus exactly-one-of end/span shape.
func (e *TimelineEntry) resolve() (timeline.Timeline, error) {
	if e.Start.IsZero() {
		return timeline.Timeline{}, fmt.Errorf("start is required")
	}
	switch {
	case e.End != nil && e.Span != nil:
		return timeline.Timeline{}, fmt.Errorf("end and span are mutually exclusive")
	case e.End != nil:
		if !e.End.After(e.Start) {
			return timeline.Timeline{}, fmt.Errorf("end %s is not after start %s", e.End, e.Start)
		}
		return timeline.FromRange(e.Start, *e.End), nil
	case e.Span != nil:
		if e.Span.Count <= 0 {
			return timeline.Timeline{}, fmt.Errorf("span count must be positive, got %d", e.Span.Count)
		}
		if _, err := timeline.ParseUnit(string(e.Span.Unit)); err != nil {
			return timeline.Timeline{}, err
		}
		return timeline.FromSpan(e.Start, *e.Span), nil
	default:
		return timeline.Timeline{}, fmt.Errorf("one of end or span is required")
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
