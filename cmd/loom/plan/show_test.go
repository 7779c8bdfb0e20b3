// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package plan

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/loomplan/loom/lib/plangraph"
	"github.com/loomplan/loom/lib/schema/workitem"
	"github.com/loomplan/loom/lib/timeline"
)

func TestGraphDocumentCarriesAllAttributes(t *testing.T) {
	g := plangraph.New()

	start := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)
	tl := timeline.FromSpan(start, timeline.Span{Unit: timeline.Weeks, Count: 2})

	epic, err := workitem.Builder{}.WithID(uuid.New()).WithName("Checkout").
		WithOwner("noor").WithTimeline(tl).WithPoints(13).
		WithParticipants("mika", "aiden").BuildEpic()
	if err != nil {
		t.Fatal(err)
	}
	task, err := workitem.Builder{}.WithID(uuid.New()).WithName("Wire gateway").
		WithTimeline(tl).BuildTask()
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range []workitem.Item{epic, task} {
		if err := g.Insert(item); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	documents := graphDocument(g)
	if len(documents) != 2 {
		t.Fatalf("graphDocument returned %d documents, want 2", len(documents))
	}

	doc := documents[0]
	if doc.ID != epic.ID().String() {
		t.Errorf("ID = %q, want %q", doc.ID, epic.ID())
	}
	if doc.Kind != "epic" {
		t.Errorf("Kind = %q, want %q", doc.Kind, "epic")
	}
	if doc.Owner != "noor" {
		t.Errorf("Owner = %q, want %q", doc.Owner, "noor")
	}
	if doc.Timeline == nil {
		t.Fatal("Timeline is nil, want the epic's timeline")
	}
	if !doc.Timeline.Start.Equal(start) {
		t.Errorf("Timeline.Start = %v, want %v", doc.Timeline.Start, start)
	}
	if doc.Timeline.Span == nil || doc.Timeline.Span.Count != 2 || doc.Timeline.Span.Unit != timeline.Weeks {
		t.Errorf("Timeline.Span = %+v, want 2 weeks", doc.Timeline.Span)
	}
	if doc.Points == nil || *doc.Points != 13 {
		t.Errorf("Points = %v, want 13", doc.Points)
	}
	wantParticipants := []string{"aiden", "mika"}
	if len(doc.Participants) != 2 || doc.Participants[0] != wantParticipants[0] || doc.Participants[1] != wantParticipants[1] {
		t.Errorf("Participants = %v, want %v", doc.Participants, wantParticipants)
	}
}

func TestGraphDocumentEdges(t *testing.T) {
	g := plangraph.New()

	start := time.Date(2026, 4, 6, 9, 0, 0, 0, time.UTC)
	tl := timeline.FromSpan(start, timeline.Span{Unit: timeline.Days, Count: 5})

	story, err := workitem.Builder{}.WithID(uuid.New()).WithName("Pay by card").
		WithTimeline(tl).BuildUserStory()
	if err != nil {
		t.Fatal(err)
	}
	task, err := workitem.Builder{}.WithID(uuid.New()).WithName("Wire gateway").
		WithTimeline(tl).BuildTask()
	if err != nil {
		t.Fatal(err)
	}
	for _, item := range []workitem.Item{story, task} {
		if err := g.Insert(item); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	if err := g.Connect(story, task, workitem.Contains); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	documents := graphDocument(g)
	if len(documents[0].Dependencies) != 1 {
		t.Fatalf("story has %d dependencies, want 1", len(documents[0].Dependencies))
	}
	edge := documents[0].Dependencies[0]
	if edge.To != task.ID().String() {
		t.Errorf("edge.To = %q, want %q", edge.To, task.ID())
	}
	if edge.Type != "contains" {
		t.Errorf("edge.Type = %q, want %q", edge.Type, "contains")
	}
	if len(documents[1].Dependencies) != 0 {
		t.Errorf("task has %d dependencies, want 0", len(documents[1].Dependencies))
	}
	if documents[1].Timeline == nil {
		t.Error("task Timeline is nil, want the task's timeline")
	}
}
