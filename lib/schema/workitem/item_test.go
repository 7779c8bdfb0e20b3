// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package workitem

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/loomplan/loom/lib/timeline"
)

func testTimeline() timeline.Timeline {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return timeline.FromSpan(start, timeline.Span{Unit: timeline.Days, Count: 3})
}

func newSpec(t *testing.T) *Spec {
	t.Helper()
	s, err := Builder{}.WithID(uuid.New()).WithName("spec").BuildSpec()
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func newProject(t *testing.T) *Project {
	t.Helper()
	p, err := Builder{}.WithID(uuid.New()).WithName("project").BuildProject()
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func newEpic(t *testing.T) *Epic {
	t.Helper()
	e, err := Builder{}.WithID(uuid.New()).WithName("epic").
		WithTimeline(testTimeline()).BuildEpic()
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func newUserStory(t *testing.T) *UserStory {
	t.Helper()
	u, err := Builder{}.WithID(uuid.New()).WithName("story").
		WithTimeline(testTimeline()).BuildUserStory()
	if err != nil {
		t.Fatal(err)
	}
	return u
}

func newTask(t *testing.T) *Task {
	t.Helper()
	task, err := Builder{}.WithID(uuid.New()).WithName("task").
		WithTimeline(testTimeline()).BuildTask()
	if err != nil {
		t.Fatal(err)
	}
	return task
}

func TestSharedAttributes(t *testing.T) {
	items := []Item{newSpec(t), newProject(t), newEpic(t), newUserStory(t), newTask(t)}
	for _, item := range items {
		t.Run(string(item.Kind()), func(t *testing.T) {
			if item.ID() == uuid.Nil {
				t.Fatal("ID is nil")
			}

			item.SetName("renamed")
			if got := item.Name(); got != "renamed" {
				t.Fatalf("Name() = %q, want %q", got, "renamed")
			}

			if _, ok := item.Link(); ok {
				t.Fatal("Link() reported present before being set")
			}
			item.SetLink("https://example.com/LOOM-42")
			if link, ok := item.Link(); !ok || link != "https://example.com/LOOM-42" {
				t.Fatalf("Link() = %q, %v", link, ok)
			}

			if _, ok := item.Owner(); ok {
				t.Fatal("Owner() reported present before being set")
			}
			item.SetOwner("mika")
			if owner, ok := item.Owner(); !ok || owner != "mika" {
				t.Fatalf("Owner() = %q, %v", owner, ok)
			}
		})
	}
}

func TestSpecGatesEverything(t *testing.T) {
	s := newSpec(t)

	if err := s.SetTimeline(testTimeline()); !errors.Is(err, ErrUnsupportedAttribute) {
		t.Fatalf("SetTimeline error = %v, want ErrUnsupportedAttribute", err)
	}
	if _, ok := s.Timeline(); ok {
		t.Fatal("Timeline() reported present on a spec")
	}
	if err := s.SetPoints(3); !errors.Is(err, ErrUnsupportedAttribute) {
		t.Fatalf("SetPoints error = %v, want ErrUnsupportedAttribute", err)
	}
	if err := s.AddParticipant("mika"); !errors.Is(err, ErrUnsupportedAttribute) {
		t.Fatalf("AddParticipant error = %v, want ErrUnsupportedAttribute", err)
	}
	if err := s.RemoveParticipant("mika"); !errors.Is(err, ErrUnsupportedAttribute) {
		t.Fatalf("RemoveParticipant error = %v, want ErrUnsupportedAttribute", err)
	}
	if got := s.Participants(); got != nil {
		t.Fatalf("Participants() = %v, want nil", got)
	}
}

func TestProjectTimelineOptional(t *testing.T) {
	p := newProject(t)
	if _, ok := p.Timeline(); ok {
		t.Fatal("Timeline() reported present before being set")
	}
	tl := testTimeline()
	if err := p.SetTimeline(tl); err != nil {
		t.Fatalf("SetTimeline: %v", err)
	}
	got, ok := p.Timeline()
	if !ok || !got.Start.Equal(tl.Start) {
		t.Fatalf("Timeline() = %v, %v", got, ok)
	}
}

func TestProjectRejectsPoints(t *testing.T) {
	p := newProject(t)
	if err := p.SetPoints(5); !errors.Is(err, ErrUnsupportedAttribute) {
		t.Fatalf("SetPoints error = %v, want ErrUnsupportedAttribute", err)
	}
	if _, ok := p.Points(); ok {
		t.Fatal("Points() reported present on a project")
	}
}

func TestParticipants(t *testing.T) {
	for _, item := range []Item{newProject(t), newEpic(t)} {
		t.Run(string(item.Kind()), func(t *testing.T) {
			if got := item.Participants(); got != nil {
				t.Fatalf("Participants() = %v, want nil", got)
			}
			for _, name := range []string{"noor", "mika", "aiden", "mika"} {
				if err := item.AddParticipant(name); err != nil {
					t.Fatalf("AddParticipant(%q): %v", name, err)
				}
			}
			want := []string{"aiden", "mika", "noor"}
			if got := item.Participants(); !reflect.DeepEqual(got, want) {
				t.Fatalf("Participants() = %v, want %v", got, want)
			}

			if err := item.RemoveParticipant("mika"); err != nil {
				t.Fatalf("RemoveParticipant: %v", err)
			}
			want = []string{"aiden", "noor"}
			if got := item.Participants(); !reflect.DeepEqual(got, want) {
				t.Fatalf("Participants() after remove = %v, want %v", got, want)
			}

			if err := item.RemoveParticipant("ghost"); !errors.Is(err, ErrParticipantNotFound) {
				t.Fatalf("RemoveParticipant(ghost) error = %v, want ErrParticipantNotFound", err)
			}
		})
	}
}

func TestLeafVariantsRejectParticipants(t *testing.T) {
	for _, item := range []Item{newUserStory(t), newTask(t)} {
		t.Run(string(item.Kind()), func(t *testing.T) {
			if err := item.AddParticipant("mika"); !errors.Is(err, ErrUnsupportedAttribute) {
				t.Fatalf("AddParticipant error = %v, want ErrUnsupportedAttribute", err)
			}
			if err := item.RemoveParticipant("mika"); !errors.Is(err, ErrUnsupportedAttribute) {
				t.Fatalf("RemoveParticipant error = %v, want ErrUnsupportedAttribute", err)
			}
		})
	}
}

func TestPoints(t *testing.T) {
	for _, item := range []Item{newEpic(t), newUserStory(t), newTask(t)} {
		t.Run(string(item.Kind()), func(t *testing.T) {
			if _, ok := item.Points(); ok {
				t.Fatal("Points() reported present before being set")
			}
			if err := item.SetPoints(8); err != nil {
				t.Fatalf("SetPoints: %v", err)
			}
			points, ok := item.Points()
			if !ok || points != 8 {
				t.Fatalf("Points() = %d, %v", points, ok)
			}
			if err := item.SetPoints(-1); err == nil {
				t.Fatal("SetPoints(-1) succeeded, want error")
			}
			if points, _ := item.Points(); points != 8 {
				t.Fatalf("Points() changed after rejected set: %d", points)
			}
		})
	}
}

func TestTimelineRequiredVariants(t *testing.T) {
	for _, item := range []Item{newEpic(t), newUserStory(t), newTask(t)} {
		t.Run(string(item.Kind()), func(t *testing.T) {
			if _, ok := item.Timeline(); !ok {
				t.Fatal("Timeline() reported absent on a variant that requires one")
			}
			replacement := timeline.FromSpan(
				time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
				timeline.Span{Unit: timeline.Weeks, Count: 2},
			)
			if err := item.SetTimeline(replacement); err != nil {
				t.Fatalf("SetTimeline: %v", err)
			}
			got, _ := item.Timeline()
			if !got.Start.Equal(replacement.Start) {
				t.Fatalf("Timeline().Start = %v, want %v", got.Start, replacement.Start)
			}
		})
	}
}

func TestKinds(t *testing.T) {
	cases := []struct {
		item Item
		want Kind
	}{
		{newSpec(t), KindSpec},
		{newProject(t), KindProject},
		{newEpic(t), KindEpic},
		{newUserStory(t), KindUserStory},
		{newTask(t), KindTask},
	}
	for _, c := range cases {
		if got := c.item.Kind(); got != c.want {
			t.Fatalf("Kind() = %q, want %q", got, c.want)
		}
	}
}

func TestParseKind(t *testing.T) {
	for _, kind := range []Kind{KindSpec, KindProject, KindEpic, KindUserStory, KindTask} {
		got, err := ParseKind(string(kind))
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", kind, err)
		}
		if got != kind {
			t.Fatalf("ParseKind(%q) = %q", kind, got)
		}
	}
	if _, err := ParseKind("milestone"); err == nil {
		t.Fatal("ParseKind accepted an unknown kind")
	}
}
