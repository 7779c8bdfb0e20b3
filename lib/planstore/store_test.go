// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package planstore_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/loomplan/loom/lib/clock"
	"github.com/loomplan/loom/lib/plangraph"
	"github.com/loomplan/loom/lib/planstore"
	"github.com/loomplan/loom/lib/schema/workitem"
	"github.com/loomplan/loom/lib/timeline"
)

func openTestStore(t *testing.T, fakeClock clock.Clock) *planstore.Store {
	t.Helper()
	store, err := planstore.Open(planstore.StoreConfig{
		Path:  filepath.Join(t.TempDir(), "plans.db"),
		Clock: fakeClock,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("Close: %v", err)
		}
	})
	return store
}

func buildGraph(t *testing.T) *plangraph.Graph {
	t.Helper()
	g := plangraph.New()

	start := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	tl := timeline.FromSpan(start, timeline.Span{Unit: timeline.Days, Count: 10})

	project, err := workitem.Builder{}.WithID(uuid.New()).WithName("Atlas").
		WithOwner("noor").WithParticipants("mika", "aiden").BuildProject()
	if err != nil {
		t.Fatal(err)
	}
	epic, err := workitem.Builder{}.WithID(uuid.New()).WithName("Checkout").
		WithLink("https://example.com/LOOM-7").WithTimeline(tl).WithPoints(13).BuildEpic()
	if err != nil {
		t.Fatal(err)
	}
	task, err := workitem.Builder{}.WithID(uuid.New()).WithName("Wire gateway").
		WithTimeline(tl).BuildTask()
	if err != nil {
		t.Fatal(err)
	}

	for _, item := range []workitem.Item{project, epic, task} {
		if err := g.Insert(item); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.Connect(project, epic, workitem.Contains); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := openTestStore(t, nil)
	ctx := context.Background()
	original := buildGraph(t)

	if err := store.SavePlan(ctx, "release-q3", "Q3 work", original); err != nil {
		t.Fatalf("SavePlan: %v", err)
	}

	restored, err := store.LoadPlan(ctx, "release-q3")
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}

	if restored.Len() != original.Len() {
		t.Fatalf("Len() = %d, want %d", restored.Len(), original.Len())
	}
	for _, wantItem := range original.Items() {
		gotItem, ok := restored.Lookup(wantItem.ID())
		if !ok {
			t.Fatalf("restored plan is missing item %q", wantItem.Name())
		}
		if gotItem.Kind() != wantItem.Kind() || gotItem.Name() != wantItem.Name() {
			t.Fatalf("item %q: kind/name mismatch", wantItem.Name())
		}
		gotLink, _ := gotItem.Link()
		wantLink, _ := wantItem.Link()
		if gotLink != wantLink {
			t.Fatalf("item %q: link = %q, want %q", wantItem.Name(), gotLink, wantLink)
		}
		gotPoints, _ := gotItem.Points()
		wantPoints, _ := wantItem.Points()
		if gotPoints != wantPoints {
			t.Fatalf("item %q: points = %d, want %d", wantItem.Name(), gotPoints, wantPoints)
		}
		gotTl, gotOK := gotItem.Timeline()
		wantTl, wantOK := wantItem.Timeline()
		if gotOK != wantOK {
			t.Fatalf("item %q: timeline presence mismatch", wantItem.Name())
		}
		if wantOK && !gotTl.Start.Equal(wantTl.Start) {
			t.Fatalf("item %q: timeline start = %v, want %v", wantItem.Name(), gotTl.Start, wantTl.Start)
		}
		if !reflect.DeepEqual(gotItem.Participants(), wantItem.Participants()) {
			t.Fatalf("item %q: participants mismatch", wantItem.Name())
		}

		gotDeps, _ := restored.Dependencies(wantItem.ID())
		wantDeps, _ := original.Dependencies(wantItem.ID())
		if !reflect.DeepEqual(gotDeps, wantDeps) {
			t.Fatalf("item %q: dependencies = %v, want %v", wantItem.Name(), gotDeps, wantDeps)
		}
	}
}

func TestSaveReplacesExisting(t *testing.T) {
	store := openTestStore(t, nil)
	ctx := context.Background()

	if err := store.SavePlan(ctx, "plan", "first", buildGraph(t)); err != nil {
		t.Fatal(err)
	}

	replacement := plangraph.New()
	only, err := workitem.Builder{}.WithID(uuid.New()).WithName("Only").BuildProject()
	if err != nil {
		t.Fatal(err)
	}
	if err := replacement.Insert(only); err != nil {
		t.Fatal(err)
	}
	if err := store.SavePlan(ctx, "plan", "second", replacement); err != nil {
		t.Fatalf("SavePlan replace: %v", err)
	}

	restored, err := store.LoadPlan(ctx, "plan")
	if err != nil {
		t.Fatalf("LoadPlan: %v", err)
	}
	if restored.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", restored.Len())
	}

	infos, err := store.ListPlans(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].Description != "second" {
		t.Fatalf("ListPlans = %+v", infos)
	}
}

func TestLoadMissingPlan(t *testing.T) {
	store := openTestStore(t, nil)
	_, err := store.LoadPlan(context.Background(), "ghost")
	if !errors.Is(err, planstore.ErrPlanNotFound) {
		t.Fatalf("error = %v, want ErrPlanNotFound", err)
	}
}

func TestListPlans(t *testing.T) {
	saved := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	store := openTestStore(t, clock.Fake(saved))
	ctx := context.Background()

	if err := store.SavePlan(ctx, "beta", "", buildGraph(t)); err != nil {
		t.Fatal(err)
	}
	if err := store.SavePlan(ctx, "alpha", "first out", buildGraph(t)); err != nil {
		t.Fatal(err)
	}

	infos, err := store.ListPlans(ctx)
	if err != nil {
		t.Fatalf("ListPlans: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("len(infos) = %d, want 2", len(infos))
	}
	if infos[0].Name != "alpha" || infos[1].Name != "beta" {
		t.Fatalf("order = %q, %q; want alpha, beta", infos[0].Name, infos[1].Name)
	}
	if infos[0].Items != 3 || infos[0].Edges != 1 {
		t.Fatalf("alpha counts = %d items, %d edges", infos[0].Items, infos[0].Edges)
	}
	if !infos[0].SavedAt.Equal(saved) {
		t.Fatalf("SavedAt = %v, want %v", infos[0].SavedAt, saved)
	}
}

func TestListEmpty(t *testing.T) {
	store := openTestStore(t, nil)
	infos, err := store.ListPlans(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 0 {
		t.Fatalf("len(infos) = %d, want 0", len(infos))
	}
}

func TestDeletePlan(t *testing.T) {
	store := openTestStore(t, nil)
	ctx := context.Background()

	if err := store.SavePlan(ctx, "plan", "", buildGraph(t)); err != nil {
		t.Fatal(err)
	}
	if err := store.DeletePlan(ctx, "plan"); err != nil {
		t.Fatalf("DeletePlan: %v", err)
	}
	if _, err := store.LoadPlan(ctx, "plan"); !errors.Is(err, planstore.ErrPlanNotFound) {
		t.Fatalf("LoadPlan after delete: %v", err)
	}
	if err := store.DeletePlan(ctx, "plan"); !errors.Is(err, planstore.ErrPlanNotFound) {
		t.Fatalf("second DeletePlan: %v", err)
	}
}

func TestSaveEmptyName(t *testing.T) {
	store := openTestStore(t, nil)
	if err := store.SavePlan(context.Background(), "", "", buildGraph(t)); err == nil {
		t.Fatal("SavePlan accepted an empty name")
	}
}
