// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package workitem

import (
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/loomplan/loom/lib/timeline"
)

// ErrUnsupportedAttribute is returned by variant-gated mutators when
// the receiving variant does not carry the attribute. Check with
// errors.Is.
var ErrUnsupportedAttribute = errors.New("attribute not supported by this work-item kind")

// ErrParticipantNotFound is returned by RemoveParticipant when the
// named participant is not in the item's participant set (or the set
// is empty). Check with errors.Is.
var ErrParticipantNotFound = errors.New("participant not found")

// Item is a work item in the planning hierarchy. It is a closed sum:
// the only implementations are [Spec], [Project], [Epic], [UserStory],
// and [Task] (the unexported marker method prevents outside
// implementations, so a switch over the five pointer types is
// exhaustive).
//
// Accessors for optional attributes return a second boolean reporting
// presence. Mutators for attributes every variant carries (name, link,
// owner) never fail; mutators for variant-specific attributes
// (timeline, participants, points) fail with
// [ErrUnsupportedAttribute] on variants that lack them.
//
// The identifier is fixed at construction. There is deliberately no
// SetID: a graph indexes items by identifier, and a mutable identifier
// would let the index and the item silently disagree.
type Item interface {
	// ID returns the caller-supplied unique identifier.
	ID() uuid.UUID
	// Name returns the display name. Never empty for a built item.
	Name() string
	// Kind reports which variant this item is.
	Kind() Kind

	// Link returns the reference URL, if set.
	Link() (string, bool)
	// Owner returns the owning principal, if set.
	Owner() (string, bool)
	// Timeline returns the schedule attachment, if the variant
	// carries one and it is set.
	Timeline() (timeline.Timeline, bool)
	// Points returns the estimation points, if the variant carries
	// them and they are set.
	Points() (int, bool)
	// Participants returns the participant set in sorted order, or
	// nil when the variant has no participants or the set is empty.
	Participants() []string

	// SetName replaces the display name.
	SetName(name string)
	// SetLink sets or replaces the reference URL.
	SetLink(link string)
	// SetOwner sets or replaces the owning principal.
	SetOwner(owner string)
	// SetTimeline sets or replaces the schedule attachment. Fails
	// with ErrUnsupportedAttribute on Spec, which has no timeline.
	SetTimeline(tl timeline.Timeline) error
	// AddParticipant adds a name to the participant set. Fails with
	// ErrUnsupportedAttribute on variants without participants.
	AddParticipant(name string) error
	// RemoveParticipant removes a name from the participant set.
	// Fails with ErrUnsupportedAttribute on variants without
	// participants and with ErrParticipantNotFound when the name is
	// not present.
	RemoveParticipant(name string) error
	// SetPoints sets or replaces the estimation points. Fails with
	// ErrUnsupportedAttribute on Spec and Project, and rejects
	// negative values.
	SetPoints(points int) error

	isItem()
}

// unsupported builds an ErrUnsupportedAttribute error naming the kind
// and the attribute for diagnostics.
func unsupported(kind Kind, attribute string) error {
	return fmt.Errorf("%w: %s has no %s", ErrUnsupportedAttribute, kind, attribute)
}

// header holds the attributes shared by every variant. Variants embed
// it by pointer receiver to pick up the total accessors and mutators.
type header struct {
	id    uuid.UUID
	name  string
	link  string
	owner string
}

func (h *header) ID() uuid.UUID { return h.id }

func (h *header) Name() string { return h.name }

func (h *header) SetName(name string) { h.name = name }

func (h *header) Link() (string, bool) { return h.link, h.link != "" }

func (h *header) SetLink(link string) { h.link = link }

func (h *header) Owner() (string, bool) { return h.owner, h.owner != "" }

func (h *header) SetOwner(owner string) { h.owner = owner }

// participantSet is the participant storage shared by Project and
// Epic. The map is allocated lazily on first add.
type participantSet struct {
	members map[string]struct{}
}

func (p *participantSet) add(name string) {
	if p.members == nil {
		p.members = make(map[string]struct{})
	}
	p.members[name] = struct{}{}
}

func (p *participantSet) remove(name string) error {
	if _, ok := p.members[name]; !ok {
		return fmt.Errorf("%w: %q", ErrParticipantNotFound, name)
	}
	delete(p.members, name)
	return nil
}

func (p *participantSet) sorted() []string {
	if len(p.members) == 0 {
		return nil
	}
	names := make([]string, 0, len(p.members))
	for name := range p.members {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// checkPoints validates a points value. Points are estimates, never
// negative.
func checkPoints(points int) error {
	if points < 0 {
		return fmt.Errorf("points must be >= 0, got %d", points)
	}
	return nil
}

// Spec is a top-level specification document. It carries only the
// shared attributes: no timeline, no points, no participants.
type Spec struct {
	header
}

func (s *Spec) Kind() Kind { return KindSpec }

func (s *Spec) Timeline() (timeline.Timeline, bool) { return timeline.Timeline{}, false }

func (s *Spec) SetTimeline(timeline.Timeline) error { return unsupported(KindSpec, "timeline") }

func (s *Spec) Points() (int, bool) { return 0, false }

func (s *Spec) SetPoints(int) error { return unsupported(KindSpec, "points") }

func (s *Spec) Participants() []string { return nil }

func (s *Spec) AddParticipant(string) error { return unsupported(KindSpec, "participants") }

func (s *Spec) RemoveParticipant(string) error { return unsupported(KindSpec, "participants") }

func (s *Spec) isItem() {}

// Project is a project under a spec. Its timeline is optional.
type Project struct {
	header
	participantSet
	timeline *timeline.Timeline
}

func (p *Project) Kind() Kind { return KindProject }

func (p *Project) Timeline() (timeline.Timeline, bool) {
	if p.timeline == nil {
		return timeline.Timeline{}, false
	}
	return *p.timeline, true
}

func (p *Project) SetTimeline(tl timeline.Timeline) error {
	p.timeline = &tl
	return nil
}

func (p *Project) Points() (int, bool) { return 0, false }

func (p *Project) SetPoints(int) error { return unsupported(KindProject, "points") }

func (p *Project) Participants() []string { return p.sorted() }

func (p *Project) AddParticipant(name string) error {
	p.add(name)
	return nil
}

func (p *Project) RemoveParticipant(name string) error { return p.remove(name) }

func (p *Project) isItem() {}

// Epic is a large deliverable within a project. Its timeline is
// required at construction.
type Epic struct {
	header
	participantSet
	timeline timeline.Timeline
	points   *int
}

func (e *Epic) Kind() Kind { return KindEpic }

func (e *Epic) Timeline() (timeline.Timeline, bool) { return e.timeline, true }

func (e *Epic) SetTimeline(tl timeline.Timeline) error {
	e.timeline = tl
	return nil
}

func (e *Epic) Points() (int, bool) {
	if e.points == nil {
		return 0, false
	}
	return *e.points, true
}

func (e *Epic) SetPoints(points int) error {
	if err := checkPoints(points); err != nil {
		return err
	}
	e.points = &points
	return nil
}

func (e *Epic) Participants() []string { return e.sorted() }

func (e *Epic) AddParticipant(name string) error {
	e.add(name)
	return nil
}

func (e *Epic) RemoveParticipant(name string) error { return e.remove(name) }

func (e *Epic) isItem() {}

// UserStory is a user-facing slice of an epic. Its timeline is
// required at construction. User stories have no participant set —
// one story, one owner.
type UserStory struct {
	header
	timeline timeline.Timeline
	points   *int
}

func (u *UserStory) Kind() Kind { return KindUserStory }

func (u *UserStory) Timeline() (timeline.Timeline, bool) { return u.timeline, true }

func (u *UserStory) SetTimeline(tl timeline.Timeline) error {
	u.timeline = tl
	return nil
}

func (u *UserStory) Points() (int, bool) {
	if u.points == nil {
		return 0, false
	}
	return *u.points, true
}

func (u *UserStory) SetPoints(points int) error {
	if err := checkPoints(points); err != nil {
		return err
	}
	u.points = &points
	return nil
}

func (u *UserStory) Participants() []string { return nil }

func (u *UserStory) AddParticipant(string) error {
	return unsupported(KindUserStory, "participants")
}

func (u *UserStory) RemoveParticipant(string) error {
	return unsupported(KindUserStory, "participants")
}

func (u *UserStory) isItem() {}

// Task is the smallest unit of tracked work. Its timeline is required
// at construction.
type Task struct {
	header
	timeline timeline.Timeline
	points   *int
}

func (t *Task) Kind() Kind { return KindTask }

func (t *Task) Timeline() (timeline.Timeline, bool) { return t.timeline, true }

func (t *Task) SetTimeline(tl timeline.Timeline) error {
	t.timeline = tl
	return nil
}

func (t *Task) Points() (int, bool) {
	if t.points == nil {
		return 0, false
	}
	return *t.points, true
}

func (t *Task) SetPoints(points int) error {
	if err := checkPoints(points); err != nil {
		return err
	}
	t.points = &points
	return nil
}

func (t *Task) Participants() []string { return nil }

func (t *Task) AddParticipant(string) error { return unsupported(KindTask, "participants") }

func (t *Task) RemoveParticipant(string) error { return unsupported(KindTask, "participants") }

func (t *Task) isItem() {}
