// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package workitem

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/loomplan/loom/lib/timeline"
)

// Builder accumulates attributes for a work item and produces a
// finished variant with one of the Build methods. Each Build method
// validates that the attributes required by its variant are present
// and fails with an error naming the first missing one.
//
// The zero value is ready to use. With methods return a copy, so a
// partially-filled builder can be reused as a template:
//
//	base := workitem.Builder{}.WithOwner("@lead")
//	epic, err := base.WithID(id1).WithName("Checkout").WithTimeline(tl).BuildEpic()
type Builder struct {
	id           *uuid.UUID
	name         string
	link         string
	owner        string
	timeline     *timeline.Timeline
	points       *int
	participants []string
}

// WithID sets the caller-supplied identifier. Required by every Build
// method; the builder never generates identifiers.
func (b Builder) WithID(id uuid.UUID) Builder {
	b.id = &id
	return b
}

// WithName sets the display name. Required, non-empty.
func (b Builder) WithName(name string) Builder {
	b.name = name
	return b
}

// WithLink sets the optional reference URL.
func (b Builder) WithLink(link string) Builder {
	b.link = link
	return b
}

// WithOwner sets the optional owning principal.
func (b Builder) WithOwner(owner string) Builder {
	b.owner = owner
	return b
}

// WithTimeline sets the schedule attachment. Required for Epic,
// UserStory, and Task; optional for Project; rejected by BuildSpec.
func (b Builder) WithTimeline(tl timeline.Timeline) Builder {
	b.timeline = &tl
	return b
}

// WithPoints sets the optional estimation points.
func (b Builder) WithPoints(points int) Builder {
	b.points = &points
	return b
}

// WithParticipants sets the initial participant names. Only Project
// and Epic accept participants.
func (b Builder) WithParticipants(names ...string) Builder {
	b.participants = append([]string(nil), names...)
	return b
}

// common validates the attributes every variant requires and returns
// the shared header. variant names the variant under construction for
// error messages.
func (b Builder) common(variant Kind) (header, error) {
	if b.id == nil {
		return header{}, fmt.Errorf("building %s: id is required", variant)
	}
	if b.name == "" {
		return header{}, fmt.Errorf("building %s: name is required", variant)
	}
	return header{id: *b.id, name: b.name, link: b.link, owner: b.owner}, nil
}

// requireTimeline validates the timeline required by Epic, UserStory,
// and Task.
func (b Builder) requireTimeline(variant Kind) (timeline.Timeline, error) {
	if b.timeline == nil {
		return timeline.Timeline{}, fmt.Errorf("building %s: timeline is required", variant)
	}
	return *b.timeline, nil
}

// checkBuildPoints validates optional points for the variants that
// carry them.
func (b Builder) checkBuildPoints(variant Kind) (*int, error) {
	if b.points == nil {
		return nil, nil
	}
	if err := checkPoints(*b.points); err != nil {
		return nil, fmt.Errorf("building %s: %w", variant, err)
	}
	points := *b.points
	return &points, nil
}

// buildParticipants converts the accumulated participant names into a
// set.
func (b Builder) buildParticipants() participantSet {
	var set participantSet
	for _, name := range b.participants {
		set.add(name)
	}
	return set
}

// BuildSpec produces a Spec. Requires id and name; rejects attributes
// a spec cannot carry.
func (b Builder) BuildSpec() (*Spec, error) {
	h, err := b.common(KindSpec)
	if err != nil {
		return nil, err
	}
	if b.timeline != nil {
		return nil, fmt.Errorf("building spec: %w", unsupported(KindSpec, "timeline"))
	}
	if b.points != nil {
		return nil, fmt.Errorf("building spec: %w", unsupported(KindSpec, "points"))
	}
	if len(b.participants) > 0 {
		return nil, fmt.Errorf("building spec: %w", unsupported(KindSpec, "participants"))
	}
	return &Spec{header: h}, nil
}

// BuildProject produces a Project. Requires id and name; timeline,
// points-free, participants optional.
func (b Builder) BuildProject() (*Project, error) {
	h, err := b.common(KindProject)
	if err != nil {
		return nil, err
	}
	if b.points != nil {
		return nil, fmt.Errorf("building project: %w", unsupported(KindProject, "points"))
	}
	return &Project{
		header:         h,
		participantSet: b.buildParticipants(),
		timeline:       b.timeline,
	}, nil
}

// BuildEpic produces an Epic. Requires id, name, and timeline.
func (b Builder) BuildEpic() (*Epic, error) {
	h, err := b.common(KindEpic)
	if err != nil {
		return nil, err
	}
	tl, err := b.requireTimeline(KindEpic)
	if err != nil {
		return nil, err
	}
	points, err := b.checkBuildPoints(KindEpic)
	if err != nil {
		return nil, err
	}
	return &Epic{
		header:         h,
		participantSet: b.buildParticipants(),
		timeline:       tl,
		points:         points,
	}, nil
}

// BuildUserStory produces a UserStory. Requires id, name, and
// timeline; rejects participants.
func (b Builder) BuildUserStory() (*UserStory, error) {
	h, err := b.common(KindUserStory)
	if err != nil {
		return nil, err
	}
	tl, err := b.requireTimeline(KindUserStory)
	if err != nil {
		return nil, err
	}
	points, err := b.checkBuildPoints(KindUserStory)
	if err != nil {
		return nil, err
	}
	if len(b.participants) > 0 {
		return nil, fmt.Errorf("building user_story: %w", unsupported(KindUserStory, "participants"))
	}
	return &UserStory{header: h, timeline: tl, points: points}, nil
}

// BuildTask produces a Task. Requires id, name, and timeline; rejects
// participants.
func (b Builder) BuildTask() (*Task, error) {
	h, err := b.common(KindTask)
	if err != nil {
		return nil, err
	}
	tl, err := b.requireTimeline(KindTask)
	if err != nil {
		return nil, err
	}
	points, err := b.checkBuildPoints(KindTask)
	if err != nil {
		return nil, err
	}
	if len(b.participants) > 0 {
		return nil, fmt.Errorf("building task: %w", unsupported(KindTask, "participants"))
	}
	return &Task{header: h, timeline: tl, points: points}, nil
}

// Build produces a variant selected by kind. This is the dynamic
// entry point used by loaders that read the kind from data; code that
// knows the variant statically should call the typed Build method.
func (b Builder) Build(kind Kind) (Item, error) {
	switch kind {
	case KindSpec:
		return b.BuildSpec()
	case KindProject:
		return b.BuildProject()
	case KindEpic:
		return b.BuildEpic()
	case KindUserStory:
		return b.BuildUserStory()
	case KindTask:
		return b.BuildTask()
	default:
		return nil, fmt.Errorf("unknown work-item kind %q", kind)
	}
}
