// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package workitem

import "fmt"

// DependencyType labels a directed edge between two work items.
type DependencyType string

const (
	// Contains is the hierarchy edge: the source breaks down into
	// the target (a project contains its epics).
	Contains DependencyType = "contains"

	// Blocks is the ordering edge: the target cannot proceed until
	// the source is done.
	Blocks DependencyType = "blocks"

	// ResourcesRequiredFor is the contention edge: the source's
	// people or assets are needed by the target.
	ResourcesRequiredFor DependencyType = "resources_required_for"
)

// ParseDependencyType parses a dependency type from its string
// representation.
func ParseDependencyType(name string) (DependencyType, error) {
	switch DependencyType(name) {
	case Contains, Blocks, ResourcesRequiredFor:
		return DependencyType(name), nil
	default:
		return "", fmt.Errorf("unknown dependency type %q", name)
	}
}

// kindPair is an ordered (from, to) pair of item kinds, the key of the
// compatibility table.
type kindPair struct {
	from Kind
	to   Kind
}

// allowedDependencies is the compatibility policy: for each dependency
// type, the set of ordered kind pairs the relationship is valid
// between. Everything absent from the table is invalid.
//
// The table is intentionally asymmetric. Contains edges follow the
// breakdown hierarchy strictly downward (plus same-level spec/project
// containment); Blocks and ResourcesRequiredFor connect peers, with
// two deliberate exceptions: a user story may block an epic, and a
// task's resources may be required by a user story.
var allowedDependencies = map[DependencyType]map[kindPair]bool{
	Contains: {
		{KindSpec, KindSpec}:         true,
		{KindSpec, KindProject}:      true,
		{KindProject, KindProject}:   true,
		{KindProject, KindEpic}:      true,
		{KindProject, KindUserStory}: true,
		{KindEpic, KindUserStory}:    true,
		{KindUserStory, KindTask}:    true,
	},
	Blocks: {
		{KindProject, KindProject}:     true,
		{KindEpic, KindEpic}:           true,
		{KindUserStory, KindUserStory}: true,
		{KindTask, KindTask}:           true,
		{KindUserStory, KindEpic}:      true,
	},
	ResourcesRequiredFor: {
		{KindProject, KindProject}:     true,
		{KindEpic, KindEpic}:           true,
		{KindUserStory, KindUserStory}: true,
		{KindTask, KindTask}:           true,
		{KindTask, KindUserStory}:      true,
	},
}

// AllowedDependency reports whether a dependency of the given type
// from an item of kind from to an item of kind to is semantically
// valid. Pure table lookup; no state.
func AllowedDependency(from, to Kind, dep DependencyType) bool {
	return allowedDependencies[dep][kindPair{from: from, to: to}]
}
