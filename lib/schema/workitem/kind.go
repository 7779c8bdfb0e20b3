// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package workitem

import "fmt"

// Kind identifies a work-item variant. The set is closed: the five
// constants below are the only values, and every Item reports exactly
// one of them.
type Kind string

const (
	// KindSpec is a top-level specification document.
	KindSpec Kind = "spec"
	// KindProject is a project under a spec.
	KindProject Kind = "project"
	// KindEpic is a large deliverable within a project.
	KindEpic Kind = "epic"
	// KindUserStory is a user-facing slice of an epic.
	KindUserStory Kind = "user_story"
	// KindTask is the smallest unit of tracked work.
	KindTask Kind = "task"
)

// ParseKind parses a kind from its string representation.
func ParseKind(name string) (Kind, error) {
	switch Kind(name) {
	case KindSpec, KindProject, KindEpic, KindUserStory, KindTask:
		return Kind(name), nil
	default:
		return "", fmt.Errorf("unknown work-item kind %q", name)
	}
}
