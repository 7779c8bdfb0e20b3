// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package planui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/loomplan/loom/lib/schema/workitem"
)

// Theme defines the color palette for plan rendering. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Kind colors, one per work-item variant.
	KindSpec      lipgloss.Color
	KindProject   lipgloss.Color
	KindEpic      lipgloss.Color
	KindUserStory lipgloss.Color
	KindTask      lipgloss.Color

	// Dependency colors, one per dependency type.
	DepContains  lipgloss.Color
	DepBlocks    lipgloss.Color
	DepResources lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
}

// KindColor returns the color for a work-item kind. Unknown kinds
// return NormalText.
func (theme Theme) KindColor(kind workitem.Kind) lipgloss.Color {
	switch kind {
	case workitem.KindSpec:
		return theme.KindSpec
	case workitem.KindProject:
		return theme.KindProject
	case workitem.KindEpic:
		return theme.KindEpic
	case workitem.KindUserStory:
		return theme.KindUserStory
	case workitem.KindTask:
		return theme.KindTask
	default:
		return theme.NormalText
	}
}

// DependencyColor returns the color for a dependency type. Unknown
// types return FaintText.
func (theme Theme) DependencyColor(dep workitem.DependencyType) lipgloss.Color {
	switch dep {
	case workitem.Contains:
		return theme.DepContains
	case workitem.Blocks:
		return theme.DepBlocks
	case workitem.ResourcesRequiredFor:
		return theme.DepResources
	default:
		return theme.FaintText
	}
}

// DefaultTheme is the built-in dark-terminal color scheme. Designed
// for 256-color terminals with a dark background.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	KindSpec:      lipgloss.Color("141"), // light purple
	KindProject:   lipgloss.Color("75"),  // blue
	KindEpic:      lipgloss.Color("173"), // terracotta
	KindUserStory: lipgloss.Color("114"), // green
	KindTask:      lipgloss.Color("220"), // yellow/amber

	DepContains:  lipgloss.Color("245"), // gray; structural, not urgent
	DepBlocks:    lipgloss.Color("196"), // red
	DepResources: lipgloss.Color("208"), // orange

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
}
