// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package timeline

import (
	"fmt"
	"time"
)

// Unit is the granularity of a coarse duration classification.
type Unit string

const (
	// Hours is used for spans up to one day.
	Hours Unit = "hours"
	// Days is used for spans longer than a day, up to one week.
	Days Unit = "days"
	// Weeks is used for spans longer than one week.
	Weeks Unit = "weeks"
)

// ParseUnit parses a unit from its string representation.
func ParseUnit(name string) (Unit, error) {
	switch Unit(name) {
	case Hours, Days, Weeks:
		return Unit(name), nil
	default:
		return "", fmt.Errorf("unknown timeline unit %q", name)
	}
}

// Span is a coarse duration: a count of hours, days, or weeks. Spans
// are produced by [Classify], which always rounds away from zero, so a
// 25-hour interval classifies as 2 days and an 8-day interval as 2
// weeks. The count is negative when the classified interval was
// negative (end before start).
type Span struct {
	Unit  Unit  `json:"unit" yaml:"unit"`
	Count int64 `json:"count" yaml:"count"`
}

// Classify converts an exact duration into a coarse span. The unit is
// chosen by magnitude: more than a week classifies as weeks, more than
// a day as days, otherwise hours. Partial units round up (away from
// zero). A zero duration classifies as zero hours.
func Classify(d time.Duration) Span {
	if d == 0 {
		return Span{Unit: Hours}
	}

	seconds := int64(d / time.Second)
	sign := int64(1)
	if seconds < 0 {
		sign = -1
		seconds = -seconds
	}

	const (
		secondsPerHour = 3600
		secondsPerDay  = 24 * secondsPerHour
		secondsPerWeek = 7 * secondsPerDay
	)

	switch {
	case seconds > secondsPerWeek:
		return Span{Unit: Weeks, Count: sign * ceilDiv(seconds, secondsPerWeek)}
	case seconds > secondsPerDay:
		return Span{Unit: Days, Count: sign * ceilDiv(seconds, secondsPerDay)}
	default:
		return Span{Unit: Hours, Count: sign * ceilDiv(seconds, secondsPerHour)}
	}
}

// ceilDiv divides numerator by denominator, rounding up. Both
// arguments must be non-negative.
func ceilDiv(numerator, denominator int64) int64 {
	quotient := numerator / denominator
	if numerator%denominator != 0 {
		quotient++
	}
	return quotient
}

// Duration returns the exact duration a span stands for: its count of
// whole hours, days, or weeks. Classification is lossy, so
// Classify(span.Duration()) == span holds, but the reverse does not.
func (s Span) Duration() time.Duration {
	switch s.Unit {
	case Days:
		return time.Duration(s.Count) * 24 * time.Hour
	case Weeks:
		return time.Duration(s.Count) * 7 * 24 * time.Hour
	default:
		return time.Duration(s.Count) * time.Hour
	}
}

// String returns a compact human-readable form, e.g. "3 days".
func (s Span) String() string {
	return fmt.Sprintf("%d %s", s.Count, s.Unit)
}

// Timeline is the schedule window attached to a work item. Start is
// always set; End and Span are set by both constructors but remain
// optional in the serialized form for items imported from sources
// that only record a start instant.
type Timeline struct {
	Start time.Time  `json:"start" yaml:"start"`
	End   *time.Time `json:"end,omitempty" yaml:"end,omitempty"`
	Span  *Span      `json:"span,omitempty" yaml:"span,omitempty"`
}

// FromRange builds a timeline from explicit start and end instants.
// The span is classified from the interval between them.
func FromRange(start, end time.Time) Timeline {
	span := Classify(end.Sub(start))
	return Timeline{Start: start, End: &end, Span: &span}
}

// FromSpan builds a timeline from a start instant and a coarse span.
// The end instant is derived by adding the span's exact duration to
// the start.
func FromSpan(start time.Time, span Span) Timeline {
	end := start.Add(span.Duration())
	return Timeline{Start: start, End: &end, Span: &span}
}
