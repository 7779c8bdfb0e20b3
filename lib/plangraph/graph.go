// Copyright 2026 The Loom Authors
// SPDX-License-Identifier: Apache-2.0

package plangraph

import (
	"bytes"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/loomplan/loom/lib/schema/workitem"
)

// ErrDuplicateID is returned by Insert when an item with the same
// identifier is already in the graph. Check with errors.Is.
var ErrDuplicateID = errors.New("item with this id already in graph")

// ErrUnknownItem is returned by Connect when an endpoint identifier
// has not been inserted. Check with errors.Is.
var ErrUnknownItem = errors.New("item not in graph")

// ErrInvalidDependency is returned by Connect when the compatibility
// policy forbids the (source kind, target kind, dependency type)
// triple. Check with errors.Is.
var ErrInvalidDependency = errors.New("dependency not allowed between these item kinds")

// ErrCycle is returned by Connect when the candidate edge would close
// a directed cycle. The edge has been rolled back by the time the
// error is returned. Check with errors.Is.
var ErrCycle = errors.New("dependency would create a cycle")

// Dependency is one outgoing edge of an item: the identifier of the
// target and the relationship type.
type Dependency struct {
	TargetID uuid.UUID
	Type     workitem.DependencyType
}

// edge is the internal adjacency entry. Targets are arena positions,
// not identifiers, so edge traversal never touches the index map.
type edge struct {
	to  int
	dep workitem.DependencyType
}

// Stats holds aggregate counts over a graph.
type Stats struct {
	Items        int                             `json:"items"`
	ByKind       map[workitem.Kind]int           `json:"by_kind"`
	Dependencies int                             `json:"dependencies"`
	ByType       map[workitem.DependencyType]int `json:"by_type"`
}

// Graph is a mutable collection of work items and typed dependency
// edges that is acyclic between public calls. Construct with [New].
// Not safe for concurrent use.
//
// The graph owns its items: Insert takes the caller's item (a pointer
// variant) into an internal arena and Lookup returns that same item
// for in-place attribute mutation. Identifiers are immutable on
// [workitem.Item], so the identifier→position index can never go
// stale.
type Graph struct {
	items     []workitem.Item
	adjacency [][]edge
	index     map[uuid.UUID]int
}

// New returns an empty graph ready for use.
func New() *Graph {
	return &Graph{index: make(map[uuid.UUID]int)}
}

// Len returns the number of items in the graph.
func (g *Graph) Len() int {
	return len(g.items)
}

// Insert adds an item to the graph. Fails with [ErrDuplicateID] if an
// item with the same identifier was already inserted; the graph is
// unchanged on failure. O(1) amortized.
func (g *Graph) Insert(item workitem.Item) error {
	id := item.ID()
	if _, exists := g.index[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	g.index[id] = len(g.items)
	g.items = append(g.items, item)
	g.adjacency = append(g.adjacency, nil)
	return nil
}

// Connect creates a directed dependency edge of the given type from
// one item to another. Checks run in a fixed order:
//
//  1. Compatibility: the (from kind, to kind, dep) triple must be in
//     the policy table, otherwise [ErrInvalidDependency]. This check
//     uses the passed items directly, so an incompatible pair is
//     reported as such even when an endpoint was never inserted.
//  2. Existence: both identifiers must be indexed, otherwise
//     [ErrUnknownItem].
//  3. Acyclicity: the edge is added tentatively and the whole graph
//     is scanned for a directed cycle. On detection the tentative
//     edge is removed again and the call fails with [ErrCycle].
//
// On any failure the graph is left exactly as before the call. A
// successful call commits the edge. Parallel edges between the same
// ordered pair (same or different type) are permitted as long as each
// passes all three checks.
func (g *Graph) Connect(from, to workitem.Item, dep workitem.DependencyType) error {
	if !workitem.AllowedDependency(from.Kind(), to.Kind(), dep) {
		return fmt.Errorf("%w: %s %q cannot be %q for %s %q",
			ErrInvalidDependency, from.Kind(), from.Name(), dep, to.Kind(), to.Name())
	}

	fromPos, ok := g.index[from.ID()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, from.ID())
	}
	toPos, ok := g.index[to.ID()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownItem, to.ID())
	}

	g.adjacency[fromPos] = append(g.adjacency[fromPos], edge{to: toPos, dep: dep})

	if g.hasCycle() {
		// Roll back the tentative edge — it is the last entry of
		// the source's adjacency list, so removal restores the
		// pre-call state exactly, including edge order.
		edges := g.adjacency[fromPos]
		g.adjacency[fromPos] = edges[:len(edges)-1]
		return fmt.Errorf("%w: %s %q -> %s %q",
			ErrCycle, from.Kind(), from.Name(), to.Kind(), to.Name())
	}

	return nil
}

// Lookup returns the item with the given identifier. The second
// return value is false if the identifier is not in the graph. O(1)
// average.
func (g *Graph) Lookup(id uuid.UUID) (workitem.Item, bool) {
	pos, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.items[pos], true
}

// Dependencies returns the outgoing edges of the item with the given
// identifier, in adjacency order. The second return value is false if
// the identifier is not in the graph; an item with no outgoing edges
// returns a nil slice and true.
func (g *Graph) Dependencies(id uuid.UUID) ([]Dependency, bool) {
	pos, ok := g.index[id]
	if !ok {
		return nil, false
	}
	edges := g.adjacency[pos]
	if len(edges) == 0 {
		return nil, true
	}
	deps := make([]Dependency, len(edges))
	for i, e := range edges {
		deps[i] = Dependency{TargetID: g.items[e.to].ID(), Type: e.dep}
	}
	return deps, true
}

// Deps returns the transitive closure of the item's dependencies —
// every identifier reachable by following outgoing edges, the
// starting item excluded. Returns nil if the identifier is not in the
// graph or has no dependencies. The result is sorted for stable
// output.
func (g *Graph) Deps(id uuid.UUID) []uuid.UUID {
	start, ok := g.index[id]
	if !ok {
		return nil
	}

	visited := map[int]struct{}{start: {}}
	queue := []int{start}
	var reached []uuid.UUID
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, e := range g.adjacency[current] {
			if _, seen := visited[e.to]; seen {
				continue
			}
			visited[e.to] = struct{}{}
			queue = append(queue, e.to)
			reached = append(reached, g.items[e.to].ID())
		}
	}

	slices.SortFunc(reached, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return reached
}

// Dependents returns the identifiers of items with a direct edge to
// the given item, sorted for stable output. Returns nil if the
// identifier is not in the graph or nothing depends on it. O(V+E) —
// the graph keeps no reverse index.
func (g *Graph) Dependents(id uuid.UUID) []uuid.UUID {
	target, ok := g.index[id]
	if !ok {
		return nil
	}

	var sources []uuid.UUID
	for pos, edges := range g.adjacency {
		for _, e := range edges {
			if e.to == target {
				sources = append(sources, g.items[pos].ID())
				break
			}
		}
	}

	slices.SortFunc(sources, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})
	return sources
}

// Items returns all items in insertion order. The slice is a copy;
// the items are the graph's own (shared) values.
func (g *Graph) Items() []workitem.Item {
	return slices.Clone(g.items)
}

// Stats returns aggregate counts by item kind and dependency type.
func (g *Graph) Stats() Stats {
	stats := Stats{
		Items:  len(g.items),
		ByKind: make(map[workitem.Kind]int),
		ByType: make(map[workitem.DependencyType]int),
	}
	for _, item := range g.items {
		stats.ByKind[item.Kind()]++
	}
	for _, edges := range g.adjacency {
		stats.Dependencies += len(edges)
		for _, e := range edges {
			stats.ByType[e.dep]++
		}
	}
	return stats
}

// hasCycle scans the entire graph for a directed cycle using
// three-color depth-first search. White nodes are unvisited, gray
// nodes are on the current recursion stack, black nodes are fully
// explored. An edge into a gray node closes a cycle. O(V+E).
//
// Connect calls this after every tentative edge insertion. An
// incremental check (reachability from the new edge's target back to
// its source) would be cheaper, but plan graphs are human-authored
// and small, and the full scan doubles as a standing audit of the
// acyclicity invariant.
func (g *Graph) hasCycle() bool {
	const (
		white = iota
		gray
		black
	)
	colors := make([]int, len(g.items))

	var visit func(pos int) bool
	visit = func(pos int) bool {
		colors[pos] = gray
		for _, e := range g.adjacency[pos] {
			switch colors[e.to] {
			case gray:
				return true
			case white:
				if visit(e.to) {
					return true
				}
			}
		}
		colors[pos] = black
		return false
	}

	for pos := range g.items {
		if colors[pos] == white && visit(pos) {
			return true
		}
	}
	return false
}
