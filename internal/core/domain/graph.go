// Package domain contains the core domain models and business logic for the target dependency graph.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

const (
	white = iota
	grey
	black
)

// Graph is the arena of all declared targets, keyed by identity.
// Edges are identity references, so the graph holds no pointers between targets.
type Graph struct {
	targets map[Identity]Target
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		targets: make(map[Identity]Target),
	}
}

// AddTarget adds a target to the graph.
// It returns an error if the name is invalid or a target with the same name already exists.
func (g *Graph) AddTarget(t *Target) error {
	if !t.Name.Valid() {
		return zerr.With(zerr.Wrap(ErrInvalidTargetName, "cannot add target"), "target", t.Name.String())
	}
	if _, exists := g.targets[t.Name]; exists {
		return zerr.With(zerr.Wrap(ErrTargetAlreadyExists, "cannot add target"), "target", t.Name.String())
	}
	g.targets[t.Name] = t.Clone()
	return nil
}

// GetTarget returns a copy of the target with the given identity.
func (g *Graph) GetTarget(id Identity) (Target, bool) {
	t, ok := g.targets[id]
	if !ok {
		return Target{}, false
	}
	return t.Clone(), true
}

// TargetCount returns the number of targets in the graph.
func (g *Graph) TargetCount() int {
	return len(g.targets)
}

// Targets yields every target sorted by name.
func (g *Graph) Targets() iter.Seq[Target] {
	return func(yield func(Target) bool) {
		for _, id := range g.sortedIDs() {
			if !yield(g.targets[id].Clone()) {
				return
			}
		}
	}
}

// Roots returns the targets no other target depends on, sorted by name.
func (g *Graph) Roots() []Identity {
	referenced := make(map[Identity]bool, len(g.targets))
	for _, t := range g.targets {
		for _, dep := range t.Dependencies {
			referenced[dep] = true
		}
	}
	var roots []Identity
	for _, id := range g.sortedIDs() {
		if !referenced[id] {
			roots = append(roots, id)
		}
	}
	return roots
}

// Validate checks the subgraph reachable from root: every target is
// classifiable, every reference resolves, and there is no cycle.
func (g *Graph) Validate(root Identity) error {
	if _, ok := g.targets[root]; !ok {
		return targetNotFound(root)
	}
	v := &validator{graph: g, colour: make(map[Identity]int)}
	return v.visit(root)
}

// ValidateAll checks every target of the graph, including unreachable ones.
func (g *Graph) ValidateAll() error {
	v := &validator{graph: g, colour: make(map[Identity]int)}
	for _, id := range g.sortedIDs() {
		if v.colour[id] == white {
			if err := v.visit(id); err != nil {
				return err
			}
		}
	}
	return nil
}

// Walk yields the targets reachable from root in execution order:
// dependencies first, siblings in declared order, each target once.
// It assumes Validate(root) has returned nil.
func (g *Graph) Walk(root Identity) iter.Seq[Target] {
	return func(yield func(Target) bool) {
		seen := make(map[Identity]bool)
		var visit func(id Identity) bool
		visit = func(id Identity) bool {
			if seen[id] {
				return true
			}
			seen[id] = true
			t, ok := g.targets[id]
			if !ok {
				return true
			}
			for _, dep := range t.Dependencies {
				if !visit(dep) {
					return false
				}
			}
			return yield(t.Clone())
		}
		visit(root)
	}
}

func (g *Graph) sortedIDs() []Identity {
	ids := make([]Identity, 0, len(g.targets))
	for id := range g.targets {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b Identity) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids
}

type validator struct {
	graph  *Graph
	colour map[Identity]int
	path   []Identity
}

func (v *validator) visit(id Identity) error {
	v.colour[id] = grey
	v.path = append(v.path, id)

	t := v.graph.targets[id]
	if _, err := t.Kind(); err != nil {
		return err
	}

	for _, dep := range t.Dependencies {
		if _, ok := v.graph.targets[dep]; !ok {
			err := zerr.With(zerr.Wrap(ErrMissingDependency, "cannot resolve dependency"), "target", id.String())
			return zerr.With(err, "dependency", dep.String())
		}
		switch v.colour[dep] {
		case grey:
			return CycleError(v.path, dep)
		case white:
			if err := v.visit(dep); err != nil {
				return err
			}
		}
	}

	v.colour[id] = black
	v.path = v.path[:len(v.path)-1]
	return nil
}

// CycleError constructs an error with cycle path metadata.
// path is the chain of targets currently being visited and dep the target found on it again.
func CycleError(path []Identity, dep Identity) error {
	startIdx := slices.Index(path, dep)
	if startIdx < 0 {
		startIdx = 0
	}
	names := Strings(path[startIdx:])
	names = append(names, dep.String())
	err := zerr.With(zerr.Wrap(ErrCycleDetected, "invalid graph"), "target", dep.String())
	return zerr.With(err, "cycle", strings.Join(names, " -> "))
}

func targetNotFound(id Identity) error {
	return zerr.With(zerr.Wrap(ErrTargetNotFound, "unknown target"), "target", id.String())
}
