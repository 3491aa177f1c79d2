package resolver

import (
	"slices"
	"strings"

	"go.trai.ch/topo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Order computes a linear build order using Kahn's algorithm: every
// component appears after everything it requires, and each name appears
// exactly once. The ready set is sorted name-ascending before every
// selection, so the same graph always yields the same order.
//
// If the algorithm stalls before emitting every component, the requirement
// graph contains a cycle and an error naming the unresolved components is
// returned. No partial order is ever returned.
func (g *Graph) Order() ([]string, error) {
	unresolved := g.unresolvedCounts()

	ready := make([]string, 0, len(unresolved))
	for name, count := range unresolved {
		if count == 0 {
			ready = append(ready, name)
		}
	}

	order := make([]string, 0, len(unresolved))
	for len(ready) > 0 {
		slices.Sort(ready)
		name := ready[0]
		ready = ready[1:]

		order = append(order, name)
		for _, dependent := range g.dependents[name] {
			unresolved[dependent]--
			if unresolved[dependent] == 0 {
				ready = append(ready, dependent)
			}
		}
	}

	if len(order) != len(unresolved) {
		return nil, cycleError(unresolved)
	}
	return order, nil
}

// Levels computes the parallel view of the same order: level 0 holds every
// component with no requirements, and level k holds the components whose
// last requirement is satisfied once levels below k are complete. Components
// within a level have no ordering constraint between each other. Each level
// is sorted name-ascending.
func (g *Graph) Levels() ([][]string, error) {
	unresolved := g.unresolvedCounts()

	current := make([]string, 0, len(unresolved))
	for name, count := range unresolved {
		if count == 0 {
			current = append(current, name)
		}
	}

	var levels [][]string
	emitted := 0
	for len(current) > 0 {
		slices.Sort(current)
		levels = append(levels, current)
		emitted += len(current)

		var next []string
		for _, name := range current {
			for _, dependent := range g.dependents[name] {
				unresolved[dependent]--
				if unresolved[dependent] == 0 {
					next = append(next, dependent)
				}
			}
		}
		current = next
	}

	if emitted != len(unresolved) {
		return nil, cycleError(unresolved)
	}
	return levels, nil
}

// unresolvedCounts seeds the Kahn bookkeeping: per component, the number of
// requirements not yet satisfied by an emitted component.
func (g *Graph) unresolvedCounts() map[string]int {
	counts := make(map[string]int, len(g.deps))
	for name, deps := range g.deps {
		counts[name] = len(deps)
	}
	return counts
}

// cycleError reports the components left unresolved after the algorithm
// stalled. Every component still carrying a nonzero count is either on a
// cycle or downstream of one.
func cycleError(unresolved map[string]int) error {
	members := make([]string, 0, len(unresolved))
	for name, count := range unresolved {
		if count > 0 {
			members = append(members, name)
		}
	}
	slices.Sort(members)
	return zerr.With(domain.ErrCircularDependency, "components", strings.Join(members, ", "))
}
