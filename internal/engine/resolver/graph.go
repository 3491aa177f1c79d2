// Package resolver turns a release manifest into a dependency graph and
// computes a deterministic, dependency-respecting build order from it.
package resolver

import (
	"go.trai.ch/topo/internal/core/domain"
	"go.trai.ch/zerr"
)

// Graph is the dependency graph derived from a manifest. Nodes are component
// names; an edge from A to B means A requires B, so B must be built first.
// Names act as stable indices back into the manifest, which keeps the graph
// free of pointer cycles regardless of what the requirements look like.
//
// A Graph is built fresh for each resolution and discarded afterwards; Order
// and Levels never mutate it.
type Graph struct {
	// deps maps each component to the components it requires (deduplicated,
	// manifest declaration order).
	deps map[string][]string

	// dependents is the reverse adjacency: for each component, the components
	// that require it.
	dependents map[string][]string
}

// BuildGraph validates every requirement in the manifest and returns the
// resulting dependency graph. It fails on the first requirement that names an
// unknown component or pins a version different from the dependency's
// declared one; a manifest error is never silently ignored.
func BuildGraph(m *domain.Manifest) (*Graph, error) {
	g := &Graph{
		deps:       make(map[string][]string, m.Len()),
		dependents: make(map[string][]string),
	}

	for c := range m.Components() {
		name := c.Name.String()
		g.deps[name] = nil

		seen := make(map[string]bool, len(c.Requires))
		for _, req := range c.Requires {
			depName := req.Name.String()

			dep, ok := m.Component(req.Name)
			if !ok {
				err := zerr.With(domain.ErrUnknownDependency, "component", name)
				return nil, zerr.With(err, "missing_dependency", depName)
			}
			if dep.Version != req.Version {
				err := zerr.With(domain.ErrVersionMismatch, "component", name)
				err = zerr.With(err, "dependency", depName)
				err = zerr.With(err, "pinned_version", req.Version.String())
				return nil, zerr.With(err, "declared_version", dep.Version.String())
			}

			// A repeated pin on the same dependency is one edge, not two;
			// counting it twice would wedge the in-degree bookkeeping.
			if seen[depName] {
				continue
			}
			seen[depName] = true

			g.deps[name] = append(g.deps[name], depName)
			g.dependents[depName] = append(g.dependents[depName], name)
		}
	}

	return g, nil
}

// Len returns the number of components in the graph.
func (g *Graph) Len() int {
	return len(g.deps)
}
