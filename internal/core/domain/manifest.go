// Package domain contains the core domain models for the release manifest
// and its dependency declarations.
package domain

import (
	"iter"
	"slices"

	"go.trai.ch/zerr"
)

// Manifest is the in-memory form of a parsed release manifest: a set of
// components keyed by name. It is constructed once by a loader and read-only
// afterwards; the resolver consumes it without mutating it.
type Manifest struct {
	components map[InternedString]Component
	digest     string
}

// NewManifest creates an empty Manifest. The digest identifies the raw
// manifest content the components were parsed from.
func NewManifest(digest string) *Manifest {
	return &Manifest{
		components: make(map[InternedString]Component),
		digest:     digest,
	}
}

// AddComponent adds a component to the manifest.
// It returns an error if a component with the same name already exists.
func (m *Manifest) AddComponent(c *Component) error {
	if _, exists := m.components[c.Name]; exists {
		return zerr.With(ErrComponentAlreadyExists, "component", c.Name.String())
	}
	m.components[c.Name] = *c
	return nil
}

// Component returns the component with the given name.
func (m *Manifest) Component(name InternedString) (Component, bool) {
	c, ok := m.components[name]
	return c, ok
}

// Len returns the number of components in the manifest.
func (m *Manifest) Len() int {
	return len(m.components)
}

// Digest returns the content digest of the manifest source.
func (m *Manifest) Digest() string {
	return m.digest
}

// Components returns an iterator over all components in name-ascending
// order. Map iteration order is random; walking in a fixed order keeps
// everything derived from the manifest reproducible.
func (m *Manifest) Components() iter.Seq[Component] {
	names := make([]string, 0, len(m.components))
	for name := range m.components {
		names = append(names, name.String())
	}
	slices.Sort(names)

	return func(yield func(Component) bool) {
		for _, name := range names {
			if !yield(m.components[NewInternedString(name)]) {
				return
			}
		}
	}
}
