package domain

// Requirement pins a dependency to an exact version. A component carrying
// the requirement must be built only after the named component, and the
// named component's declared version must equal Version (plain string
// equality, not a semver range).
type Requirement struct {
	Name    InternedString
	Version InternedString
}

// Component is a single manifest entry: a buildable unit with a declared
// version, an optional git tag, and the requirements it must be built after.
type Component struct {
	Name    InternedString
	Version InternedString

	// GitTag is release bookkeeping carried through from the manifest.
	// The resolver never inspects it.
	GitTag InternedString

	// Requires lists the requirement pins in manifest declaration order.
	Requires []Requirement
}
