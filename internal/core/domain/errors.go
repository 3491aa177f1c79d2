package domain

import "go.trai.ch/zerr"

var (
	// ErrComponentAlreadyExists is returned when attempting to add a component with a name that already exists.
	ErrComponentAlreadyExists = zerr.New("component already exists")

	// ErrUnknownDependency is returned when a requirement references a component absent from the manifest.
	ErrUnknownDependency = zerr.New("unknown dependency")

	// ErrVersionMismatch is returned when a requirement pin differs from the dependency's declared version.
	ErrVersionMismatch = zerr.New("version mismatch")

	// ErrCircularDependency is returned when the requirement graph contains a cycle.
	// Downstream tooling matches on the "Circular dependency" substring, so the
	// message must keep it.
	ErrCircularDependency = zerr.New("Circular dependency detected")

	// ErrInvalidRequirement is returned when a requirement string is not of the form "name=version".
	ErrInvalidRequirement = zerr.New("invalid requirement")
)
