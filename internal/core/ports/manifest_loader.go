package ports

import "go.trai.ch/topo/internal/core/domain"

// ManifestLoader defines the interface for loading a release manifest.
//
//go:generate mockgen -source=manifest_loader.go -destination=mocks/mock_manifest_loader.go -package=mocks
type ManifestLoader interface {
	// Load reads the manifest file at the given path and returns its in-memory form.
	Load(path string) (*domain.Manifest, error)
}
