// Package manifest provides the release-manifest loader for topo.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cespare/xxhash/v2"
	"go.trai.ch/topo/internal/core/domain"
	"go.trai.ch/topo/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned when the manifest file extension is not recognized.
var ErrUnsupportedFormat = zerr.New("unsupported manifest format")

// FileManifestLoader implements ports.ManifestLoader for TOML and YAML files.
type FileManifestLoader struct {
	log ports.Logger
}

// NewLoader creates a new FileManifestLoader.
func NewLoader(log ports.Logger) *FileManifestLoader {
	return &FileManifestLoader{log: log}
}

// Load reads the manifest file at the given path and returns its in-memory form.
func (l *FileManifestLoader) Load(path string) (*domain.Manifest, error) {
	m, err := Load(path)
	if err != nil {
		return nil, err
	}
	l.log.Info(fmt.Sprintf("loaded manifest %s (%d components, digest %s)", path, m.Len(), m.Digest()))
	return m, nil
}

// manifestFile mirrors the on-disk manifest schema: a top-level "versions"
// table of component name to declaration record.
type manifestFile struct {
	Versions map[string]componentDTO `toml:"versions" yaml:"versions"`
}

// componentDTO represents a single component declaration in the manifest.
type componentDTO struct {
	Version  string   `toml:"version" yaml:"version"`
	GitTag   string   `toml:"git_tag" yaml:"git_tag"`
	Requires []string `toml:"requires" yaml:"requires"`
}

// Load reads a manifest file from the given path and returns a domain.Manifest.
// The decoder is picked by file extension: .toml, .yaml or .yml.
func Load(path string) (*domain.Manifest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read manifest file")
	}

	var file manifestFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &file); err != nil {
			return nil, zerr.Wrap(err, "failed to parse manifest file")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, zerr.Wrap(err, "failed to parse manifest file")
		}
	default:
		return nil, zerr.With(ErrUnsupportedFormat, "path", path)
	}

	m := domain.NewManifest(digest(data))
	for name, dto := range file.Versions {
		requires, err := parseRequirements(name, dto.Requires)
		if err != nil {
			return nil, err
		}

		c := &domain.Component{
			Name:     domain.NewInternedString(name),
			Version:  domain.NewInternedString(dto.Version),
			GitTag:   domain.NewInternedString(dto.GitTag),
			Requires: requires,
		}
		if err := m.AddComponent(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// digest fingerprints the raw manifest bytes so identical inputs are
// provably identical across runs.
func digest(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// parseRequirements splits "name=version" requirement strings into pins.
func parseRequirements(component string, raw []string) ([]domain.Requirement, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	requires := make([]domain.Requirement, 0, len(raw))
	for _, entry := range raw {
		name, version, ok := strings.Cut(entry, "=")
		if !ok || name == "" || version == "" {
			err := zerr.With(domain.ErrInvalidRequirement, "component", component)
			return nil, zerr.With(err, "requirement", entry)
		}
		requires = append(requires, domain.Requirement{
			Name:    domain.NewInternedString(name),
			Version: domain.NewInternedString(version),
		})
	}
	return requires, nil
}
