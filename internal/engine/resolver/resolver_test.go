package resolver_test

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"go.trai.ch/topo/internal/core/domain"
	"go.trai.ch/topo/internal/engine/resolver"
	"go.trai.ch/zerr"
)

type entry struct {
	version  string
	requires []string // "name=version" pins
}

func newManifest(t *testing.T, entries map[string]entry) *domain.Manifest {
	t.Helper()

	m := domain.NewManifest("test-digest")
	for name, e := range entries {
		c := domain.Component{
			Name:    domain.NewInternedString(name),
			Version: domain.NewInternedString(e.version),
		}
		for _, pin := range e.requires {
			depName, depVersion, ok := strings.Cut(pin, "=")
			if !ok {
				t.Fatalf("malformed pin in test fixture: %s", pin)
			}
			c.Requires = append(c.Requires, domain.Requirement{
				Name:    domain.NewInternedString(depName),
				Version: domain.NewInternedString(depVersion),
			})
		}
		if err := m.AddComponent(&c); err != nil {
			t.Fatalf("failed to add component %s: %v", name, err)
		}
	}
	return m
}

func mustOrder(t *testing.T, entries map[string]entry) []string {
	t.Helper()

	g, err := resolver.BuildGraph(newManifest(t, entries))
	if err != nil {
		t.Fatalf("failed to build graph: %v", err)
	}
	order, err := g.Order()
	if err != nil {
		t.Fatalf("failed to resolve order: %v", err)
	}
	return order
}

func position(t *testing.T, order []string, name string) int {
	t.Helper()

	i := slices.Index(order, name)
	if i < 0 {
		t.Fatalf("component %s missing from order %v", name, order)
	}
	return i
}

func TestOrder_RespectsDependencies(t *testing.T) {
	// node requires protocol and consensus, protocol requires consensus.
	order := mustOrder(t, map[string]entry{
		"consensus": {version: "0.1.0"},
		"protocol":  {version: "0.1.0", requires: []string{"consensus=0.1.0"}},
		"node":      {version: "0.1.0", requires: []string{"protocol=0.1.0", "consensus=0.1.0"}},
	})

	consensusPos := position(t, order, "consensus")
	protocolPos := position(t, order, "protocol")
	nodePos := position(t, order, "node")

	if consensusPos >= protocolPos {
		t.Errorf("consensus should come before protocol: %v", order)
	}
	if protocolPos >= nodePos {
		t.Errorf("protocol should come before node: %v", order)
	}
}

func TestOrder_CircularDependency(t *testing.T) {
	g, err := resolver.BuildGraph(newManifest(t, map[string]entry{
		"A": {version: "0.1.0", requires: []string{"B=0.1.0"}},
		"B": {version: "0.1.0", requires: []string{"A=0.1.0"}},
	}))
	if err != nil {
		t.Fatalf("failed to build graph: %v", err)
	}

	_, err = g.Order()
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !errors.Is(err, domain.ErrCircularDependency) {
		t.Errorf("expected ErrCircularDependency, got %v", err)
	}
	if !strings.Contains(err.Error(), "Circular dependency") {
		t.Errorf("error message must contain %q, got %q", "Circular dependency", err.Error())
	}

	// Verify metadata names both cycle members
	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	members, ok := zErr.Metadata()["components"].(string)
	if !ok || members != "A, B" {
		t.Errorf("expected metadata components=%q, got %v", "A, B", zErr.Metadata()["components"])
	}
}

func TestOrder_IndependentComponents(t *testing.T) {
	// consensus and sdk have no requirements and can be built in parallel;
	// both must precede protocol, and the tie between them is broken by name.
	order := mustOrder(t, map[string]entry{
		"consensus": {version: "0.1.0"},
		"sdk":       {version: "0.1.0"},
		"protocol":  {version: "0.1.0", requires: []string{"consensus=0.1.0"}},
	})

	consensusPos := position(t, order, "consensus")
	sdkPos := position(t, order, "sdk")
	protocolPos := position(t, order, "protocol")

	if consensusPos >= protocolPos {
		t.Errorf("consensus should come before protocol: %v", order)
	}
	if sdkPos >= protocolPos {
		t.Errorf("sdk should come before protocol: %v", order)
	}
	if consensusPos >= sdkPos {
		t.Errorf("name tie-break should place consensus before sdk: %v", order)
	}
}

func TestBuildGraph_VersionMismatch(t *testing.T) {
	_, err := resolver.BuildGraph(newManifest(t, map[string]entry{
		"consensus": {version: "0.1.0"},
		"protocol":  {version: "0.1.0", requires: []string{"consensus=0.2.0"}},
	}))
	if err == nil {
		t.Fatal("expected error for version mismatch, got nil")
	}
	if !errors.Is(err, domain.ErrVersionMismatch) {
		t.Errorf("expected ErrVersionMismatch, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if pinned, ok := meta["pinned_version"].(string); !ok || pinned != "0.2.0" {
		t.Errorf("expected metadata pinned_version=0.2.0, got %v", meta["pinned_version"])
	}
	if declared, ok := meta["declared_version"].(string); !ok || declared != "0.1.0" {
		t.Errorf("expected metadata declared_version=0.1.0, got %v", meta["declared_version"])
	}
}

func TestBuildGraph_UnknownDependency(t *testing.T) {
	_, err := resolver.BuildGraph(newManifest(t, map[string]entry{
		"node": {version: "0.1.0", requires: []string{"protocol=0.1.0"}},
	}))
	if err == nil {
		t.Fatal("expected error for unknown dependency, got nil")
	}
	if !errors.Is(err, domain.ErrUnknownDependency) {
		t.Errorf("expected ErrUnknownDependency, got %v", err)
	}

	zErr, ok := err.(*zerr.Error)
	if !ok {
		t.Fatalf("expected *zerr.Error, got %T", err)
	}
	meta := zErr.Metadata()
	if missing, ok := meta["missing_dependency"].(string); !ok || missing != "protocol" {
		t.Errorf("expected metadata missing_dependency=protocol, got %v", meta["missing_dependency"])
	}
	if requirer, ok := meta["component"].(string); !ok || requirer != "node" {
		t.Errorf("expected metadata component=node, got %v", meta["component"])
	}
}

func TestOrder_Deterministic(t *testing.T) {
	entries := map[string]entry{
		"consensus": {version: "0.1.0"},
		"sdk":       {version: "0.1.0"},
		"crypto":    {version: "0.1.0"},
		"protocol":  {version: "0.1.0", requires: []string{"consensus=0.1.0", "crypto=0.1.0"}},
		"node":      {version: "0.1.0", requires: []string{"protocol=0.1.0", "consensus=0.1.0"}},
		"tools":     {version: "0.1.0", requires: []string{"sdk=0.1.0"}},
	}

	first := mustOrder(t, entries)
	for range 20 {
		if got := mustOrder(t, entries); !slices.Equal(got, first) {
			t.Fatalf("non-deterministic order: %v vs %v", got, first)
		}
	}
}

func TestOrder_CompleteAndUnique(t *testing.T) {
	entries := map[string]entry{
		"consensus": {version: "0.1.0"},
		"crypto":    {version: "0.1.0"},
		"protocol":  {version: "0.1.0", requires: []string{"consensus=0.1.0", "crypto=0.1.0"}},
		"node":      {version: "0.1.0", requires: []string{"protocol=0.1.0"}},
	}
	order := mustOrder(t, entries)

	if len(order) != len(entries) {
		t.Fatalf("expected %d components, got %d: %v", len(entries), len(order), order)
	}
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		if seen[name] {
			t.Fatalf("component %s appears more than once: %v", name, order)
		}
		seen[name] = true
	}
}

func TestOrder_SelfRequirement(t *testing.T) {
	g, err := resolver.BuildGraph(newManifest(t, map[string]entry{
		"A": {version: "0.1.0", requires: []string{"A=0.1.0"}},
	}))
	if err != nil {
		t.Fatalf("failed to build graph: %v", err)
	}

	_, err = g.Order()
	if err == nil {
		t.Fatal("expected error for self-requirement, got nil")
	}
	if !strings.Contains(err.Error(), "Circular dependency") {
		t.Errorf("expected circular dependency error, got %q", err.Error())
	}
}

func TestOrder_DuplicateRequirementPins(t *testing.T) {
	// The same pin stated twice is a single edge.
	order := mustOrder(t, map[string]entry{
		"consensus": {version: "0.1.0"},
		"node":      {version: "0.1.0", requires: []string{"consensus=0.1.0", "consensus=0.1.0"}},
	})

	want := []string{"consensus", "node"}
	if !slices.Equal(order, want) {
		t.Errorf("unexpected order: got %v, want %v", order, want)
	}
}

func TestOrder_EmptyManifest(t *testing.T) {
	order := mustOrder(t, map[string]entry{})
	if len(order) != 0 {
		t.Errorf("expected empty order, got %v", order)
	}
}

func TestLevels_Diamond(t *testing.T) {
	// node requires protocol and sdk; both require consensus.
	g, err := resolver.BuildGraph(newManifest(t, map[string]entry{
		"consensus": {version: "0.1.0"},
		"protocol":  {version: "0.1.0", requires: []string{"consensus=0.1.0"}},
		"sdk":       {version: "0.1.0", requires: []string{"consensus=0.1.0"}},
		"node":      {version: "0.1.0", requires: []string{"protocol=0.1.0", "sdk=0.1.0"}},
	}))
	if err != nil {
		t.Fatalf("failed to build graph: %v", err)
	}

	levels, err := g.Levels()
	if err != nil {
		t.Fatalf("failed to resolve levels: %v", err)
	}

	want := [][]string{
		{"consensus"},
		{"protocol", "sdk"},
		{"node"},
	}
	if len(levels) != len(want) {
		t.Fatalf("expected %d levels, got %d: %v", len(want), len(levels), levels)
	}
	for i := range want {
		if !slices.Equal(levels[i], want[i]) {
			t.Errorf("level %d: got %v, want %v", i, levels[i], want[i])
		}
	}
}

func TestLevels_Cycle(t *testing.T) {
	g, err := resolver.BuildGraph(newManifest(t, map[string]entry{
		"A": {version: "0.1.0", requires: []string{"B=0.1.0"}},
		"B": {version: "0.1.0", requires: []string{"A=0.1.0"}},
		"C": {version: "0.1.0"},
	}))
	if err != nil {
		t.Fatalf("failed to build graph: %v", err)
	}

	_, err = g.Levels()
	if err == nil {
		t.Fatal("expected error for cycle, got nil")
	}
	if !strings.Contains(err.Error(), "Circular dependency") {
		t.Errorf("expected circular dependency error, got %q", err.Error())
	}
}
