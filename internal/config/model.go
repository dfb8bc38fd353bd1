package config

import (
	"fmt"
	"sort"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
)

// Model is the unified, format-agnostic representation of everything a
// compile run reads: node-type metadata and the blueprints to compile.
type Model struct {
	Nodes      map[string]*blueprint.NodeMetadata
	Blueprints []*Blueprint
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Nodes: make(map[string]*blueprint.NodeMetadata)}
}

// Blueprint is one graph plus the class-scoped variables it declares.
type Blueprint struct {
	Graph *blueprint.Graph
	// Variables maps variable name to declared target-language type.
	Variables map[string]string
	// Source is the file the blueprint was read from, for diagnostics.
	Source string
}

// Name returns the blueprint's graph name.
func (b *Blueprint) Name() string {
	return b.Graph.Name
}

// Merge folds other into m. Node types and blueprint names must not repeat.
func (m *Model) Merge(other *Model) error {
	for nodeType, meta := range other.Nodes {
		if _, exists := m.Nodes[nodeType]; exists {
			return fmt.Errorf("node type %q is defined more than once", nodeType)
		}
		m.Nodes[nodeType] = meta
	}
	for _, bp := range other.Blueprints {
		if existing := m.Blueprint(bp.Name()); existing != nil {
			return fmt.Errorf("blueprint %q is defined in both %s and %s", bp.Name(), existing.Source, bp.Source)
		}
		m.Blueprints = append(m.Blueprints, bp)
	}
	return nil
}

// Blueprint returns the blueprint with the given name, or nil.
func (m *Model) Blueprint(name string) *Blueprint {
	for _, bp := range m.Blueprints {
		if bp.Name() == name {
			return bp
		}
	}
	return nil
}

// SortedBlueprints returns the blueprints ordered by name.
func (m *Model) SortedBlueprints() []*Blueprint {
	out := append([]*Blueprint(nil), m.Blueprints...)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}
