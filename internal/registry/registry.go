package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/config"
)

// Module is the interface for bundles of node types that register
// themselves in Go code rather than through a manifest.
type Module interface {
	Register(r *Registry)
}

// Registry holds the node-type metadata for a single compiler instance.
// It is not safe for concurrent mutation; populate it before compiling.
type Registry struct {
	nodes map[string]*blueprint.NodeMetadata
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{nodes: make(map[string]*blueprint.NodeMetadata)}
}

// Register adds metadata for a node type. Registering the same type twice
// is a programming error and panics.
func (r *Registry) Register(nodeType string, meta *blueprint.NodeMetadata) {
	if _, exists := r.nodes[nodeType]; exists {
		panic(fmt.Sprintf("node type '%s' already registered", nodeType))
	}
	slog.Debug("Registering node type.", "type", nodeType, "kind", meta.Kind)
	r.nodes[nodeType] = meta
}

// PopulateFromModel copies node metadata loaded from manifests into the
// registry. Unlike Register, a duplicate is reported as an error since it
// originates in user input.
func (r *Registry) PopulateFromModel(model *config.Model) error {
	for _, nodeType := range sortedKeys(model.Nodes) {
		if _, exists := r.nodes[nodeType]; exists {
			return fmt.Errorf("node type '%s' is already registered", nodeType)
		}
		r.nodes[nodeType] = model.Nodes[nodeType]
	}
	return nil
}

// Clone returns a registry holding the same node types. Metadata values are
// shared; only the index is copied.
func (r *Registry) Clone() *Registry {
	out := &Registry{nodes: make(map[string]*blueprint.NodeMetadata, len(r.nodes))}
	for nodeType, meta := range r.nodes {
		out.nodes[nodeType] = meta
	}
	return out
}

// Lookup returns the metadata for a node type.
func (r *Registry) Lookup(nodeType string) (*blueprint.NodeMetadata, bool) {
	meta, ok := r.nodes[nodeType]
	return meta, ok
}

// Types returns all registered node types in sorted order.
func (r *Registry) Types() []string {
	return sortedKeys(r.nodes)
}

// Len returns the number of registered node types.
func (r *Registry) Len() int {
	return len(r.nodes)
}

func sortedKeys(m map[string]*blueprint.NodeMetadata) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
