package codegen

import (
	"context"
	"sort"
	"strings"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/ctxlog"
)

// MetadataProvider resolves node-type metadata.
type MetadataProvider interface {
	Lookup(nodeType string) (*blueprint.NodeMetadata, bool)
}

// DataResolver answers where each input pin's value comes from and which
// variable holds a node's result.
type DataResolver interface {
	InputSource(nodeID, pinID string) (blueprint.DataSource, bool)
	ResultVariable(nodeID string) (string, bool)
}

// ExecutionRouter lists the nodes wired to an execution output pin.
type ExecutionRouter interface {
	Downstream(nodeID, pinID string) []string
}

// Options tune the emitted program.
type Options struct {
	// DeclareStorage emits a thread_local! block declaring one storage cell
	// per variable after the imports.
	DeclareStorage bool
}

// Header opens every generated program.
const Header = `// Auto-generated code from Pulsar Blueprint
// DO NOT EDIT - Changes will be overwritten
// Compiled with PBGC (Pulsar Blueprint Graph Compiler)

// NOTE: Replace with actual pulsar_std import in production
// use pulsar_std::*;

`

const indentUnit = "    "

// Generator emits source for one graph.
type Generator struct {
	graph     *blueprint.Graph
	meta      MetadataProvider
	data      DataResolver
	router    ExecutionRouter
	variables map[string]string
	opts      Options
}

// New creates a generator. variables maps each declared variable name to its
// Rust type and may be nil.
func New(graph *blueprint.Graph, meta MetadataProvider, data DataResolver, router ExecutionRouter, variables map[string]string, opts Options) *Generator {
	vars := make(map[string]string, len(variables))
	for name, typ := range variables {
		vars[name] = typ
	}
	return &Generator{
		graph:     graph,
		meta:      meta,
		data:      data,
		router:    router,
		variables: vars,
		opts:      opts,
	}
}

// Generate returns the complete program text. Any failure aborts generation
// and no partial output is returned.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	logger := ctxlog.FromContext(ctx)
	var b strings.Builder

	b.WriteString(Header)
	for _, imp := range g.imports() {
		b.WriteString(imp)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if g.opts.DeclareStorage && len(g.variables) > 0 {
		g.writeStorageDeclarations(&b)
	}

	events := g.eventNodes()
	if len(events) == 0 {
		return "", blueprint.ErrNoEventNodes
	}
	if err := g.checkAccessors(); err != nil {
		return "", err
	}

	for _, node := range events {
		if err := g.writeEvent(&b, node, logger); err != nil {
			return "", err
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// imports gathers the import lines of every node type in the graph,
// deduplicated and sorted.
func (g *Generator) imports() []string {
	set := make(map[string]struct{})
	for _, id := range g.graph.SortedIDs() {
		meta, ok := g.meta.Lookup(g.graph.Nodes[id].NodeType)
		if !ok {
			continue
		}
		for _, imp := range meta.Imports {
			set[imp] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for imp := range set {
		out = append(out, imp)
	}
	sort.Strings(out)
	return out
}

// eventNodes returns the event nodes ordered by node ID.
func (g *Generator) eventNodes() []*blueprint.NodeInstance {
	var events []*blueprint.NodeInstance
	for _, id := range g.graph.SortedIDs() {
		n := g.graph.Nodes[id]
		if meta, ok := g.meta.Lookup(n.NodeType); ok && meta.Kind == blueprint.EventNode {
			events = append(events, n)
		}
	}
	return events
}

func (g *Generator) node(id string) (*blueprint.NodeInstance, error) {
	n, ok := g.graph.Node(id)
	if !ok {
		return nil, &blueprint.NodeNotFoundError{ID: id}
	}
	return n, nil
}

func (g *Generator) metadata(n *blueprint.NodeInstance) (*blueprint.NodeMetadata, error) {
	meta, ok := g.meta.Lookup(n.NodeType)
	if !ok {
		return nil, &blueprint.MetadataNotFoundError{NodeType: n.NodeType}
	}
	return meta, nil
}

func indentation(level int) string {
	return strings.Repeat(indentUnit, level)
}

// writeLine appends one statement at the given indent level.
func writeLine(b *strings.Builder, level int, line string) {
	b.WriteString(indentation(level))
	b.WriteString(line)
	b.WriteString("\n")
}
