package testutil

import (
	"testing"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/stretchr/testify/require"
)

// Provider is a map-backed metadata provider.
type Provider map[string]*blueprint.NodeMetadata

// Lookup implements the metadata provider contract.
func (p Provider) Lookup(nodeType string) (*blueprint.NodeMetadata, bool) {
	meta, ok := p[nodeType]
	return meta, ok
}

// BranchTemplate is the template used by the "branch" fixture node type.
const BranchTemplate = `if ${param.condition} {
    ${exec.then}
} else {
    ${exec.else}
}`

// LoopTemplate is the template used by the "for_loop" fixture node type.
const LoopTemplate = `for index in ${param.start}..${param.end} {
    ${exec.body}
}
${exec.completed}`

// Library returns a small, self-contained set of node types covering every
// node kind.
func Library() Provider {
	return Provider{
		"begin_play": {Kind: blueprint.EventNode, Name: "begin_play"},
		"on_tick":    {Kind: blueprint.EventNode, Name: "on_tick"},
		"print": {
			Kind:    blueprint.FunctionNode,
			Name:    "print",
			Params:  []blueprint.Param{{Name: "value", Type: "String"}},
			Imports: []string{"use crate::io::print;"},
		},
		"print_number": {
			Kind:   blueprint.FunctionNode,
			Name:   "print_number",
			Params: []blueprint.Param{{Name: "value", Type: "f64"}},
		},
		"random_number": {
			Kind:       blueprint.FunctionNode,
			Name:       "random_number",
			ReturnType: "f64",
			Imports:    []string{"use crate::math::random_number;"},
		},
		"add": {
			Kind:       blueprint.PureNode,
			Name:       "add",
			Params:     []blueprint.Param{{Name: "a", Type: "f64"}, {Name: "b", Type: "f64"}},
			ReturnType: "f64",
			Imports:    []string{"use crate::math::add;"},
		},
		"greater_than": {
			Kind:       blueprint.PureNode,
			Name:       "greater_than",
			Params:     []blueprint.Param{{Name: "a", Type: "f64"}, {Name: "b", Type: "f64"}},
			ReturnType: "bool",
		},
		"branch": {
			Kind:        blueprint.ControlFlowNode,
			Name:        "branch",
			Params:      []blueprint.Param{{Name: "condition", Type: "bool"}},
			ExecOutputs: []string{"then", "else"},
			Template:    BranchTemplate,
		},
		"for_loop": {
			Kind:        blueprint.ControlFlowNode,
			Name:        "for_loop",
			Params:      []blueprint.Param{{Name: "start", Type: "i64"}, {Name: "end", Type: "i64"}},
			ExecOutputs: []string{"body", "completed"},
			Template:    LoopTemplate,
		},
	}
}

// GraphBuilder assembles graphs from a provider, failing the test on any
// structural error.
type GraphBuilder struct {
	t        *testing.T
	provider Provider
	Graph    *blueprint.Graph
}

// NewGraph starts a graph that instantiates nodes from provider.
func NewGraph(t *testing.T, name string, provider Provider) *GraphBuilder {
	t.Helper()
	return &GraphBuilder{t: t, provider: provider, Graph: blueprint.NewGraph(name)}
}

// Node adds a node of a library type.
func (b *GraphBuilder) Node(id, nodeType string) *GraphBuilder {
	b.t.Helper()
	meta, ok := b.provider[nodeType]
	require.True(b.t, ok, "fixture library has no node type %q", nodeType)
	require.NoError(b.t, b.Graph.AddNode(blueprint.Instantiate(id, nodeType, meta)))
	return b
}

// Getter adds a variable read node.
func (b *GraphBuilder) Getter(id, variable, varType string) *GraphBuilder {
	b.t.Helper()
	require.NoError(b.t, b.Graph.AddNode(blueprint.InstantiateGetter(id, variable, varType)))
	return b
}

// Setter adds a variable write node.
func (b *GraphBuilder) Setter(id, variable, varType string) *GraphBuilder {
	b.t.Helper()
	require.NoError(b.t, b.Graph.AddNode(blueprint.InstantiateSetter(id, variable, varType)))
	return b
}

// Raw adds a node exactly as given.
func (b *GraphBuilder) Raw(n *blueprint.NodeInstance) *GraphBuilder {
	b.t.Helper()
	require.NoError(b.t, b.Graph.AddNode(n))
	return b
}

// Connect links two pins addressed by pin name.
func (b *GraphBuilder) Connect(fromNode, fromPin, toNode, toPin string) *GraphBuilder {
	b.t.Helper()
	require.NoError(b.t, b.Graph.Connect(
		fromNode, blueprint.PinID(fromNode, fromPin),
		toNode, blueprint.PinID(toNode, toPin),
	))
	return b
}

// Literal binds constant text to an input pin addressed by pin name.
func (b *GraphBuilder) Literal(nodeID, pin, text string) *GraphBuilder {
	b.t.Helper()
	n, ok := b.Graph.Node(nodeID)
	require.True(b.t, ok, "no node %q", nodeID)
	if n.Literals == nil {
		n.Literals = make(map[string]string)
	}
	n.Literals[blueprint.PinID(nodeID, pin)] = text
	return b
}
