package dataflow

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/ctxlog"
	"github.com/specialistvlad/blueprintc/internal/dag"
)

// MetadataProvider resolves node-type metadata.
type MetadataProvider interface {
	Lookup(nodeType string) (*blueprint.NodeMetadata, bool)
}

// ResultSuffix is appended to a sanitized node ID to name its result variable.
const ResultSuffix = "_result"

var nonIdent = regexp.MustCompile(`[^A-Za-z0-9_]`)

type pinKey struct {
	node string
	pin  string
}

// Resolver holds the outcome of the analysis. It is read-only after Build.
type Resolver struct {
	sources   map[pinKey]blueprint.DataSource
	results   map[string]string
	pureOrder []string
}

// Build analyses g. Every data connection must point at existing pins and
// an input pin may have at most one incoming data connection.
func Build(ctx context.Context, g *blueprint.Graph, provider MetadataProvider) (*Resolver, error) {
	logger := ctxlog.FromContext(ctx)
	r := &Resolver{
		sources: make(map[pinKey]blueprint.DataSource),
		results: make(map[string]string),
	}

	deps := dag.New()
	inlined := make(map[string]bool)
	for _, id := range g.SortedIDs() {
		n := g.Nodes[id]
		if isInlined(n, provider) {
			inlined[id] = true
			deps.AddNode(id)
		}
	}

	for _, c := range g.Connections {
		from, ok := g.Node(c.FromNode)
		if !ok {
			return nil, &blueprint.NodeNotFoundError{ID: c.FromNode}
		}
		out, ok := from.Output(c.FromPin)
		if !ok {
			return nil, &blueprint.PinNotFoundError{Node: c.FromNode, Pin: c.FromPin}
		}
		if out.Pin.IsExecution() {
			continue
		}
		to, ok := g.Node(c.ToNode)
		if !ok {
			return nil, &blueprint.NodeNotFoundError{ID: c.ToNode}
		}
		if _, ok := to.Input(c.ToPin); !ok {
			return nil, &blueprint.PinNotFoundError{Node: c.ToNode, Pin: c.ToPin}
		}

		key := pinKey{node: c.ToNode, pin: c.ToPin}
		if existing, dup := r.sources[key]; dup {
			return nil, &blueprint.StructuralError{Msg: fmt.Sprintf(
				"input %s.%s is fed by both %s and %s.%s", c.ToNode, c.ToPin, existing, c.FromNode, c.FromPin)}
		}
		r.sources[key] = blueprint.Connected(c.FromNode, c.FromPin)

		if inlined[c.FromNode] && inlined[c.ToNode] {
			if c.FromNode == c.ToNode {
				return nil, blueprint.Contractf(blueprint.DataCycle,
					"pure node %q feeds its own input %q", c.FromNode, c.ToPin)
			}
			if err := deps.AddEdge(c.FromNode, c.ToNode); err != nil {
				return nil, fmt.Errorf("recording data dependency %s: %w", c, err)
			}
		}
	}

	order, err := deps.TopologicalOrder()
	if err != nil {
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			return nil, blueprint.Contractf(blueprint.DataCycle, "pure data subgraph is cyclic: %v", cycle)
		}
		return nil, err
	}
	r.pureOrder = order

	for _, id := range g.SortedIDs() {
		n := g.Nodes[id]
		for _, in := range n.Inputs {
			if in.Pin.IsExecution() {
				continue
			}
			key := pinKey{node: id, pin: in.ID}
			if _, bound := r.sources[key]; bound {
				continue
			}
			if text, ok := n.Literals[in.ID]; ok {
				r.sources[key] = blueprint.Constant(text)
			} else {
				r.sources[key] = blueprint.Default()
			}
		}
		for pinID := range n.Literals {
			if _, ok := n.Input(pinID); !ok {
				return nil, &blueprint.PinNotFoundError{Node: id, Pin: pinID}
			}
		}
	}

	r.assignResults(g, provider)

	logger.Debug("Data flow analysis built.",
		"graph", g.Name,
		"bound_inputs", len(r.sources),
		"result_variables", len(r.results),
		"pure_order", r.pureOrder,
	)
	return r, nil
}

// assignResults names a variable for every non-pure node that returns a
// value. Names derive from the node ID and are made unique in sorted-ID order.
func (r *Resolver) assignResults(g *blueprint.Graph, provider MetadataProvider) {
	taken := make(map[string]bool)
	for _, id := range g.SortedIDs() {
		meta, ok := provider.Lookup(g.Nodes[id].NodeType)
		if !ok || meta.Kind == blueprint.PureNode || !meta.HasReturn() {
			continue
		}
		name := SanitizeIdent(id) + ResultSuffix
		for i := 2; taken[name]; i++ {
			name = fmt.Sprintf("%s%s_%d", SanitizeIdent(id), ResultSuffix, i)
		}
		taken[name] = true
		r.results[id] = name
	}
}

// InputSource returns the bound source of an input pin. Execution inputs and
// unknown pins have none.
func (r *Resolver) InputSource(nodeID, pinID string) (blueprint.DataSource, bool) {
	s, ok := r.sources[pinKey{node: nodeID, pin: pinID}]
	return s, ok
}

// ResultVariable returns the identifier assigned to a node's output.
func (r *Resolver) ResultVariable(nodeID string) (string, bool) {
	name, ok := r.results[nodeID]
	return name, ok
}

// PureOrder returns pure nodes and getters such that every node follows the
// nodes it reads from.
func (r *Resolver) PureOrder() []string {
	return append([]string(nil), r.pureOrder...)
}

// SanitizeIdent turns an arbitrary node ID into a valid identifier.
func SanitizeIdent(id string) string {
	s := nonIdent.ReplaceAllString(id, "_")
	if s == "" || (s[0] >= '0' && s[0] <= '9') {
		s = "n_" + s
	}
	return s
}

func isInlined(n *blueprint.NodeInstance, provider MetadataProvider) bool {
	if _, ok := blueprint.VariableName(n.NodeType, blueprint.GetterPrefix); ok {
		return true
	}
	meta, ok := provider.Lookup(n.NodeType)
	return ok && meta.Kind == blueprint.PureNode
}
