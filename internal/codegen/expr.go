package codegen

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
)

// guard tracks the pure nodes being inlined by one expression so a cyclic
// data subgraph is reported instead of recursing forever.
type guard map[string]struct{}

func newGuard() guard {
	return make(guard)
}

// arguments resolves one expression per declared parameter, in order.
func (g *Generator) arguments(node *blueprint.NodeInstance, meta *blueprint.NodeMetadata, inProgress guard) ([]string, error) {
	args := make([]string, 0, len(meta.Params))
	for _, p := range meta.Params {
		pin, ok := node.InputByName(p.Name)
		if !ok {
			return nil, unboundParameter(p.Name, node.ID)
		}
		expr, err := g.inputExpression(node.ID, pin.ID, inProgress)
		if err != nil {
			return nil, err
		}
		args = append(args, expr)
	}
	return args, nil
}

// inputExpression returns the expression that yields the value of an input
// pin.
func (g *Generator) inputExpression(nodeID, pinID string, inProgress guard) (string, error) {
	src, ok := g.data.InputSource(nodeID, pinID)
	if !ok {
		return "", blueprint.Contractf(blueprint.UnresolvedSource,
			"no data source for input %s.%s", nodeID, pinID)
	}

	switch src.Kind {
	case blueprint.SourceConnection:
		return g.connected(src, inProgress)
	case blueprint.SourceConstant:
		return src.Value, nil
	case blueprint.SourceDefault:
		node, err := g.node(nodeID)
		if err != nil {
			return "", err
		}
		pin, ok := node.Input(pinID)
		if !ok {
			return "", &blueprint.PinNotFoundError{Node: nodeID, Pin: pinID}
		}
		return ZeroValue(pin.Pin.Type), nil
	default:
		return "", blueprint.Contractf(blueprint.UnresolvedSource,
			"input %s.%s has an unknown source %s", nodeID, pinID, src)
	}
}

// connected resolves a value flowing from another node's output: a getter
// becomes a storage read, a pure node is rebuilt as a call expression, and
// anything else is read from its result variable.
func (g *Generator) connected(src blueprint.DataSource, inProgress guard) (string, error) {
	source, err := g.node(src.Node)
	if err != nil {
		return "", err
	}

	if strings.HasPrefix(source.NodeType, blueprint.GetterPrefix) {
		name, err := accessorVariable(source.NodeType, blueprint.GetterPrefix)
		if err != nil {
			return "", err
		}
		varType, ok := g.variables[name]
		if !ok {
			return "", undeclaredVariable(name)
		}
		return readCell(name, varType), nil
	}

	if meta, ok := g.meta.Lookup(source.NodeType); ok && meta.Kind == blueprint.PureNode {
		return g.pureExpression(source, meta, inProgress)
	}

	result, ok := g.data.ResultVariable(source.ID)
	if !ok {
		return "", blueprint.Contractf(blueprint.MissingResultVariable,
			"no variable for source node %q", source.ID)
	}
	return result, nil
}

func (g *Generator) pureExpression(node *blueprint.NodeInstance, meta *blueprint.NodeMetadata, inProgress guard) (string, error) {
	if _, busy := inProgress[node.ID]; busy {
		return "", blueprint.Contractf(blueprint.DataCycle,
			"pure node %q depends on its own value", node.ID)
	}
	inProgress[node.ID] = struct{}{}
	defer delete(inProgress, node.ID)

	args, err := g.arguments(node, meta, inProgress)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s(%s)", meta.Name, strings.Join(args, ", ")), nil
}
