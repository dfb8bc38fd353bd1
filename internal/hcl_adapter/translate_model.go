// This file translates the HCL schema structs into the format-agnostic
// configuration model.

package hcl_adapter

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/config"
	"github.com/specialistvlad/blueprintc/internal/ctxlog"
	"github.com/specialistvlad/blueprintc/internal/pinref"
)

// translateNodeDefinition converts a library `node` block into metadata.
func (l *Loader) translateNodeDefinition(ctx context.Context, file sourceFile, def *NodeDefinition) (*blueprint.NodeMetadata, error) {
	logger := ctxlog.FromContext(ctx).With("node_type", def.Type, "file", file.display)
	logger.Debug("Translating HCL node definition.")

	kind, err := blueprint.ParseNodeKind(def.Kind)
	if err != nil {
		return nil, fmt.Errorf("in node '%s' (%s): %w", def.Type, file.display, err)
	}

	meta := &blueprint.NodeMetadata{
		Kind:        kind,
		Name:        def.Name,
		Description: def.Description,
		ReturnType:  def.Returns,
		Imports:     def.Imports,
		ExecOutputs: def.ExecOutputs,
	}
	if meta.Name == "" {
		meta.Name = def.Type
	}
	for _, p := range def.Params {
		meta.Params = append(meta.Params, blueprint.Param{Name: p.Name, Type: p.Type})
	}

	if def.TemplateFile != "" {
		templatePath := path.Join(path.Dir(file.name), def.TemplateFile)
		body, err := fs.ReadFile(file.fsys, templatePath)
		if err != nil {
			return nil, fmt.Errorf("in node '%s' (%s): reading template: %w", def.Type, file.display, err)
		}
		meta.Template = strings.TrimRight(string(body), "\r\n")
		logger.Debug("Loaded node template.", "template_file", templatePath, "bytes", len(body))
	}
	return meta, nil
}

// translateBlueprint builds the graph of one `blueprint` block.
func (l *Loader) translateBlueprint(ctx context.Context, provider MetadataProvider, file sourceFile, def *BlueprintDefinition) (*config.Blueprint, error) {
	logger := ctxlog.FromContext(ctx).With("blueprint", def.Name, "file", file.display)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Translating HCL blueprint.")

	bp := &config.Blueprint{
		Graph:     blueprint.NewGraph(def.Name),
		Variables: make(map[string]string, len(def.Variables)),
		Source:    file.display,
	}
	for _, v := range def.Variables {
		if _, dup := bp.Variables[v.Name]; dup {
			return nil, fmt.Errorf("in blueprint '%s': variable '%s' is declared more than once", def.Name, v.Name)
		}
		bp.Variables[v.Name] = v.Type
	}

	for _, nd := range def.Nodes {
		node, err := l.translateNodeInstance(ctx, provider, bp.Variables, nd)
		if err != nil {
			return nil, fmt.Errorf("in blueprint '%s', node '%s': %w", def.Name, nd.ID, err)
		}
		if err := bp.Graph.AddNode(node); err != nil {
			return nil, fmt.Errorf("in blueprint '%s': %w", def.Name, err)
		}
	}

	for _, cd := range def.Connections {
		if err := connect(bp.Graph, cd); err != nil {
			return nil, fmt.Errorf("in blueprint '%s': %w", def.Name, err)
		}
	}

	logger.Debug("Blueprint translated.", "nodes", len(bp.Graph.Nodes), "connections", len(bp.Graph.Connections), "variables", len(bp.Variables))
	return bp, nil
}

// translateNodeInstance instantiates a node from its type's metadata, then
// applies the instance's pin blocks on top.
func (l *Loader) translateNodeInstance(ctx context.Context, provider MetadataProvider, vars map[string]string, nd *NodeInstanceDefinition) (*blueprint.NodeInstance, error) {
	var node *blueprint.NodeInstance
	if name, ok := blueprint.VariableName(nd.Type, blueprint.GetterPrefix); ok {
		node = blueprint.InstantiateGetter(nd.ID, name, vars[name])
	} else if name, ok := blueprint.VariableName(nd.Type, blueprint.SetterPrefix); ok {
		node = blueprint.InstantiateSetter(nd.ID, name, vars[name])
	} else if meta, ok := provider.Lookup(nd.Type); ok {
		node = blueprint.Instantiate(nd.ID, nd.Type, meta)
	} else {
		ctxlog.FromContext(ctx).Debug("Node type is not in any library; pins must be declared.", "node", nd.ID, "type", nd.Type)
		node = &blueprint.NodeInstance{ID: nd.ID, NodeType: nd.Type}
	}

	for _, pd := range nd.Inputs {
		idx, err := applyPin(ctx, node, &node.Inputs, pd)
		if err != nil {
			return nil, err
		}
		if err := bindLiteral(ctx, node, node.Inputs[idx], pd); err != nil {
			return nil, err
		}
	}
	for _, pd := range nd.Outputs {
		if pd.Literal != "" || isExprDefined(ctx, pd.Value, "value") {
			return nil, fmt.Errorf("output '%s' cannot carry a value", pd.Name)
		}
		if _, err := applyPin(ctx, node, &node.Outputs, pd); err != nil {
			return nil, err
		}
	}
	return node, nil
}

// applyPin finds the pin pd refers to, retyping or renaming it as asked, or
// appends a new pin when the node type does not define one. It returns the
// pin's index in pins.
func applyPin(ctx context.Context, node *blueprint.NodeInstance, pins *[]blueprint.PinInstance, pd *PinDefinition) (int, error) {
	idx := -1
	for i, p := range *pins {
		if p.Pin.Name == pd.Name {
			idx = i
			break
		}
	}

	hasKind := isExprDefined(ctx, pd.Kind, "kind")
	var pinType blueprint.DataType
	if hasKind {
		t, err := kindExprToDataType(ctx, pd.Kind)
		if err != nil {
			return 0, fmt.Errorf("pin '%s': %w", pd.Name, err)
		}
		pinType = t
	}

	if idx < 0 {
		if !hasKind {
			return 0, fmt.Errorf("pin '%s' is not defined by node type '%s'; declare its kind", pd.Name, node.NodeType)
		}
		id := pd.ID
		if id == "" {
			id = blueprint.PinID(node.ID, pd.Name)
		}
		*pins = append(*pins, blueprint.PinInstance{ID: id, Pin: blueprint.Pin{Name: pd.Name, Type: pinType}})
		return len(*pins) - 1, nil
	}

	if hasKind {
		(*pins)[idx].Pin.Type = pinType
	}
	if pd.ID != "" {
		(*pins)[idx].ID = pd.ID
	}
	return idx, nil
}

// bindLiteral records constant text for an input pin.
func bindLiteral(ctx context.Context, node *blueprint.NodeInstance, pin blueprint.PinInstance, pd *PinDefinition) error {
	var text string
	switch {
	case pd.Literal != "":
		text = pd.Literal
	case isExprDefined(ctx, pd.Value, "value"):
		val, diags := pd.Value.Value(nil)
		if diags.HasErrors() {
			return fmt.Errorf("input '%s': %w", pd.Name, diags)
		}
		lit, err := rustLiteral(val, pin.Pin.Type)
		if err != nil {
			return diagError(pd.Value.Range(), "Invalid input value", fmt.Sprintf("Input '%s': %s.", pd.Name, err))
		}
		text = lit
	default:
		return nil
	}

	if pin.Pin.IsExecution() {
		return fmt.Errorf("execution input '%s' cannot carry a value", pd.Name)
	}
	if node.Literals == nil {
		node.Literals = make(map[string]string)
	}
	node.Literals[pin.ID] = text
	return nil
}

// connect resolves both endpoints of a connect block and adds the edge.
// Endpoints name pins by name first, then by pin ID.
func connect(g *blueprint.Graph, cd *ConnectDefinition) error {
	fromNode, fromPin, err := endpoint(g, cd.From, "from", (*blueprint.NodeInstance).OutputByName, (*blueprint.NodeInstance).Output)
	if err != nil {
		return err
	}
	toNode, toPin, err := endpoint(g, cd.To, "to", (*blueprint.NodeInstance).InputByName, (*blueprint.NodeInstance).Input)
	if err != nil {
		return err
	}
	return g.Connect(fromNode, fromPin, toNode, toPin)
}

type pinLookup func(*blueprint.NodeInstance, string) (*blueprint.PinInstance, bool)

func endpoint(g *blueprint.Graph, expr hcl.Expression, attr string, byName, byID pinLookup) (string, string, error) {
	raw, err := staticString(expr, "'"+attr+"' endpoint")
	if err != nil {
		return "", "", err
	}
	ep, err := pinref.Parse(raw)
	if err != nil {
		return "", "", diagError(expr.Range(), "Invalid connection endpoint", err.Error())
	}
	node, ok := g.Node(ep.Node)
	if !ok {
		return "", "", diagError(expr.Range(), "Unknown node", fmt.Sprintf("No node %q is declared in this blueprint.", ep.Node))
	}
	if pin, ok := byName(node, ep.Pin); ok {
		return node.ID, pin.ID, nil
	}
	if pin, ok := byID(node, ep.Pin); ok {
		return node.ID, pin.ID, nil
	}
	return "", "", diagError(expr.Range(), "Unknown pin", fmt.Sprintf("Node %q has no %s pin %q.", ep.Node, directionOf(attr), ep.Pin))
}

func directionOf(attr string) string {
	if attr == "from" {
		return "output"
	}
	return "input"
}
