package codegen

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/inliner"
)

// emitFunction emits a call statement, binding the result when the node type
// returns a value, and then continues the chain.
func (w *walker) emitFunction(b *strings.Builder, node *blueprint.NodeInstance, meta *blueprint.NodeMetadata, indent int) error {
	args, err := w.gen.arguments(node, meta, newGuard())
	if err != nil {
		return err
	}

	call := fmt.Sprintf("%s(%s)", meta.Name, strings.Join(args, ", "))
	if meta.HasReturn() {
		result, ok := w.gen.data.ResultVariable(node.ID)
		if !ok {
			return blueprint.Contractf(blueprint.MissingResultVariable,
				"no result variable for node %q", node.ID)
		}
		writeLine(b, indent, fmt.Sprintf("let %s = %s;", result, call))
	} else {
		writeLine(b, indent, call+";")
	}

	return w.continueChain(b, node, indent)
}

// emitControlFlow renders every exec output as a branch body, binds the
// parameters, inlines the node type's template and re-indents the result.
func (w *walker) emitControlFlow(b *strings.Builder, node *blueprint.NodeInstance, meta *blueprint.NodeMetadata, indent int) error {
	branches := make(map[string]string)
	for _, pin := range node.ExecOutputs() {
		branch := w.fork()
		var body strings.Builder
		for _, id := range w.gen.router.Downstream(node.ID, pin.ID) {
			if err := branch.emitChain(&body, id, 0); err != nil {
				return err
			}
		}
		branches[pin.Pin.Name] = strings.TrimSpace(body.String())
	}

	params := make(map[string]string, len(meta.Params))
	guard := newGuard()
	for _, p := range meta.Params {
		pin, ok := node.InputByName(p.Name)
		if !ok {
			return unboundParameter(p.Name, node.ID)
		}
		expr, err := w.gen.inputExpression(node.ID, pin.ID, guard)
		if err != nil {
			return err
		}
		params[p.Name] = expr
	}

	body, err := inliner.Inline(meta.Template, branches, params)
	if err != nil {
		return fmt.Errorf("inlining %s on node %q: %w", meta.Name, node.ID, err)
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		writeLine(b, indent, line)
	}
	return nil
}

// emitSetter writes the "value" input into the variable's storage cell and
// continues the chain.
func (w *walker) emitSetter(b *strings.Builder, node *blueprint.NodeInstance, indent int) error {
	name, err := accessorVariable(node.NodeType, blueprint.SetterPrefix)
	if err != nil {
		return err
	}
	varType, ok := w.gen.variables[name]
	if !ok {
		return undeclaredVariable(name)
	}

	pin, ok := node.InputByName(blueprint.ValuePin)
	if !ok {
		return unboundParameter(blueprint.ValuePin, node.ID)
	}
	expr, err := w.gen.inputExpression(node.ID, pin.ID, newGuard())
	if err != nil {
		return err
	}

	writeLine(b, indent, writeCell(name, varType, expr))
	return w.continueChain(b, node, indent)
}

func unboundParameter(param, nodeID string) error {
	return blueprint.Contractf(blueprint.UnboundParameter,
		"input pin not found for parameter %q on node %q", param, nodeID)
}
