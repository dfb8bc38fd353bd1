package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/ctxlog"
	"github.com/specialistvlad/blueprintc/internal/inliner"
)

// Validate performs a parity check between each node's metadata and its
// template. Control-flow templates may only reference declared exec outputs
// and parameters; other kinds must not carry a template at all.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for _, nodeType := range r.Types() {
		meta := r.nodes[nodeType]
		if meta == nil {
			errs = append(errs, fmt.Sprintf("node '%s': metadata is nil", nodeType))
			continue
		}
		if meta.Name == "" {
			errs = append(errs, fmt.Sprintf("node '%s': function name is empty", nodeType))
		}
		errs = append(errs, checkParams(nodeType, meta)...)

		if meta.Kind != blueprint.ControlFlowNode {
			if meta.Template != "" {
				errs = append(errs, fmt.Sprintf("node '%s': only control_flow nodes may define a template, got kind %s", nodeType, meta.Kind))
			}
			if len(meta.ExecOutputs) > 0 {
				errs = append(errs, fmt.Sprintf("node '%s': only control_flow nodes may declare exec outputs, got kind %s", nodeType, meta.Kind))
			}
			continue
		}

		if meta.Template == "" {
			errs = append(errs, fmt.Sprintf("node '%s': control_flow node has no template", nodeType))
			continue
		}
		refs, err := inliner.References(meta.Template)
		if err != nil {
			errs = append(errs, fmt.Sprintf("node '%s': %v", nodeType, err))
			continue
		}
		declaredExec := make(map[string]struct{}, len(meta.ExecOutputs))
		for _, name := range meta.ExecOutputs {
			declaredExec[name] = struct{}{}
		}
		referencedExec := make(map[string]struct{}, len(refs.Execs))
		for _, name := range refs.Execs {
			referencedExec[name] = struct{}{}
			if _, ok := declaredExec[name]; !ok {
				errs = append(errs, fmt.Sprintf("node '%s': template references exec output '%s' which is not declared", nodeType, name))
			}
		}
		for _, name := range meta.ExecOutputs {
			if _, ok := referencedExec[name]; !ok {
				errs = append(errs, fmt.Sprintf("node '%s': exec output '%s' is never placed by the template", nodeType, name))
			}
		}
		for _, name := range refs.Params {
			if _, ok := meta.Param(name); !ok {
				errs = append(errs, fmt.Sprintf("node '%s': template references parameter '%s' which is not declared", nodeType, name))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation successful.", "node_types", len(r.nodes))
	return nil
}

func checkParams(nodeType string, meta *blueprint.NodeMetadata) []string {
	var errs []string
	seen := make(map[string]struct{}, len(meta.Params))
	for _, p := range meta.Params {
		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("node '%s': parameter with empty name", nodeType))
			continue
		}
		if _, dup := seen[p.Name]; dup {
			errs = append(errs, fmt.Sprintf("node '%s': parameter '%s' declared more than once", nodeType, p.Name))
		}
		seen[p.Name] = struct{}{}
	}
	return errs
}
