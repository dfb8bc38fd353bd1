// Package inliner substitutes the placeholders of a control-flow template.
//
// Template bodies are HCL templates. Execution branches are referenced as
// ${exec.<output>} and parameters as ${param.<name>}; every other character
// is emitted verbatim. Evaluation goes through hclsyntax, so templates may
// also use HCL directives such as %{ if ... }.
package inliner

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/zclconf/go-cty/cty"
	"golang.org/x/text/unicode/norm"
)

// Placeholder roots.
const (
	ExecRoot  = "exec"
	ParamRoot = "param"
)

// Inline renders body with every ${exec.X} replaced by execs[X] and every
// ${param.Y} replaced by params[Y]. A placeholder with no binding is a
// template_placeholder contract error; unused bindings are ignored.
//
// When a placeholder stands alone after leading whitespace, continuation
// lines of a multi-line binding are indented to the placeholder's column.
func Inline(body string, execs, params map[string]string) (string, error) {
	expr, diags := parse(body)
	if diags.HasErrors() {
		return "", blueprint.Contractf(blueprint.TemplatePlaceholder, "invalid template: %s", diags.Error())
	}

	indents := placeholderIndents(body, expr)
	b := &binder{marker: uniqueMarker(body, execs, params)}
	evalCtx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			ExecRoot:  b.bind(ExecRoot, execs, indents[ExecRoot]),
			ParamRoot: b.bind(ParamRoot, params, indents[ParamRoot]),
		},
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", blueprint.Contractf(blueprint.TemplatePlaceholder, "%s", describe(diags))
	}
	if val.IsNull() || !val.Type().Equals(cty.String) {
		return "", blueprint.Contractf(blueprint.TemplatePlaceholder, "template did not render to text")
	}
	return b.restore(val.AsString()), nil
}

// Refs lists the placeholders a template references, sorted and deduplicated.
type Refs struct {
	Execs  []string
	Params []string
}

// References parses body and reports the placeholders it uses. Any
// reference outside the exec and param roots is an error.
func References(body string) (Refs, error) {
	expr, diags := parse(body)
	if diags.HasErrors() {
		return Refs{}, fmt.Errorf("invalid template: %w", diags)
	}

	execs := make(map[string]struct{})
	params := make(map[string]struct{})
	for _, traversal := range expr.Variables() {
		root := traversal.RootName()
		if len(traversal) < 2 {
			return Refs{}, fmt.Errorf("placeholder %q must name a member, e.g. %s.then", root, root)
		}
		name, ok := stepName(traversal[1])
		if !ok {
			return Refs{}, fmt.Errorf("placeholder under %q must be a plain name", root)
		}
		switch root {
		case ExecRoot:
			execs[name] = struct{}{}
		case ParamRoot:
			params[name] = struct{}{}
		default:
			return Refs{}, fmt.Errorf("unknown placeholder root %q; use %s or %s", root, ExecRoot, ParamRoot)
		}
	}
	return Refs{Execs: sortedKeys(execs), Params: sortedKeys(params)}, nil
}

func parse(body string) (hclsyntax.Expression, hcl.Diagnostics) {
	return hclsyntax.ParseTemplate([]byte(body), "template", hcl.InitialPos)
}

// binder builds the cty objects a template is evaluated against. cty
// normalizes strings to NFC, so text that is not already NFC is bound as an
// opaque marker token and swapped back after evaluation.
type binder struct {
	marker string
	swaps  []string
}

func (b *binder) bind(root string, m map[string]string, indents map[string]string) cty.Value {
	if len(m) == 0 {
		return cty.EmptyObjectVal
	}
	vals := make(map[string]cty.Value, len(m))
	for k, v := range m {
		text := indentContinuation(v, indents[k])
		if !norm.NFC.IsNormalString(text) {
			token := b.marker + root + "." + k + b.marker
			b.swaps = append(b.swaps, token, text)
			text = token
		}
		vals[k] = cty.StringVal(text)
	}
	return cty.ObjectVal(vals)
}

func (b *binder) restore(out string) string {
	if len(b.swaps) == 0 {
		return out
	}
	return strings.NewReplacer(b.swaps...).Replace(out)
}

// uniqueMarker returns a run of unit separators found in neither the body
// nor any bound text.
func uniqueMarker(body string, maps ...map[string]string) string {
	marker := "\x1f"
	for {
		clash := strings.Contains(body, marker)
		for _, m := range maps {
			for _, v := range m {
				clash = clash || strings.Contains(v, marker)
			}
		}
		if !clash {
			return marker
		}
		marker += "\x1f"
	}
}

// placeholderIndents records, per root and name, the whitespace preceding
// the first standalone occurrence of a placeholder on its line.
func placeholderIndents(body string, expr hclsyntax.Expression) map[string]map[string]string {
	out := map[string]map[string]string{ExecRoot: {}, ParamRoot: {}}
	for _, traversal := range expr.Variables() {
		if len(traversal) < 2 {
			continue
		}
		names, ok := out[traversal.RootName()]
		if !ok {
			continue
		}
		name, ok := stepName(traversal[1])
		if !ok {
			continue
		}
		if _, seen := names[name]; seen {
			continue
		}
		start := traversal.SourceRange().Start.Byte
		if start > len(body) {
			continue
		}
		lineStart := strings.LastIndexByte(body[:start], '\n') + 1
		lead := strings.TrimRight(body[lineStart:start], " \t")
		lead = strings.TrimSuffix(strings.TrimSuffix(lead, "~"), "${")
		if strings.TrimLeft(lead, " \t") == "" {
			names[name] = lead
		}
	}
	return out
}

func indentContinuation(text, indent string) string {
	if indent == "" || !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			lines[i] = indent + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}

func stepName(step hcl.Traverser) (string, bool) {
	switch s := step.(type) {
	case hcl.TraverseAttr:
		return s.Name, true
	case hcl.TraverseIndex:
		if s.Key.Type().Equals(cty.String) && s.Key.IsKnown() && !s.Key.IsNull() {
			return s.Key.AsString(), true
		}
	}
	return "", false
}

// describe flattens diagnostics into one line, keeping the detail that names
// the missing placeholder.
func describe(diags hcl.Diagnostics) string {
	parts := make([]string, 0, len(diags))
	for _, d := range diags {
		if d.Severity != hcl.DiagError {
			continue
		}
		if d.Detail != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", d.Summary, d.Detail))
		} else {
			parts = append(parts, d.Summary)
		}
	}
	return strings.Join(parts, "; ")
}

func sortedKeys(m map[string]struct{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
