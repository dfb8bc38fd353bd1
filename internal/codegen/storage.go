package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
)

// copyTypes are stored in a Cell and read by value. Every other type lives
// in a RefCell and is cloned out on read.
var copyTypes = map[string]struct{}{
	"i8": {}, "i16": {}, "i32": {}, "i64": {},
	"u8": {}, "u16": {}, "u32": {}, "u64": {},
	"isize": {}, "usize": {},
	"f32": {}, "f64": {},
	"bool": {}, "char": {},
}

// IsCopyType reports whether a variable of the given Rust type uses plain
// copy storage.
func IsCopyType(typeName string) bool {
	_, ok := copyTypes[strings.TrimSpace(typeName)]
	return ok
}

// CellName is the identifier of a variable's storage cell.
func CellName(variable string) string {
	return strings.ToUpper(variable)
}

func readCell(variable, varType string) string {
	if IsCopyType(varType) {
		return fmt.Sprintf("%s.with(|v| v.get())", CellName(variable))
	}
	return fmt.Sprintf("%s.with(|v| v.borrow().clone())", CellName(variable))
}

func writeCell(variable, varType, expr string) string {
	if IsCopyType(varType) {
		return fmt.Sprintf("%s.with(|v| v.set(%s));", CellName(variable), expr)
	}
	return fmt.Sprintf("%s.with(|v| *v.borrow_mut() = %s);", CellName(variable), expr)
}

// writeStorageDeclarations emits the thread_local! block holding one cell
// per declared variable, in name order.
func (g *Generator) writeStorageDeclarations(b *strings.Builder) {
	names := make([]string, 0, len(g.variables))
	for name := range g.variables {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("thread_local! {\n")
	for _, name := range names {
		typ := g.variables[name]
		cell := "std::cell::RefCell"
		if IsCopyType(typ) {
			cell = "std::cell::Cell"
		}
		writeLine(b, 1, fmt.Sprintf("static %s: %s<%s> = %s::new(Default::default());", CellName(name), cell, typ, cell))
	}
	b.WriteString("}\n\n")
}

// accessorVariable extracts the variable a get_/set_ node type refers to.
func accessorVariable(nodeType, prefix string) (string, error) {
	name, ok := blueprint.VariableName(nodeType, prefix)
	if !ok || name == "" {
		return "", blueprint.Contractf(blueprint.MalformedAccessor,
			"invalid accessor node type %q", nodeType)
	}
	return name, nil
}

// checkAccessors fails on the first getter or setter, in node ID order,
// whose variable is malformed or undeclared. Unreached accessors count too.
func (g *Generator) checkAccessors() error {
	for _, id := range g.graph.SortedIDs() {
		nodeType := g.graph.Nodes[id].NodeType
		var prefix string
		switch {
		case strings.HasPrefix(nodeType, blueprint.GetterPrefix):
			prefix = blueprint.GetterPrefix
		case strings.HasPrefix(nodeType, blueprint.SetterPrefix):
			prefix = blueprint.SetterPrefix
		default:
			continue
		}
		name, err := accessorVariable(nodeType, prefix)
		if err != nil {
			return fmt.Errorf("node %s: %w", id, err)
		}
		if _, ok := g.variables[name]; !ok {
			return fmt.Errorf("node %s: %w", id, undeclaredVariable(name))
		}
	}
	return nil
}

func undeclaredVariable(name string) error {
	return blueprint.Contractf(blueprint.UndeclaredVariable, "variable %q not found", name)
}
