package blueprint

import "fmt"

// NodeKind classifies how a node type is compiled.
type NodeKind int

const (
	// EventNode is a graph entry point and becomes one free function.
	EventNode NodeKind = iota + 1
	// PureNode has no side effects and is inlined where its value is used.
	PureNode
	// FunctionNode is emitted as a call statement in an execution chain.
	FunctionNode
	// ControlFlowNode is emitted by inlining its template body.
	ControlFlowNode
)

func (k NodeKind) String() string {
	switch k {
	case EventNode:
		return "event"
	case PureNode:
		return "pure"
	case FunctionNode:
		return "function"
	case ControlFlowNode:
		return "control_flow"
	default:
		return "unknown"
	}
}

// ParseNodeKind maps a manifest keyword to a NodeKind.
func ParseNodeKind(s string) (NodeKind, error) {
	switch s {
	case "event":
		return EventNode, nil
	case "pure":
		return PureNode, nil
	case "function", "fn":
		return FunctionNode, nil
	case "control_flow":
		return ControlFlowNode, nil
	default:
		return 0, fmt.Errorf("unknown node kind %q", s)
	}
}

// Param is one declared parameter of a node type.
type Param struct {
	Name string
	// Type is the target-language type text, e.g. "f64" or "String".
	Type string
}

// NodeMetadata describes a node type.
type NodeMetadata struct {
	Kind NodeKind
	// Name is the display name and becomes the emitted identifier.
	Name        string
	Description string
	Params      []Param
	// ReturnType is empty when the node type returns nothing.
	ReturnType string
	Imports    []string
	// Template is the body inlined for control-flow nodes. It references
	// ${exec.<output>} and ${param.<name>} placeholders.
	Template string
	// ExecOutputs names the execution outputs of a control-flow node type.
	ExecOutputs []string
}

// HasReturn reports whether the node type produces a value.
func (m *NodeMetadata) HasReturn() bool {
	return m.ReturnType != ""
}

// Param returns the declared parameter with the given name.
func (m *NodeMetadata) Param(name string) (Param, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Param{}, false
}
