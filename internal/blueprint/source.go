package blueprint

import "fmt"

// SourceKind distinguishes the origins an input pin's value can have.
type SourceKind int

const (
	// SourceConnection: the value flows from another node's output pin.
	SourceConnection SourceKind = iota + 1
	// SourceConstant: the value is literal text supplied with the graph.
	SourceConstant
	// SourceDefault: the value is the zero value of the pin's data kind.
	SourceDefault
)

// DataSource is the bound origin of one input pin.
type DataSource struct {
	Kind SourceKind
	// Node and Pin identify the producer. Set for SourceConnection only.
	Node string
	Pin  string
	// Value is the pre-formatted literal. Set for SourceConstant only.
	Value string
}

// Connected returns a source bound to another node's output pin.
func Connected(node, pin string) DataSource {
	return DataSource{Kind: SourceConnection, Node: node, Pin: pin}
}

// Constant returns a source bound to literal text.
func Constant(text string) DataSource {
	return DataSource{Kind: SourceConstant, Value: text}
}

// Default returns a source that resolves to the pin's zero value.
func Default() DataSource {
	return DataSource{Kind: SourceDefault}
}

func (s DataSource) String() string {
	switch s.Kind {
	case SourceConnection:
		return fmt.Sprintf("connection(%s.%s)", s.Node, s.Pin)
	case SourceConstant:
		return fmt.Sprintf("constant(%s)", s.Value)
	case SourceDefault:
		return "default"
	default:
		return "none"
	}
}
