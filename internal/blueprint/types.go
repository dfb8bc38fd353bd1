package blueprint

import (
	"fmt"
	"sort"
	"strings"
)

// DataKind is the data category carried by a pin.
type DataKind int

const (
	// KindExecution marks a control-flow pin. Execution edges order statements.
	KindExecution DataKind = iota
	KindNumber
	KindString
	KindBoolean
	KindVector2
	KindVector3
	KindColor
	// KindAny accepts any value; its zero value is the target language's
	// generic default expression.
	KindAny
	// KindTyped carries an explicit target-language type in DataType.TypeName.
	KindTyped
)

var kindNames = map[DataKind]string{
	KindExecution: "exec",
	KindNumber:    "number",
	KindString:    "string",
	KindBoolean:   "bool",
	KindVector2:   "vec2",
	KindVector3:   "vec3",
	KindColor:     "color",
	KindAny:       "any",
	KindTyped:     "typed",
}

// String returns the keyword used for the kind in graph files.
func (k DataKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("DataKind(%d)", int(k))
}

// ParseDataKind maps a keyword such as "exec" or "vec3" to its DataKind.
// "typed" is not accepted here because it needs a type argument.
func ParseDataKind(keyword string) (DataKind, error) {
	for kind, name := range kindNames {
		if name == keyword && kind != KindTyped {
			return kind, nil
		}
	}
	return KindAny, fmt.Errorf("unknown data kind %q", keyword)
}

// DataType is the declared type of a pin.
type DataType struct {
	Kind DataKind
	// TypeName is the target-language type text. Only set for KindTyped.
	TypeName string
}

// Typed returns a DataType for an explicit target-language type.
func Typed(typeName string) DataType {
	return DataType{Kind: KindTyped, TypeName: typeName}
}

// Exec is the DataType of an execution pin.
var Exec = DataType{Kind: KindExecution}

func (t DataType) String() string {
	if t.Kind == KindTyped {
		return fmt.Sprintf("typed(%q)", t.TypeName)
	}
	return t.Kind.String()
}

// Pin is the definition half of a pin: what it is called and what it carries.
type Pin struct {
	Name string
	Type DataType
}

// IsExecution reports whether the pin carries control flow rather than data.
func (p Pin) IsExecution() bool {
	return p.Type.Kind == KindExecution
}

// PinInstance is a pin placed on a node. ID is unique within its node.
type PinInstance struct {
	ID  string
	Pin Pin
}

// NodeInstance is one node placed in a graph.
type NodeInstance struct {
	ID       string
	NodeType string
	Inputs   []PinInstance
	Outputs  []PinInstance
	// Literals holds pre-formatted constant text for unconnected input pins,
	// keyed by input pin ID.
	Literals map[string]string
}

// Input returns the input pin with the given ID.
func (n *NodeInstance) Input(pinID string) (*PinInstance, bool) {
	for i := range n.Inputs {
		if n.Inputs[i].ID == pinID {
			return &n.Inputs[i], true
		}
	}
	return nil, false
}

// Output returns the output pin with the given ID.
func (n *NodeInstance) Output(pinID string) (*PinInstance, bool) {
	for i := range n.Outputs {
		if n.Outputs[i].ID == pinID {
			return &n.Outputs[i], true
		}
	}
	return nil, false
}

// InputByName returns the first input pin whose definition is named name.
func (n *NodeInstance) InputByName(name string) (*PinInstance, bool) {
	for i := range n.Inputs {
		if n.Inputs[i].Pin.Name == name {
			return &n.Inputs[i], true
		}
	}
	return nil, false
}

// OutputByName returns the first output pin whose definition is named name.
func (n *NodeInstance) OutputByName(name string) (*PinInstance, bool) {
	for i := range n.Outputs {
		if n.Outputs[i].Pin.Name == name {
			return &n.Outputs[i], true
		}
	}
	return nil, false
}

// ExecOutputs returns the execution output pins in pin order.
func (n *NodeInstance) ExecOutputs() []PinInstance {
	var pins []PinInstance
	for _, p := range n.Outputs {
		if p.Pin.IsExecution() {
			pins = append(pins, p)
		}
	}
	return pins
}

// Connection is a directed edge from an output pin to an input pin. Whether it
// is an execution edge or a data edge follows from the source pin's kind.
type Connection struct {
	FromNode string
	FromPin  string
	ToNode   string
	ToPin    string
}

func (c Connection) String() string {
	return fmt.Sprintf("%s.%s -> %s.%s", c.FromNode, c.FromPin, c.ToNode, c.ToPin)
}

// Graph is a blueprint: a set of uniquely identified nodes and the edges
// between their pins.
type Graph struct {
	Name        string
	Nodes       map[string]*NodeInstance
	Connections []Connection
}

// NewGraph creates an empty graph.
func NewGraph(name string) *Graph {
	return &Graph{
		Name:  name,
		Nodes: make(map[string]*NodeInstance),
	}
}

// AddNode adds a node. Node IDs must be unique and pin IDs unique per node.
func (g *Graph) AddNode(n *NodeInstance) error {
	if n == nil || n.ID == "" {
		return &StructuralError{Msg: "node must have a non-empty id"}
	}
	if _, exists := g.Nodes[n.ID]; exists {
		return &StructuralError{Msg: fmt.Sprintf("duplicate node id %q", n.ID)}
	}
	seen := make(map[string]struct{}, len(n.Inputs)+len(n.Outputs))
	for _, pins := range [][]PinInstance{n.Inputs, n.Outputs} {
		for _, p := range pins {
			if _, dup := seen[p.ID]; dup {
				return &StructuralError{Msg: fmt.Sprintf("duplicate pin id %q on node %q", p.ID, n.ID)}
			}
			seen[p.ID] = struct{}{}
		}
	}
	g.Nodes[n.ID] = n
	return nil
}

// Connect adds an edge between two existing pins, addressed by pin ID.
func (g *Graph) Connect(fromNode, fromPin, toNode, toPin string) error {
	src, ok := g.Nodes[fromNode]
	if !ok {
		return &NodeNotFoundError{ID: fromNode}
	}
	if _, ok := src.Output(fromPin); !ok {
		return &PinNotFoundError{Node: fromNode, Pin: fromPin}
	}
	dst, ok := g.Nodes[toNode]
	if !ok {
		return &NodeNotFoundError{ID: toNode}
	}
	if _, ok := dst.Input(toPin); !ok {
		return &PinNotFoundError{Node: toNode, Pin: toPin}
	}
	g.Connections = append(g.Connections, Connection{
		FromNode: fromNode,
		FromPin:  fromPin,
		ToNode:   toNode,
		ToPin:    toPin,
	})
	return nil
}

// Node returns the node with the given ID.
func (g *Graph) Node(id string) (*NodeInstance, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// SortedIDs returns every node ID in lexicographic order. All enumeration
// that affects generated output goes through here.
func (g *Graph) SortedIDs() []string {
	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Clone returns a deep copy of the graph.
func (g *Graph) Clone() *Graph {
	out := &Graph{
		Name:        g.Name,
		Nodes:       make(map[string]*NodeInstance, len(g.Nodes)),
		Connections: append([]Connection(nil), g.Connections...),
	}
	for id, n := range g.Nodes {
		cp := &NodeInstance{
			ID:       n.ID,
			NodeType: n.NodeType,
			Inputs:   append([]PinInstance(nil), n.Inputs...),
			Outputs:  append([]PinInstance(nil), n.Outputs...),
		}
		if n.Literals != nil {
			cp.Literals = make(map[string]string, len(n.Literals))
			for k, v := range n.Literals {
				cp.Literals[k] = v
			}
		}
		out.Nodes[id] = cp
	}
	return out
}

// VariableName extracts the variable name from a synthetic accessor node
// type such as "get_counter" or "set_counter". ok is false when nodeType does
// not carry the prefix.
func VariableName(nodeType, prefix string) (name string, ok bool) {
	if !strings.HasPrefix(nodeType, prefix) {
		return "", false
	}
	return strings.TrimPrefix(nodeType, prefix), true
}

// Accessor prefixes for synthetic variable nodes.
const (
	GetterPrefix = "get_"
	SetterPrefix = "set_"
)
