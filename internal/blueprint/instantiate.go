package blueprint

// Pin names given to instantiated nodes.
const (
	ExecInPin  = "exec"
	ExecOutPin = "then"
	ResultPin  = "result"
	ValuePin   = "value"
)

// PinID is the conventional pin id for a pin on a node.
func PinID(nodeID, pinName string) string {
	return nodeID + "_" + pinName
}

// DataTypeFor maps a target-language type to the pin data type an editor
// would show for it.
func DataTypeFor(typeName string) DataType {
	switch typeName {
	case "f32", "f64":
		return DataType{Kind: KindNumber}
	case "bool":
		return DataType{Kind: KindBoolean}
	case "String":
		return DataType{Kind: KindString}
	case "":
		return DataType{Kind: KindAny}
	default:
		return Typed(typeName)
	}
}

type pinSet struct {
	nodeID string
	used   map[string]struct{}
}

func (s *pinSet) pin(name string, t DataType) PinInstance {
	id := PinID(s.nodeID, name)
	if _, taken := s.used[id]; taken {
		id += "_out"
	}
	s.used[id] = struct{}{}
	return PinInstance{ID: id, Pin: Pin{Name: name, Type: t}}
}

// Instantiate builds a node of the given type whose pins follow meta:
// function and control-flow nodes take an execution input, every parameter
// becomes a data input, control-flow nodes expose one execution output per
// declared branch, functions and events expose a single execution output, and
// a return type adds a "result" output.
func Instantiate(id, nodeType string, meta *NodeMetadata) *NodeInstance {
	n := &NodeInstance{ID: id, NodeType: nodeType}
	pins := &pinSet{nodeID: id, used: make(map[string]struct{})}

	if meta.Kind == FunctionNode || meta.Kind == ControlFlowNode {
		n.Inputs = append(n.Inputs, pins.pin(ExecInPin, Exec))
	}
	for _, p := range meta.Params {
		n.Inputs = append(n.Inputs, pins.pin(p.Name, DataTypeFor(p.Type)))
	}

	switch meta.Kind {
	case EventNode, FunctionNode:
		n.Outputs = append(n.Outputs, pins.pin(ExecOutPin, Exec))
	case ControlFlowNode:
		for _, name := range meta.ExecOutputs {
			n.Outputs = append(n.Outputs, pins.pin(name, Exec))
		}
	}
	if meta.HasReturn() {
		n.Outputs = append(n.Outputs, pins.pin(ResultPin, DataTypeFor(meta.ReturnType)))
	}
	return n
}

// InstantiateGetter builds a variable read node: a single "value" output.
func InstantiateGetter(id, variable, varType string) *NodeInstance {
	pins := &pinSet{nodeID: id, used: make(map[string]struct{})}
	return &NodeInstance{
		ID:       id,
		NodeType: GetterPrefix + variable,
		Outputs:  []PinInstance{pins.pin(ValuePin, DataTypeFor(varType))},
	}
}

// InstantiateSetter builds a variable write node: execution in and out plus a
// "value" input typed like the variable.
func InstantiateSetter(id, variable, varType string) *NodeInstance {
	pins := &pinSet{nodeID: id, used: make(map[string]struct{})}
	return &NodeInstance{
		ID:       id,
		NodeType: SetterPrefix + variable,
		Inputs: []PinInstance{
			pins.pin(ExecInPin, Exec),
			pins.pin(ValuePin, DataTypeFor(varType)),
		},
		Outputs: []PinInstance{pins.pin(ExecOutPin, Exec)},
	}
}
