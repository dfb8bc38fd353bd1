package hcl_adapter

import (
	"github.com/hashicorp/hcl/v2"
)

// fileRoot is used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Nodes      []*NodeDefinition      `hcl:"node,block"`
	Blueprints []*BlueprintDefinition `hcl:"blueprint,block"`
	Remain     hcl.Body               `hcl:",remain"`
}

// --- Node library schemas ---

// NodeDefinition is a `node` block in a library manifest.
type NodeDefinition struct {
	Type         string             `hcl:"type,label"`
	Kind         string             `hcl:"kind"`
	Name         string             `hcl:"name,optional"`
	Description  string             `hcl:"description,optional"`
	Imports      []string           `hcl:"imports,optional"`
	Returns      string             `hcl:"returns,optional"`
	ExecOutputs  []string           `hcl:"exec_outputs,optional"`
	TemplateFile string             `hcl:"template_file,optional"`
	Params       []*ParamDefinition `hcl:"param,block"`
}

// ParamDefinition declares one parameter of a node type.
type ParamDefinition struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type"`
}

// --- Blueprint schemas ---

// BlueprintDefinition is a `blueprint` block: one graph.
type BlueprintDefinition struct {
	Name        string                    `hcl:"name,label"`
	Variables   []*VariableDefinition     `hcl:"variable,block"`
	Nodes       []*NodeInstanceDefinition `hcl:"node,block"`
	Connections []*ConnectDefinition      `hcl:"connect,block"`
}

// VariableDefinition declares a class-scoped variable and its Rust type.
type VariableDefinition struct {
	Name string `hcl:"name,label"`
	Type string `hcl:"type"`
}

// NodeInstanceDefinition places one node in a blueprint. Its pins come from
// the node type's metadata; input and output blocks bind literals to those
// pins, retype them, or add pins the metadata does not know about.
type NodeInstanceDefinition struct {
	ID      string           `hcl:"id,label"`
	Type    string           `hcl:"type"`
	Inputs  []*PinDefinition `hcl:"input,block"`
	Outputs []*PinDefinition `hcl:"output,block"`
}

// PinDefinition describes one pin on a node instance.
type PinDefinition struct {
	Name string `hcl:"name,label"`
	// ID overrides the conventional <node>_<pin> pin ID.
	ID string `hcl:"id,optional"`
	// Kind is a data kind keyword such as `number`, or `typed("Vec<u8>")`.
	Kind hcl.Expression `hcl:"kind,optional"`
	// Value is a literal HCL value formatted into Rust.
	Value hcl.Expression `hcl:"value,optional"`
	// Literal is Rust source used verbatim. It takes precedence over Value.
	Literal string `hcl:"literal,optional"`
}

// ConnectDefinition wires an output pin to an input pin.
type ConnectDefinition struct {
	From hcl.Expression `hcl:"from"`
	To   hcl.Expression `hcl:"to"`
}
