package blueprint

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checks via errors.Is.
var (
	ErrNodeNotFound     = errors.New("node not found")
	ErrMetadataNotFound = errors.New("node metadata not found")
	ErrPinNotFound      = errors.New("pin not found")
	ErrStructural       = errors.New("structural error")
	ErrContract         = errors.New("contract violation")
)

// ErrNoEventNodes is reported when a graph has nothing to compile into.
var ErrNoEventNodes = &StructuralError{
	Msg: "no event nodes found in graph - add a 'main' or 'begin_play' event",
}

// NodeNotFoundError reports a node id that is not part of the graph.
type NodeNotFoundError struct {
	ID string
}

func (e *NodeNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrNodeNotFound, e.ID)
}

func (e *NodeNotFoundError) Unwrap() error { return ErrNodeNotFound }

// MetadataNotFoundError reports a node type the metadata provider does not know.
type MetadataNotFoundError struct {
	NodeType string
}

func (e *MetadataNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMetadataNotFound, e.NodeType)
}

func (e *MetadataNotFoundError) Unwrap() error { return ErrMetadataNotFound }

// PinNotFoundError reports a pin id missing from a node.
type PinNotFoundError struct {
	Node string
	Pin  string
}

func (e *PinNotFoundError) Error() string {
	return fmt.Sprintf("%s: %s.%s", ErrPinNotFound, e.Node, e.Pin)
}

func (e *PinNotFoundError) Unwrap() error { return ErrPinNotFound }

// StructuralError reports a graph whose shape cannot be compiled.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	if e.Msg == "" {
		return ErrStructural.Error()
	}
	return fmt.Sprintf("%s: %s", ErrStructural, e.Msg)
}

func (e *StructuralError) Unwrap() error { return ErrStructural }

// ContractKind names the specific contract a graph or collaborator broke.
type ContractKind string

const (
	UnboundParameter      ContractKind = "unbound_parameter"
	UndeclaredVariable    ContractKind = "undeclared_variable"
	MalformedAccessor     ContractKind = "malformed_accessor"
	UnresolvedSource      ContractKind = "unresolved_source"
	MissingResultVariable ContractKind = "missing_result_variable"
	TemplatePlaceholder   ContractKind = "template_placeholder"
	DataCycle             ContractKind = "data_cycle"
)

// ContractError reports a violated contract between the graph, its metadata
// and the analysis services.
type ContractError struct {
	Kind ContractKind
	Msg  string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s (%s): %s", ErrContract, e.Kind, e.Msg)
}

func (e *ContractError) Unwrap() error { return ErrContract }

// Contractf builds a ContractError with a formatted message.
func Contractf(kind ContractKind, format string, args ...any) *ContractError {
	return &ContractError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// IsContract reports whether err is a ContractError of the given kind.
func IsContract(err error, kind ContractKind) bool {
	var ce *ContractError
	return errors.As(err, &ce) && ce.Kind == kind
}
