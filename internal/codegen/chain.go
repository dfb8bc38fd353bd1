package codegen

import (
	"log/slog"
	"strings"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
)

// walker carries the traversal state of one execution chain: the set of
// nodes already emitted on the path that led here.
type walker struct {
	gen     *Generator
	logger  *slog.Logger
	visited map[string]struct{}
}

func newWalker(g *Generator, logger *slog.Logger) *walker {
	return &walker{gen: g, logger: logger, visited: make(map[string]struct{})}
}

// fork returns a walker that starts from a snapshot of w's visited set.
// Nodes it emits are not seen by w or by other forks.
func (w *walker) fork() *walker {
	visited := make(map[string]struct{}, len(w.visited))
	for id := range w.visited {
		visited[id] = struct{}{}
	}
	return &walker{gen: w.gen, logger: w.logger, visited: visited}
}

// emitChain emits the node and everything that follows it on the same
// chain. A node already visited on this walk emits nothing.
func (w *walker) emitChain(b *strings.Builder, nodeID string, indent int) error {
	if _, seen := w.visited[nodeID]; seen {
		w.logger.Debug("Skipping visited node.", "node", nodeID)
		return nil
	}
	w.visited[nodeID] = struct{}{}

	node, err := w.gen.node(nodeID)
	if err != nil {
		return err
	}

	if strings.HasPrefix(node.NodeType, blueprint.GetterPrefix) {
		return nil
	}
	if strings.HasPrefix(node.NodeType, blueprint.SetterPrefix) {
		return w.emitSetter(b, node, indent)
	}

	meta, err := w.gen.metadata(node)
	if err != nil {
		return err
	}

	w.logger.Debug("Emitting node.", "node", node.ID, "type", node.NodeType, "kind", meta.Kind)
	switch meta.Kind {
	case blueprint.FunctionNode:
		return w.emitFunction(b, node, meta, indent)
	case blueprint.ControlFlowNode:
		return w.emitControlFlow(b, node, meta, indent)
	default:
		// Pure nodes are inlined where used and events are only roots.
		return nil
	}
}

// continueChain follows every exec output of node with the same visited set
// at the same indent level.
func (w *walker) continueChain(b *strings.Builder, node *blueprint.NodeInstance, indent int) error {
	for _, pin := range node.ExecOutputs() {
		for _, id := range w.gen.router.Downstream(node.ID, pin.ID) {
			if err := w.emitChain(b, id, indent); err != nil {
				return err
			}
		}
	}
	return nil
}
