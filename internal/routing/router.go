package routing

import (
	"context"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/ctxlog"
)

type pinKey struct {
	node string
	pin  string
}

// Router answers adjacency queries over execution edges. Nothing writes to
// it after Build, so concurrent reads need no locking.
type Router struct {
	next map[pinKey][]string
}

// Build groups every execution connection of g by its source pin. A
// connection counts as an execution edge when its source pin has the exec
// kind. Connections whose endpoints are missing are reported as errors.
func Build(ctx context.Context, g *blueprint.Graph) (*Router, error) {
	logger := ctxlog.FromContext(ctx)
	r := &Router{next: make(map[pinKey][]string)}

	edges := 0
	for _, c := range g.Connections {
		from, ok := g.Node(c.FromNode)
		if !ok {
			return nil, &blueprint.NodeNotFoundError{ID: c.FromNode}
		}
		pin, ok := from.Output(c.FromPin)
		if !ok {
			return nil, &blueprint.PinNotFoundError{Node: c.FromNode, Pin: c.FromPin}
		}
		if !pin.Pin.IsExecution() {
			continue
		}
		if _, ok := g.Node(c.ToNode); !ok {
			return nil, &blueprint.NodeNotFoundError{ID: c.ToNode}
		}
		key := pinKey{node: c.FromNode, pin: c.FromPin}
		r.next[key] = append(r.next[key], c.ToNode)
		edges++
	}

	logger.Debug("Execution routing built.", "graph", g.Name, "exec_edges", edges, "exec_pins", len(r.next))
	return r, nil
}

// Downstream returns the IDs of the nodes connected to the given execution
// output pin, in the order the connections were declared. The result is a
// copy and may be empty.
func (r *Router) Downstream(nodeID, pinID string) []string {
	targets := r.next[pinKey{node: nodeID, pin: pinID}]
	out := make([]string, len(targets))
	copy(out, targets)
	return out
}
