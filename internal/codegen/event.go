package codegen

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
)

// writeEvent emits one event node as a free function. Every node wired to an
// exec output starts a walk with an empty visited set, so a node reachable
// from two outputs is emitted under both.
func (g *Generator) writeEvent(b *strings.Builder, event *blueprint.NodeInstance, logger *slog.Logger) error {
	meta, err := g.metadata(event)
	if err != nil {
		return err
	}

	fmt.Fprintf(b, "pub fn %s() {\n", meta.Name)
	for _, pin := range event.ExecOutputs() {
		logger.Debug("Looking up exec connections.", "node", event.ID, "pin", pin.ID)
		next := g.router.Downstream(event.ID, pin.ID)
		logger.Debug("Found connected nodes.", "node", event.ID, "pin", pin.ID, "count", len(next))

		for _, id := range next {
			w := newWalker(g, logger)
			if err := w.emitChain(b, id, 1); err != nil {
				return fmt.Errorf("event %s: %w", meta.Name, err)
			}
		}
	}
	b.WriteString("}\n")
	return nil
}
