package publish

import "context"

// CompiledEvent is emitted once per artifact.
const CompiledEvent = "blueprint:compiled"

// Artifact is one compiled blueprint.
type Artifact struct {
	Name   string
	Source string
}

// Publisher delivers compiled artifacts to an external consumer.
type Publisher interface {
	Publish(ctx context.Context, artifacts []Artifact) error
}

func payload(a Artifact) map[string]any {
	return map[string]any{
		"name":   a.Name,
		"source": a.Source,
	}
}
