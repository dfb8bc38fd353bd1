package config

import (
	"testing"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Merge(t *testing.T) {
	base := NewModel()
	base.Nodes["print"] = &blueprint.NodeMetadata{Kind: blueprint.FunctionNode, Name: "print"}
	base.Blueprints = append(base.Blueprints, &Blueprint{Graph: blueprint.NewGraph("b"), Source: "b.hcl"})

	other := NewModel()
	other.Nodes["add"] = &blueprint.NodeMetadata{Kind: blueprint.PureNode, Name: "add"}
	other.Blueprints = append(other.Blueprints, &Blueprint{Graph: blueprint.NewGraph("a"), Source: "a.hcl"})

	require.NoError(t, base.Merge(other))
	assert.Len(t, base.Nodes, 2)
	require.Len(t, base.SortedBlueprints(), 2)
	assert.Equal(t, "a", base.SortedBlueprints()[0].Name())
	assert.NotNil(t, base.Blueprint("b"))
	assert.Nil(t, base.Blueprint("c"))

	dupNode := NewModel()
	dupNode.Nodes["print"] = &blueprint.NodeMetadata{}
	assert.ErrorContains(t, base.Merge(dupNode), `node type "print" is defined more than once`)

	dupBP := NewModel()
	dupBP.Blueprints = append(dupBP.Blueprints, &Blueprint{Graph: blueprint.NewGraph("a"), Source: "other.hcl"})
	assert.ErrorContains(t, base.Merge(dupBP), "a.hcl and other.hcl")
}
