package hcl_adapter

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libraryHCL = `
node "begin_play" {
  kind = "event"
}

node "print" {
  kind    = "function"
  imports = ["use crate::io::print;"]
  param "value" { type = "String" }
}

node "branch" {
  kind          = "control_flow"
  exec_outputs  = ["then", "else"]
  template_file = "templates/branch.rs"
  param "condition" { type = "bool" }
}
`

const branchRS = "if ${param.condition} {\n    ${exec.then}\n} else {\n    ${exec.else}\n}\n"

const playerHCL = `
blueprint "player" {
  variable "alive" { type = "bool" }

  node "start" { type = "begin_play" }

  node "check" { type = "branch" }

  node "is_alive" { type = "get_alive" }

  node "say" {
    type = "print"
    input "value" { value = "still here" }
  }

  connect {
    from = "start.then"
    to   = "check.exec"
  }
  connect {
    from = "is_alive.value"
    to   = "check.condition"
  }
  connect {
    from = "check.then"
    to   = "say.exec"
  }
}
`

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"lib/core.hcl":            {Data: []byte(libraryHCL)},
		"lib/templates/branch.rs": {Data: []byte(branchRS)},
		"graphs/player.hcl":       {Data: []byte(playerHCL)},
	}

	model, err := NewLoader().LoadFS(context.Background(), fsys, ".")
	require.NoError(t, err)

	t.Run("node types", func(t *testing.T) {
		require.Len(t, model.Nodes, 3)
		branch := model.Nodes["branch"]
		require.NotNil(t, branch)
		assert.Equal(t, blueprint.ControlFlowNode, branch.Kind)
		assert.Equal(t, "branch", branch.Name, "name defaults to the block label")
		assert.Equal(t, []string{"then", "else"}, branch.ExecOutputs)
		assert.Equal(t, []blueprint.Param{{Name: "condition", Type: "bool"}}, branch.Params)
		assert.Equal(t, "if ${param.condition} {\n    ${exec.then}\n} else {\n    ${exec.else}\n}", branch.Template)

		assert.Equal(t, []string{"use crate::io::print;"}, model.Nodes["print"].Imports)
	})

	t.Run("blueprint", func(t *testing.T) {
		bp := model.Blueprint("player")
		require.NotNil(t, bp)
		assert.Equal(t, "graphs/player.hcl", bp.Source)
		assert.Equal(t, map[string]string{"alive": "bool"}, bp.Variables)

		g := bp.Graph
		require.Len(t, g.Nodes, 4)
		require.Len(t, g.Connections, 3)
		assert.Equal(t, blueprint.Connection{FromNode: "start", FromPin: "start_then", ToNode: "check", ToPin: "check_exec"}, g.Connections[0])
		assert.Equal(t, blueprint.Connection{FromNode: "is_alive", FromPin: "is_alive_value", ToNode: "check", ToPin: "check_condition"}, g.Connections[1])

		getter, ok := g.Node("is_alive")
		require.True(t, ok)
		assert.Equal(t, "get_alive", getter.NodeType)
		assert.Equal(t, blueprint.KindBoolean, getter.Outputs[0].Pin.Type.Kind)

		say, ok := g.Node("say")
		require.True(t, ok)
		assert.Equal(t, map[string]string{"say_value": `String::from("still here")`}, say.Literals)
	})
}

func TestLoadFS_PinBlocks(t *testing.T) {
	src := libraryHCL + `
blueprint "pins" {
  node "start" {
    type = "begin_play"
  }
  node "custom" {
    type = "spawn_actor"
    input "exec" { kind = exec }
    input "count" {
      kind  = typed("u32")
      value = 3
    }
    input "origin" {
      kind  = vec3
      value = [1, 2.5, 0]
    }
    input "raw" {
      kind    = "string"
      literal = "name.clone()"
    }
    output "done" {
      kind = exec
      id   = "custom_done_pin"
    }
  }
  connect {
    from = "start.then"
    to   = "custom.exec"
  }
  connect {
    from = "custom.custom_done_pin"
    to   = "custom.exec"
  }
}
`
	fsys := fstest.MapFS{
		"all.hcl":              {Data: []byte(src)},
		"templates/branch.rs": {Data: []byte(branchRS)},
	}
	model, err := NewLoader().LoadFS(context.Background(), fsys, ".")
	require.NoError(t, err)

	g := model.Blueprint("pins").Graph
	custom, ok := g.Node("custom")
	require.True(t, ok)

	count, ok := custom.InputByName("count")
	require.True(t, ok)
	assert.Equal(t, blueprint.Typed("u32"), count.Pin.Type)
	assert.Equal(t, "3", custom.Literals[count.ID])

	origin, ok := custom.InputByName("origin")
	require.True(t, ok)
	assert.Equal(t, "(1.0, 2.5, 0.0)", custom.Literals[origin.ID])

	assert.Equal(t, "name.clone()", custom.Literals["custom_raw"])

	done, ok := custom.OutputByName("done")
	require.True(t, ok)
	assert.Equal(t, "custom_done_pin", done.ID)
	assert.True(t, done.Pin.IsExecution())

	require.Len(t, g.Connections, 2)
	assert.Equal(t, "custom_done_pin", g.Connections[1].FromPin, "endpoints fall back to pin IDs")
}

func TestLoadFS_UsesFallbackMetadata(t *testing.T) {
	fsys := fstest.MapFS{
		"game.hcl": {Data: []byte(`
blueprint "game" {
  node "start" { type = "begin_play" }
  node "hello" {
    type = "print"
    input "value" { value = "hi" }
  }
  connect {
    from = "start.then"
    to   = "hello.exec"
  }
}
`)},
	}

	_, err := NewLoader().LoadFS(context.Background(), fsys, ".")
	require.Error(t, err, "unknown node types need declared pins")

	model, err := NewLoader(WithMetadata(testutil.Library())).LoadFS(context.Background(), fsys, ".")
	require.NoError(t, err)
	assert.Empty(t, model.Nodes, "fallback metadata is not copied into the model")
	assert.Len(t, model.Blueprint("game").Graph.Connections, 1)
}

func TestLoadFS_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		files   map[string]string
		wantErr string
	}{
		{
			name:    "syntax error",
			files:   map[string]string{"bad.hcl": `node "x" {`},
			wantErr: "failed to parse HCL file bad.hcl",
		},
		{
			name:    "unknown node kind",
			files:   map[string]string{"a.hcl": `node "x" { kind = "macro" }`},
			wantErr: `unknown node kind "macro"`,
		},
		{
			name: "duplicate node type",
			files: map[string]string{
				"a.hcl": `node "x" { kind = "event" }`,
				"b.hcl": `node "x" { kind = "event" }`,
			},
			wantErr: "node type 'x' in b.hcl is already defined",
		},
		{
			name:    "missing template file",
			files:   map[string]string{"a.hcl": "node \"x\" {\n  kind = \"control_flow\"\n  template_file = \"nope.rs\"\n}"},
			wantErr: "reading template",
		},
		{
			name: "duplicate blueprint",
			files: map[string]string{
				"a.hcl": `blueprint "g" {}`,
				"b.hcl": `blueprint "g" {}`,
			},
			wantErr: "blueprint 'g' is defined in both a.hcl and b.hcl",
		},
		{
			name: "duplicate variable",
			files: map[string]string{"a.hcl": `blueprint "g" {
  variable "v" { type = "f32" }
  variable "v" { type = "bool" }
}`},
			wantErr: "variable 'v' is declared more than once",
		},
		{
			name:    "duplicate node id",
			files:   map[string]string{"a.hcl": libraryHCL + `blueprint "g" {` + "\n" + `node "n" { type = "begin_play" }` + "\n" + `node "n" { type = "begin_play" }` + "\n}"},
			wantErr: `duplicate node id "n"`,
		},
		{
			name:    "output with a value",
			files:   map[string]string{"a.hcl": libraryHCL + `blueprint "g" {` + "\n" + `node "n" {` + "\n" + `type = "begin_play"` + "\n" + `output "then" { value = 1 }` + "\n}\n}"},
			wantErr: "output 'then' cannot carry a value",
		},
		{
			name:    "value on an execution input",
			files:   map[string]string{"a.hcl": libraryHCL + `blueprint "g" {` + "\n" + `node "n" {` + "\n" + `type = "print"` + "\n" + `input "exec" { value = 1 }` + "\n}\n}"},
			wantErr: "execution input 'exec' cannot carry a value",
		},
		{
			name:    "value of the wrong type",
			files:   map[string]string{"a.hcl": libraryHCL + `blueprint "g" {` + "\n" + `node "n" {` + "\n" + `type = "branch"` + "\n" + `input "condition" { value = "maybe" }` + "\n}\n}"},
			wantErr: "Invalid input value",
		},
		{
			name:    "bad kind constructor",
			files:   map[string]string{"a.hcl": `blueprint "g" {` + "\n" + `node "n" {` + "\n" + `type = "custom"` + "\n" + `input "x" { kind = list("u8") }` + "\n}\n}"},
			wantErr: `unknown kind constructor "list"`,
		},
		{
			name:    "unknown endpoint node",
			files:   map[string]string{"a.hcl": libraryHCL + `blueprint "g" {` + "\n" + `node "n" { type = "begin_play" }` + "\n" + `connect {` + "\n" + `from = "n.then"` + "\n" + `to = "ghost.exec"` + "\n}\n}"},
			wantErr: "Unknown node",
		},
		{
			name:    "unknown endpoint pin",
			files:   map[string]string{"a.hcl": libraryHCL + `blueprint "g" {` + "\n" + `node "n" { type = "begin_play" }` + "\n" + `node "p" { type = "print" }` + "\n" + `connect {` + "\n" + `from = "n.later"` + "\n" + `to = "p.exec"` + "\n}\n}"},
			wantErr: `has no output pin "later"`,
		},
		{
			name:    "malformed endpoint",
			files:   map[string]string{"a.hcl": libraryHCL + `blueprint "g" {` + "\n" + `node "n" { type = "begin_play" }` + "\n" + `connect {` + "\n" + `from = "n"` + "\n" + `to = "n.exec"` + "\n}\n}"},
			wantErr: "must have the form node.pin",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{"templates/branch.rs": {Data: []byte(branchRS)}}
			for name, content := range tc.files {
				fsys[name] = &fstest.MapFile{Data: []byte(content)}
			}
			_, err := NewLoader().LoadFS(context.Background(), fsys, ".")
			require.Error(t, err)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestLoad_Paths(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{
		"lib/core.hcl":            libraryHCL,
		"lib/templates/branch.rs": branchRS,
		"lib/README.md":           "not hcl",
		"player.hcl":              playerHCL,
	})

	model, err := NewLoader().Load(context.Background(),
		filepath.Join(dir, "lib"),
		filepath.Join(dir, "player.hcl"),
		filepath.Join(dir, "player.hcl"),
		filepath.Join(dir, "missing"),
	)
	require.NoError(t, err)
	assert.Len(t, model.Nodes, 3)
	require.Len(t, model.Blueprints, 1, "a path given twice is read once")
	assert.Equal(t, filepath.Join(dir, "player.hcl"), model.Blueprints[0].Source)
}
