package dataflow

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ClassifiesInputs(t *testing.T) {
	lib := testutil.Library()
	g := testutil.NewGraph(t, "flow", lib).
		Node("start", "begin_play").
		Node("rand", "random_number").
		Node("sum", "add").
		Node("out", "print_number").
		Connect("start", "then", "rand", "exec").
		Connect("rand", "then", "out", "exec").
		Connect("rand", "result", "sum", "a").
		Literal("sum", "b", "2.5").
		Connect("sum", "result", "out", "value").
		Graph

	r, err := Build(context.Background(), g, lib)
	require.NoError(t, err)

	testCases := []struct {
		name string
		node string
		pin  string
		want blueprint.DataSource
		ok   bool
	}{
		{"connected to function result", "sum", "sum_a", blueprint.Connected("rand", "rand_result"), true},
		{"literal", "sum", "sum_b", blueprint.Constant("2.5"), true},
		{"connected to pure result", "out", "out_value", blueprint.Connected("sum", "sum_result"), true},
		{"exec inputs have no source", "out", "out_exec", blueprint.DataSource{}, false},
		{"unknown pin", "out", "nope", blueprint.DataSource{}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := r.InputSource(tc.node, tc.pin)
			assert.Equal(t, tc.ok, ok)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("source mismatch (-want +got):\n%s", diff)
			}
		})
	}

	name, ok := r.ResultVariable("rand")
	assert.True(t, ok)
	assert.Equal(t, "rand_result", name)

	_, ok = r.ResultVariable("sum")
	assert.False(t, ok, "pure nodes are inlined and get no variable")
	_, ok = r.ResultVariable("out")
	assert.False(t, ok, "nodes without a return type get no variable")

	assert.Equal(t, []string{"sum"}, r.PureOrder())
}

func TestBuild_UnconnectedInputsDefault(t *testing.T) {
	lib := testutil.Library()
	g := testutil.NewGraph(t, "defaults", lib).Node("p", "print").Graph

	r, err := Build(context.Background(), g, lib)
	require.NoError(t, err)

	src, ok := r.InputSource("p", "p_value")
	require.True(t, ok)
	assert.Equal(t, blueprint.SourceDefault, src.Kind)
}

func TestBuild_PureCycle(t *testing.T) {
	lib := testutil.Library()
	g := testutil.NewGraph(t, "cycle", lib).
		Node("x", "add").
		Node("y", "add").
		Connect("x", "result", "y", "a").
		Connect("y", "result", "x", "a").
		Graph

	_, err := Build(context.Background(), g, lib)
	require.Error(t, err)
	assert.True(t, blueprint.IsContract(err, blueprint.DataCycle))
	assert.Contains(t, err.Error(), "x -> y -> x")
}

func TestBuild_PureSelfLoop(t *testing.T) {
	lib := testutil.Library()
	g := testutil.NewGraph(t, "loop", lib).
		Node("x", "add").
		Connect("x", "result", "x", "b").
		Graph

	_, err := Build(context.Background(), g, lib)
	assert.True(t, blueprint.IsContract(err, blueprint.DataCycle))
}

func TestBuild_CycleThroughFunctionIsAllowed(t *testing.T) {
	lib := testutil.Library()
	lib["scale"] = &blueprint.NodeMetadata{
		Kind:       blueprint.FunctionNode,
		Name:       "scale",
		Params:     []blueprint.Param{{Name: "v", Type: "f64"}},
		ReturnType: "f64",
	}
	g := testutil.NewGraph(t, "feedback", lib).
		Node("f", "scale").
		Node("sum", "add").
		Connect("f", "result", "sum", "a").
		Connect("sum", "result", "f", "v").
		Graph

	r, err := Build(context.Background(), g, lib)
	require.NoError(t, err)
	name, _ := r.ResultVariable("f")
	assert.Equal(t, "f_result", name)
}

func TestBuild_DuplicateDataConnection(t *testing.T) {
	lib := testutil.Library()
	g := testutil.NewGraph(t, "dup", lib).
		Node("a", "random_number").
		Node("b", "random_number").
		Node("sum", "add").
		Connect("a", "result", "sum", "a").
		Connect("b", "result", "sum", "a").
		Graph

	_, err := Build(context.Background(), g, lib)
	assert.True(t, errors.Is(err, blueprint.ErrStructural))
}

func TestBuild_LiteralOnUnknownPin(t *testing.T) {
	lib := testutil.Library()
	g := testutil.NewGraph(t, "bad", lib).Node("p", "print").Graph
	g.Nodes["p"].Literals = map[string]string{"p_missing": `"x"`}

	_, err := Build(context.Background(), g, lib)
	assert.True(t, errors.Is(err, blueprint.ErrPinNotFound))
}

func TestResultVariableNaming(t *testing.T) {
	lib := testutil.Library()
	g := testutil.NewGraph(t, "names", lib).
		Node("rand-1", "random_number").
		Node("rand_1", "random_number").
		Node("7up", "random_number").
		Graph

	r, err := Build(context.Background(), g, lib)
	require.NoError(t, err)

	got := map[string]string{}
	for _, id := range []string{"rand-1", "rand_1", "7up"} {
		got[id], _ = r.ResultVariable(id)
	}
	want := map[string]string{
		"7up":    "n_7up_result",
		"rand-1": "rand_1_result",
		"rand_1": "rand_1_result_2",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("result variables mismatch (-want +got):\n%s", diff)
	}
}

func TestSanitizeIdent(t *testing.T) {
	assert.Equal(t, "node_a", SanitizeIdent("node.a"))
	assert.Equal(t, "n_", SanitizeIdent(""))
	assert.Equal(t, "n_1x", SanitizeIdent("1x"))
}
