package hcl_adapter

import (
	"testing"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestRustLiteral(t *testing.T) {
	testCases := []struct {
		name string
		val  cty.Value
		typ  blueprint.DataType
		want string
	}{
		{"number integer", cty.NumberIntVal(3), blueprint.DataType{Kind: blueprint.KindNumber}, "3.0"},
		{"number fraction", cty.NumberFloatVal(0.5), blueprint.DataType{Kind: blueprint.KindNumber}, "0.5"},
		{"number from string", cty.StringVal("7"), blueprint.DataType{Kind: blueprint.KindNumber}, "7.0"},
		{"string", cty.StringVal("say \"hi\"\n"), blueprint.DataType{Kind: blueprint.KindString}, `String::from("say \"hi\"\n")`},
		{"boolean", cty.True, blueprint.DataType{Kind: blueprint.KindBoolean}, "true"},
		{"boolean from string", cty.StringVal("false"), blueprint.DataType{Kind: blueprint.KindBoolean}, "false"},
		{"vector2", cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)}), blueprint.DataType{Kind: blueprint.KindVector2}, "(1.0, 2.0)"},
		{"color", cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(0), cty.NumberIntVal(0), cty.NumberFloatVal(0.5)}), blueprint.DataType{Kind: blueprint.KindColor}, "(1.0, 0.0, 0.0, 0.5)"},
		{"typed integer", cty.NumberIntVal(-4), blueprint.Typed("i32"), "-4"},
		{"typed float", cty.NumberIntVal(2), blueprint.Typed("f32"), "2.0"},
		{"typed String", cty.StringVal("bob"), blueprint.Typed("String"), `String::from("bob")`},
		{"typed char", cty.StringVal("'"), blueprint.Typed("char"), `'\''`},
		{"typed other list", cty.TupleVal([]cty.Value{cty.NumberIntVal(1), cty.StringVal("a")}), blueprint.Typed("Vec<Item>"), `vec![1, "a"]`},
		{"any number", cty.NumberIntVal(10), blueprint.DataType{Kind: blueprint.KindAny}, "10"},
		{"any control char", cty.StringVal("\x01"), blueprint.DataType{Kind: blueprint.KindAny}, `"\u{1}"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rustLiteral(tc.val, tc.typ)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestRustLiteral_Errors(t *testing.T) {
	_, err := rustLiteral(cty.StringVal("abc"), blueprint.DataType{Kind: blueprint.KindNumber})
	assert.ErrorContains(t, err, "cannot use string value for a")

	_, err = rustLiteral(cty.TupleVal([]cty.Value{cty.NumberIntVal(1)}), blueprint.DataType{Kind: blueprint.KindVector3})
	assert.ErrorContains(t, err, "expected 3 components, got 1")

	_, err = rustLiteral(cty.NumberFloatVal(1.5), blueprint.Typed("u8"))
	assert.ErrorContains(t, err, "u8 literal")

	_, err = rustLiteral(cty.StringVal("ab"), blueprint.Typed("char"))
	assert.ErrorContains(t, err, "exactly one character")

	_, err = rustLiteral(cty.NullVal(cty.String), blueprint.DataType{Kind: blueprint.KindString})
	assert.ErrorContains(t, err, "must not be null")

	_, err = rustLiteral(cty.UnknownVal(cty.String), blueprint.DataType{Kind: blueprint.KindString})
	assert.ErrorContains(t, err, "known at load time")

	_, err = rustLiteral(cty.ObjectVal(map[string]cty.Value{"a": cty.True}), blueprint.DataType{Kind: blueprint.KindAny})
	assert.ErrorContains(t, err, "use `literal` instead")
}

func TestKeywordToDataType(t *testing.T) {
	dt, err := keywordToDataType("vec2")
	require.NoError(t, err)
	assert.Equal(t, blueprint.KindVector2, dt.Kind)

	_, err = keywordToDataType("typed")
	assert.ErrorContains(t, err, `typed("Vec<u8>")`)

	_, err = keywordToDataType("matrix")
	assert.Error(t, err)
}
