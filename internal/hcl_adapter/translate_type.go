// This file parses pin kind expressions such as `number` or
// `typed("Vec<u8>")` into blueprint data types.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// typedConstructor is the function-call form naming an explicit Rust type.
const typedConstructor = "typed"

// kindExprToDataType converts a pin kind expression into a DataType. Bare
// keywords and quoted keywords are both accepted.
func kindExprToDataType(ctx context.Context, expr hcl.Expression) (blueprint.DataType, error) {
	logger := ctxlog.FromContext(ctx)

	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return blueprint.DataType{}, fmt.Errorf("invalid kind keyword: traversal path is not a single identifier")
		}
		keyword := v.Traversal.RootName()
		logger.Debug("Parsing pin kind as a keyword.", "keyword", keyword)
		return keywordToDataType(keyword)

	case *hclsyntax.FunctionCallExpr:
		logger.Debug("Parsing pin kind as a function call.", "call", v.Name)
		if v.Name != typedConstructor {
			return blueprint.DataType{}, fmt.Errorf("unknown kind constructor %q, only %s(\"Type\") is supported", v.Name, typedConstructor)
		}
		if len(v.Args) != 1 {
			return blueprint.DataType{}, fmt.Errorf("the %s() kind constructor requires exactly one argument, got %d", typedConstructor, len(v.Args))
		}
		typeName, err := staticString(v.Args[0], "type name")
		if err != nil {
			return blueprint.DataType{}, err
		}
		if typeName == "" {
			return blueprint.DataType{}, fmt.Errorf("the %s() kind constructor requires a non-empty type name", typedConstructor)
		}
		return blueprint.Typed(typeName), nil

	case *hclsyntax.TemplateExpr:
		keyword, err := staticString(v, "kind")
		if err != nil {
			return blueprint.DataType{}, err
		}
		logger.Debug("Parsing pin kind as a quoted keyword.", "keyword", keyword)
		return keywordToDataType(keyword)

	default:
		return blueprint.DataType{}, fmt.Errorf("unsupported kind expression %T", expr)
	}
}

func keywordToDataType(keyword string) (blueprint.DataType, error) {
	if keyword == typedConstructor {
		return blueprint.DataType{}, fmt.Errorf("kind %q needs a type name, e.g. %s(\"Vec<u8>\")", keyword, typedConstructor)
	}
	kind, err := blueprint.ParseDataKind(keyword)
	if err != nil {
		return blueprint.DataType{}, err
	}
	return blueprint.DataType{Kind: kind}, nil
}

// impliedCtyType is the cty type a literal for the given pin type must
// convert to. DynamicPseudoType means any literal is accepted as is.
func impliedCtyType(t blueprint.DataType) cty.Type {
	switch t.Kind {
	case blueprint.KindNumber:
		return cty.Number
	case blueprint.KindString:
		return cty.String
	case blueprint.KindBoolean:
		return cty.Bool
	case blueprint.KindVector2, blueprint.KindVector3, blueprint.KindColor:
		return cty.List(cty.Number)
	case blueprint.KindTyped:
		switch {
		case isIntegerType(t.TypeName), isFloatType(t.TypeName):
			return cty.Number
		case t.TypeName == "bool":
			return cty.Bool
		case t.TypeName == "String", t.TypeName == "&str", t.TypeName == "char":
			return cty.String
		}
	}
	return cty.DynamicPseudoType
}
