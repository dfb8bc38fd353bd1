// This file formats static HCL values as Rust literal expressions.

package hcl_adapter

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

var vectorArity = map[blueprint.DataKind]int{
	blueprint.KindVector2: 2,
	blueprint.KindVector3: 3,
	blueprint.KindColor:   4,
}

func isIntegerType(name string) bool {
	switch name {
	case "i8", "i16", "i32", "i64", "i128", "isize", "u8", "u16", "u32", "u64", "u128", "usize":
		return true
	}
	return false
}

func isFloatType(name string) bool {
	return name == "f32" || name == "f64"
}

// rustLiteral formats val as a Rust expression suitable for a pin of type t.
// The value is first converted to the cty type the pin implies.
func rustLiteral(val cty.Value, t blueprint.DataType) (string, error) {
	if !val.IsWhollyKnown() {
		return "", fmt.Errorf("value must be known at load time")
	}
	if val.IsNull() {
		return "", fmt.Errorf("value must not be null")
	}

	want := impliedCtyType(t)
	if !want.Equals(cty.DynamicPseudoType) {
		converted, err := convert.Convert(val, want)
		if err != nil {
			return "", fmt.Errorf("cannot use %s value for a %s pin: %w", val.Type().FriendlyName(), t, err)
		}
		val = converted
	}

	switch t.Kind {
	case blueprint.KindNumber:
		return floatLiteral(val.AsBigFloat()), nil
	case blueprint.KindString:
		return fmt.Sprintf("String::from(%s)", rustString(val.AsString())), nil
	case blueprint.KindVector2, blueprint.KindVector3, blueprint.KindColor:
		return tupleLiteral(val, vectorArity[t.Kind])
	case blueprint.KindTyped:
		return typedLiteral(val, t.TypeName)
	}
	return genericLiteral(val)
}

func typedLiteral(val cty.Value, typeName string) (string, error) {
	switch {
	case isIntegerType(typeName):
		var i int64
		if err := gocty.FromCtyValue(val, &i); err != nil {
			return "", fmt.Errorf("%s literal: %w", typeName, err)
		}
		return fmt.Sprintf("%d", i), nil
	case isFloatType(typeName):
		return floatLiteral(val.AsBigFloat()), nil
	case typeName == "String":
		return fmt.Sprintf("String::from(%s)", rustString(val.AsString())), nil
	case typeName == "char":
		s := val.AsString()
		if len([]rune(s)) != 1 {
			return "", fmt.Errorf("char literal must be exactly one character, got %q", s)
		}
		return rustChar([]rune(s)[0]), nil
	}
	return genericLiteral(val)
}

// genericLiteral formats a value without pin type information.
func genericLiteral(val cty.Value) (string, error) {
	ty := val.Type()
	switch {
	case ty == cty.String:
		return rustString(val.AsString()), nil
	case ty == cty.Bool:
		if val.True() {
			return "true", nil
		}
		return "false", nil
	case ty == cty.Number:
		bf := val.AsBigFloat()
		if bf.IsInt() {
			return bf.Text('f', 0), nil
		}
		return floatLiteral(bf), nil
	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		var elems []string
		for it := val.ElementIterator(); it.Next(); {
			_, ev := it.Element()
			s, err := genericLiteral(ev)
			if err != nil {
				return "", err
			}
			elems = append(elems, s)
		}
		return fmt.Sprintf("vec![%s]", strings.Join(elems, ", ")), nil
	}
	return "", fmt.Errorf("cannot format %s value as a literal; use `literal` instead", ty.FriendlyName())
}

func tupleLiteral(val cty.Value, arity int) (string, error) {
	if n := val.LengthInt(); n != arity {
		return "", fmt.Errorf("expected %d components, got %d", arity, n)
	}
	elems := make([]string, 0, arity)
	for it := val.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		elems = append(elems, floatLiteral(ev.AsBigFloat()))
	}
	return "(" + strings.Join(elems, ", ") + ")", nil
}

// floatLiteral always carries a decimal point so Rust infers a float type.
func floatLiteral(bf *big.Float) string {
	s := bf.Text('f', -1)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

func rustString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		b.WriteString(escapeRune(r, '"'))
	}
	b.WriteByte('"')
	return b.String()
}

func rustChar(r rune) string {
	return "'" + escapeRune(r, '\'') + "'"
}

func escapeRune(r rune, quote rune) string {
	switch r {
	case '\\':
		return `\\`
	case quote:
		return `\` + string(r)
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	case 0:
		return `\0`
	}
	if r < 0x20 || r == 0x7f {
		return fmt.Sprintf(`\u{%x}`, r)
	}
	return string(r)
}
