package codegen

import (
	"strings"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
)

// ZeroValue returns the expression used for an unconnected input of the
// given type.
func ZeroValue(t blueprint.DataType) string {
	switch t.Kind {
	case blueprint.KindExecution:
		return "()"
	case blueprint.KindNumber:
		return "0.0"
	case blueprint.KindString:
		return "String::new()"
	case blueprint.KindBoolean:
		return "false"
	case blueprint.KindVector2:
		return "(0.0, 0.0)"
	case blueprint.KindVector3:
		return "(0.0, 0.0, 0.0)"
	case blueprint.KindColor:
		return "(0.0, 0.0, 0.0, 1.0)"
	case blueprint.KindTyped:
		return TypedZeroValue(t.TypeName)
	default:
		return "Default::default()"
	}
}

// TypedZeroValue returns the zero value for a Rust type given as text.
func TypedZeroValue(typeName string) string {
	t := strings.TrimSpace(typeName)
	switch t {
	case "i8", "i16", "i32", "i64", "i128", "isize",
		"u8", "u16", "u32", "u64", "u128", "usize":
		return "0"
	case "f32", "f64":
		return "0.0"
	case "bool":
		return "false"
	case "char":
		return `'\0'`
	case "String":
		return "String::new()"
	case "&str", "&'static str":
		return `""`
	case "()":
		return "()"
	}
	switch {
	case strings.HasPrefix(t, "Vec<"):
		return "Vec::new()"
	case strings.HasPrefix(t, "Option<"):
		return "None"
	case strings.HasPrefix(t, "HashMap<"):
		return "HashMap::new()"
	}
	return "Default::default()"
}
