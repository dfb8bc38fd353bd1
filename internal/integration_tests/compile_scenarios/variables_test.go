package compile_scenarios

import (
	"strings"
	"testing"

	"github.com/specialistvlad/blueprintc/internal/integration_tests/harness"
	"github.com/stretchr/testify/require"
)

// TestCompile_CopyVariable writes and reads a plain-copy variable.
func TestCompile_CopyVariable(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	graph := `
		blueprint "counter" {
			variable "counter" { type = "i32" }

			node "start" { type = "begin_play" }
			node "store" {
				type = "set_counter"
				input "value" { value = 5 }
			}
			node "load" { type = "get_counter" }
			node "show" {
				type = "print_number"
				input "value" { kind = typed("i32") }
			}
			connect {
				from = "start.then"
				to   = "store.exec"
			}
			connect {
				from = "store.then"
				to   = "show.exec"
			}
			connect {
				from = "load.value"
				to   = "show.value"
			}
		}
	`

	// --- Act ---
	result := harness.Run(t, map[string]string{"graphs/counter.hcl": graph})

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, "    COUNTER.with(|v| v.set(5));\n    print_number(COUNTER.with(|v| v.get()));\n")
	require.NotContains(t, result.Output, "clone()", "plain-copy reads never clone")
	require.False(t, strings.Contains(result.Output, "\n    COUNTER.with(|v| v.get());"), "getters are never statements")
}

// TestCompile_ComplexVariable uses RefCell semantics for non-copy types.
func TestCompile_ComplexVariable(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	graph := `
		blueprint "greeter" {
			variable "name" { type = "String" }

			node "start" { type = "begin_play" }
			node "rename" {
				type = "set_name"
				input "value" { value = "Ada" }
			}
			node "load" { type = "get_name" }
			node "greet" { type = "print_string" }
			connect {
				from = "start.then"
				to   = "rename.exec"
			}
			connect {
				from = "rename.then"
				to   = "greet.exec"
			}
			connect {
				from = "load.value"
				to   = "greet.message"
			}
		}
	`

	// --- Act ---
	result := harness.Run(t, map[string]string{"graphs/greeter.hcl": graph})

	// --- Assert ---
	require.NoError(t, result.Err)
	require.Contains(t, result.Output, `    NAME.with(|v| *v.borrow_mut() = String::from("Ada"));`)
	require.Contains(t, result.Output, "    print_string(NAME.with(|v| v.borrow().clone()));")
}
