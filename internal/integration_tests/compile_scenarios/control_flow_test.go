package compile_scenarios

import (
	"testing"

	"github.com/specialistvlad/blueprintc/internal/codegen"
	"github.com/specialistvlad/blueprintc/internal/integration_tests/harness"
	"github.com/stretchr/testify/require"
)

// TestCompile_BranchInlinesBothPaths checks each branch lands in its own
// placeholder.
func TestCompile_BranchInlinesBothPaths(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	graph := `
		blueprint "guard" {
			node "start" { type = "begin_play" }
			node "roll" {
				type = "random_range"
				input "min" { value = 0 }
				input "max" { value = 1 }
			}
			node "check" { type = "branch" }
			node "big" {
				type = "greater_than"
				input "b" { value = 0.5 }
			}
			node "yes" {
				type = "print_string"
				input "message" { value = "heads" }
			}
			node "no" {
				type = "print_string"
				input "message" { value = "tails" }
			}
			connect {
				from = "start.then"
				to   = "roll.exec"
			}
			connect {
				from = "roll.then"
				to   = "check.exec"
			}
			connect {
				from = "roll.result"
				to   = "big.a"
			}
			connect {
				from = "big.result"
				to   = "check.condition"
			}
			connect {
				from = "check.then"
				to   = "yes.exec"
			}
			connect {
				from = "check.else"
				to   = "no.exec"
			}
		}
	`

	// --- Act ---
	result := harness.Run(t, map[string]string{"graphs/guard.hcl": graph})

	// --- Assert ---
	require.NoError(t, result.Err)
	want := codegen.Header + `use pulsar_std::io::print_string;
use pulsar_std::math::greater_than;
use pulsar_std::math::random_range;

pub fn begin_play() {
    let roll_result = random_range(0.0, 1.0);
    if greater_than(roll_result, 0.5) {
        print_string("heads");
    } else {
        print_string("tails");
    }
}

`
	require.Equal(t, want, result.Output)
}

// TestCompile_SequenceAndLoop nests a loop inside a sequence.
func TestCompile_SequenceAndLoop(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	graph := `
		blueprint "steps" {
			node "start" { type = "main" }
			node "seq" { type = "sequence" }
			node "loop" {
				type = "for_loop"
				input "start" { value = 0 }
				input "end" { value = 2 }
			}
			node "body" {
				type = "print_string"
				input "message" { value = "again" }
			}
			node "last" {
				type = "print_string"
				input "message" { value = "bye" }
			}
			connect {
				from = "start.then"
				to   = "seq.exec"
			}
			connect {
				from = "seq.then_0"
				to   = "loop.exec"
			}
			connect {
				from = "loop.body"
				to   = "body.exec"
			}
			connect {
				from = "seq.then_1"
				to   = "last.exec"
			}
		}
	`

	// --- Act ---
	result := harness.Run(t, map[string]string{"graphs/steps.hcl": graph})

	// --- Assert ---
	require.NoError(t, result.Err)
	want := codegen.Header + `use pulsar_std::io::print_string;

pub fn main() {
    for index in 0..2 {
        print_string("again");
    }
    print_string("bye");
}

`
	require.Equal(t, want, result.Output)
}
