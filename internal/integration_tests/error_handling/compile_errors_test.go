package error_handling

import (
	"errors"
	"testing"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/integration_tests/harness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCompileErrors_AbortWithoutOutput checks that each failure class is
// reported with its typed error and that nothing is written.
func TestCompileErrors_AbortWithoutOutput(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		graph   string
		check   func(t *testing.T, err error)
		wantMsg string
	}{
		{
			name: "no event node",
			graph: `
				blueprint "idle" {
					node "p" { type = "print_string" }
				}
			`,
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, blueprint.ErrStructural) },
			wantMsg: "no event nodes found in graph",
		},
		{
			name: "undeclared variable",
			graph: `
				blueprint "ghost" {
					node "start" { type = "begin_play" }
					node "read" { type = "get_missing" }
					node "p" { type = "print_number" }
					connect {
						from = "start.then"
						to   = "p.exec"
					}
					connect {
						from = "read.value"
						to   = "p.value"
					}
				}
			`,
			check: func(t *testing.T, err error) {
				assert.True(t, blueprint.IsContract(err, blueprint.UndeclaredVariable))
			},
			wantMsg: `variable "missing" not found`,
		},
		{
			name: "pure data cycle",
			graph: `
				blueprint "loop" {
					node "start" { type = "begin_play" }
					node "a" { type = "add" }
					node "b" { type = "add" }
					node "p" { type = "print_number" }
					connect {
						from = "a.result"
						to   = "b.a"
					}
					connect {
						from = "b.result"
						to   = "a.a"
					}
					connect {
						from = "a.result"
						to   = "p.value"
					}
					connect {
						from = "start.then"
						to   = "p.exec"
					}
				}
			`,
			check: func(t *testing.T, err error) {
				assert.True(t, blueprint.IsContract(err, blueprint.DataCycle))
			},
			wantMsg: "cycle detected",
		},
		{
			name: "two sources for one input",
			graph: `
				blueprint "crowded" {
					node "start" { type = "begin_play" }
					node "x" {
						type = "random_range"
					}
					node "y" {
						type = "random_range"
					}
					node "p" { type = "print_number" }
					connect {
						from = "x.result"
						to   = "p.value"
					}
					connect {
						from = "y.result"
						to   = "p.value"
					}
				}
			`,
			check:   func(t *testing.T, err error) { assert.ErrorIs(t, err, blueprint.ErrStructural) },
			wantMsg: "input p.p_value is fed by both",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			// --- Act ---
			result := harness.Run(t, map[string]string{"graphs/main.hcl": tc.graph})

			// --- Assert ---
			require.Error(t, result.Err)
			assert.ErrorContains(t, result.Err, tc.wantMsg)
			tc.check(t, result.Err)
			assert.Empty(t, result.Output, "a failed compilation produces no partial output")
		})
	}
}

// TestStartupValidation_TemplateMismatch_Fails rejects a control-flow node
// whose template does not place every declared exec output.
func TestStartupValidation_TemplateMismatch_Fails(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	files := map[string]string{
		"library/gate.hcl": `
			node "gate" {
				kind          = "control_flow"
				exec_outputs  = ["open", "closed"]
				template_file = "gate.rs"
				param "key" { type = "bool" }
			}
		`,
		"library/gate.rs": "if ${param.key} {\n    ${exec.open}\n}\n${exec.later}\n",
	}

	// --- Act ---
	result := harness.Run(t, files)

	// --- Assert ---
	require.Error(t, result.Err)
	require.Nil(t, result.App)
	assert.ErrorContains(t, result.Err, "application startup failed")
	assert.ErrorContains(t, result.Err, "exec output 'closed' is never placed by the template")
	assert.ErrorContains(t, result.Err, "template references exec output 'later' which is not declared")
}

// TestInvalidHCL_IsRejected reports the offending file.
func TestInvalidHCL_IsRejected(t *testing.T) {
	t.Parallel()

	result := harness.Run(t, map[string]string{"graphs/broken.hcl": `blueprint "x" { node "a" {`})

	require.Error(t, result.Err)
	assert.ErrorContains(t, result.Err, "failed to parse HCL file")
	assert.ErrorContains(t, result.Err, "broken.hcl")
	assert.False(t, errors.Is(result.Err, blueprint.ErrStructural))
}
