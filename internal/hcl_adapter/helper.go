package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/blueprintc/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// isExprDefined checks if an HCL expression was actually present in the
// source. gohcl fills omitted optional expression fields with a zero-width
// placeholder, so a nil check is insufficient.
func isExprDefined(ctx context.Context, expr hcl.Expression, attrName string) bool {
	if expr == nil {
		return false
	}
	exprRange := expr.Range()
	isDefined := exprRange.End.Byte > exprRange.Start.Byte

	ctxlog.FromContext(ctx).Debug("Checking if HCL attribute was explicitly defined.",
		"attribute", attrName,
		"hcl_range", exprRange.String(),
		"is_defined", isDefined,
	)
	return isDefined
}

// staticString evaluates an expression that must be a literal string.
func staticString(expr hcl.Expression, what string) (string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("%s: %w", what, diags)
	}
	if val.IsNull() || !val.Type().Equals(cty.String) {
		return "", diagError(expr.Range(), "Invalid "+what, fmt.Sprintf("The %s must be a string.", what))
	}
	return val.AsString(), nil
}

// diagError wraps a single error diagnostic pointing at rng.
func diagError(rng hcl.Range, summary, detail string) error {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  rng.Ptr(),
	}}
}
