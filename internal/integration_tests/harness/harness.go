// Package harness runs the whole application against HCL files written to
// a temporary directory.
package harness

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/blueprintc/internal/app"
	"github.com/specialistvlad/blueprintc/internal/registry"
	"github.com/specialistvlad/blueprintc/internal/testutil"
	"github.com/stretchr/testify/require"
)

// Result captures everything a run produced.
type Result struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// Run writes files below a temporary root and compiles it. Paths under
// "graphs/" are blueprints; paths under "library/" are node manifests.
func Run(t *testing.T, files map[string]string, modules ...registry.Module) *Result {
	t.Helper()
	return RunWithContext(context.Background(), t, files, modules...)
}

// RunWithContext is Run with a caller-provided context.
func RunWithContext(ctx context.Context, t *testing.T, files map[string]string, modules ...registry.Module) *Result {
	t.Helper()

	root := testutil.WriteFiles(t, files)
	graphDir := filepath.Join(root, "graphs")
	require.NoError(t, os.MkdirAll(graphDir, 0o755))

	cfg := &app.Config{
		GraphPath: graphDir,
		LogLevel:  "debug",
		LogFormat: "text",
	}
	if info, err := os.Stat(filepath.Join(root, "library")); err == nil && info.IsDir() {
		cfg.LibraryPath = filepath.Join(root, "library")
	}

	out := &bytes.Buffer{}
	logs := &testutil.SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("BLUEPRINTC_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
	})

	a, err := app.NewApp(out, logs, cfg, app.WithModules(modules...))
	if err != nil {
		return &Result{LogOutput: logs.String(), Err: fmt.Errorf("application startup failed | %w", err)}
	}

	err = a.Run(ctx)
	return &Result{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       err,
		App:       a,
	}
}
