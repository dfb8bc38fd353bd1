package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/specialistvlad/blueprintc/internal/codegen"
	"github.com/specialistvlad/blueprintc/internal/compiler"
	"github.com/specialistvlad/blueprintc/internal/config"
	"github.com/specialistvlad/blueprintc/internal/ctxlog"
	"github.com/specialistvlad/blueprintc/internal/dataflow"
	"github.com/specialistvlad/blueprintc/internal/hcl_adapter"
	"github.com/specialistvlad/blueprintc/internal/publish"
	"github.com/specialistvlad/blueprintc/internal/registry"
)

// Run loads the configured blueprints, compiles each one in name order,
// writes the results and publishes them when a publisher is configured.
// Nothing is written unless every blueprint compiles.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	model, err := a.loadBlueprints(ctx)
	if err != nil {
		return err
	}

	reg, err := a.runRegistry(ctx, model)
	if err != nil {
		return err
	}

	comp := compiler.New(reg, compiler.WithOptions(codegen.Options{DeclareStorage: a.config.DeclareStorage}))
	var artifacts []publish.Artifact
	for _, bp := range model.SortedBlueprints() {
		code, err := comp.CompileWithVariables(ctx, bp.Graph, bp.Variables)
		if err != nil {
			return fmt.Errorf("compiling blueprint '%s' from %s: %w", bp.Name(), bp.Source, err)
		}
		artifacts = append(artifacts, publish.Artifact{Name: bp.Name(), Source: code})
	}

	if err := a.write(ctx, artifacts); err != nil {
		return err
	}

	if a.publisher != nil {
		if err := a.publisher.Publish(ctx, artifacts); err != nil {
			return fmt.Errorf("publishing failed: %w", err)
		}
		a.logger.Info("Published compiled blueprints.", "count", len(artifacts))
	}

	a.logger.Info("🏁 Compilation finished.", "blueprints", len(artifacts))
	return nil
}

func (a *App) loadBlueprints(ctx context.Context) (*config.Model, error) {
	loader := hcl_adapter.NewLoader(hcl_adapter.WithMetadata(a.registry))
	model, err := loader.Load(ctx, a.config.GraphPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load blueprints: %w", err)
	}
	if len(model.Blueprints) == 0 {
		return nil, fmt.Errorf("no blueprints found in %s", a.config.GraphPath)
	}
	a.logger.Info("Blueprints loaded.", "path", a.config.GraphPath, "count", len(model.Blueprints))
	return model, nil
}

// runRegistry adds node types declared next to the blueprints. The app's
// own registry is left untouched.
func (a *App) runRegistry(ctx context.Context, model *config.Model) (*registry.Registry, error) {
	if len(model.Nodes) == 0 {
		return a.registry, nil
	}
	reg := a.registry.Clone()
	if err := reg.PopulateFromModel(model); err != nil {
		return nil, fmt.Errorf("failed to register node types from %s: %w", a.config.GraphPath, err)
	}
	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}
	a.logger.Debug("Node types from blueprint files registered.", "count", len(model.Nodes))
	return reg, nil
}

// write emits every artifact to the output writer, or to <name>.rs files
// under the output directory.
func (a *App) write(ctx context.Context, artifacts []publish.Artifact) error {
	logger := ctxlog.FromContext(ctx)
	if a.config.OutDir == "" {
		for _, art := range artifacts {
			if _, err := io.WriteString(a.outW, art.Source); err != nil {
				return fmt.Errorf("writing %s: %w", art.Name, err)
			}
		}
		return nil
	}

	if err := os.MkdirAll(a.config.OutDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for _, art := range artifacts {
		path := filepath.Join(a.config.OutDir, OutputFileName(art.Name))
		if err := os.WriteFile(path, []byte(art.Source), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Info("Wrote compiled blueprint.", "blueprint", art.Name, "path", path, "bytes", len(art.Source))
	}
	return nil
}

// OutputFileName is the file a blueprint compiles to.
func OutputFileName(blueprintName string) string {
	return dataflow.SanitizeIdent(blueprintName) + ".rs"
}
