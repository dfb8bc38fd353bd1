package stdlib

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/specialistvlad/blueprintc/internal/config"
	"github.com/specialistvlad/blueprintc/internal/ctxlog"
	"github.com/specialistvlad/blueprintc/internal/hcl_adapter"
	"github.com/specialistvlad/blueprintc/internal/registry"
)

//go:embed library
var embedded embed.FS

// FS returns the library manifests and templates, rooted at the library
// directory.
func FS() fs.FS {
	sub, err := fs.Sub(embedded, "library")
	if err != nil {
		panic(fmt.Sprintf("embedded library is missing: %v", err))
	}
	return sub
}

// Model loads the standard library into a configuration model.
func Model(ctx context.Context) (*config.Model, error) {
	model, err := hcl_adapter.NewLoader().LoadFS(ctx, FS(), ".")
	if err != nil {
		return nil, fmt.Errorf("loading standard library: %w", err)
	}
	return model, nil
}

// Load registers every standard node type in reg.
func Load(ctx context.Context, reg *registry.Registry) error {
	model, err := Model(ctx)
	if err != nil {
		return err
	}
	if err := reg.PopulateFromModel(model); err != nil {
		return fmt.Errorf("registering standard library: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Standard library registered.", "node_types", len(model.Nodes))
	return nil
}
