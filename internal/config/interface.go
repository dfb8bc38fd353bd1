package config

import (
	"context"
	"io/fs"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Load reads node libraries and blueprints from the given paths (files
	// or directories) and translates them into the format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)

	// LoadFS does the same for every matching file below root in fsys.
	LoadFS(ctx context.Context, fsys fs.FS, root string) (*Model, error)
}
