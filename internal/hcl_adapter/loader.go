package hcl_adapter

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/config"
	"github.com/specialistvlad/blueprintc/internal/ctxlog"
	"github.com/specialistvlad/blueprintc/internal/fsutil"
)

// MetadataProvider resolves node types that are not declared in the files
// being loaded, e.g. the built-in library.
type MetadataProvider interface {
	Lookup(nodeType string) (*blueprint.NodeMetadata, bool)
}

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	provider MetadataProvider
}

var _ config.Loader = (*Loader)(nil)

// Option configures a Loader.
type Option func(*Loader)

// WithMetadata lets blueprints instantiate node types known to p.
func WithMetadata(p MetadataProvider) Option {
	return func(l *Loader) { l.provider = p }
}

// NewLoader creates a new HCL configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// sourceFile is one manifest to parse. name is relative to fsys; display is
// what diagnostics show.
type sourceFile struct {
	fsys    fs.FS
	name    string
	display string
}

// Load reads every .hcl file under the given paths. Paths that do not exist
// are skipped with a warning.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []sourceFile
	seen := make(map[string]struct{})
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Warn("Configured path does not exist, skipping.", "path", path)
				continue
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if info.IsDir() {
			fsys := os.DirFS(path)
			names, err := fsutil.FindFilesByExtension(fsys, ".", ".hcl")
			if err != nil {
				return nil, fmt.Errorf("error walking %s: %w", path, err)
			}
			for _, name := range names {
				display := filepath.Join(path, filepath.FromSlash(name))
				if _, dup := seen[display]; dup {
					continue
				}
				seen[display] = struct{}{}
				files = append(files, sourceFile{fsys: fsys, name: name, display: display})
			}
		} else if filepath.Ext(path) == ".hcl" {
			if _, dup := seen[path]; dup {
				continue
			}
			seen[path] = struct{}{}
			files = append(files, sourceFile{
				fsys:    os.DirFS(filepath.Dir(path)),
				name:    filepath.Base(path),
				display: path,
			})
		}
	}
	return l.load(ctx, files)
}

// LoadFS reads every .hcl file below root in fsys.
func (l *Loader) LoadFS(ctx context.Context, fsys fs.FS, root string) (*config.Model, error) {
	names, err := fsutil.FindFilesByExtension(fsys, root, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	files := make([]sourceFile, 0, len(names))
	for _, name := range names {
		files = append(files, sourceFile{fsys: fsys, name: name, display: name})
	}
	return l.load(ctx, files)
}

type pendingBlueprint struct {
	file sourceFile
	def  *BlueprintDefinition
}

// load decodes all files first so blueprints can use node types declared
// in any of them, then translates the blueprints.
func (l *Loader) load(ctx context.Context, files []sourceFile) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Discovered HCL files.", "count", len(files))

	model := config.NewModel()
	parser := hclparse.NewParser()
	var pending []pendingBlueprint

	for _, file := range files {
		src, err := fs.ReadFile(file.fsys, file.name)
		if err != nil {
			return nil, fmt.Errorf("failed to read HCL file %s: %w", file.display, err)
		}
		hclFile, diags := parser.ParseHCL(src, file.display)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file.display, diags)
		}

		var root fileRoot
		diags = gohcl.DecodeBody(hclFile.Body, nil, &root)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file.display, diags)
		}

		for _, def := range root.Nodes {
			if _, exists := model.Nodes[def.Type]; exists {
				return nil, fmt.Errorf("node type '%s' in %s is already defined", def.Type, file.display)
			}
			meta, err := l.translateNodeDefinition(ctx, file, def)
			if err != nil {
				return nil, err
			}
			model.Nodes[def.Type] = meta
		}
		for _, def := range root.Blueprints {
			pending = append(pending, pendingBlueprint{file: file, def: def})
		}
	}

	provider := layeredProvider{model: model.Nodes, fallback: l.provider}
	for _, p := range pending {
		bp, err := l.translateBlueprint(ctx, provider, p.file, p.def)
		if err != nil {
			return nil, err
		}
		if existing := model.Blueprint(bp.Name()); existing != nil {
			return nil, fmt.Errorf("blueprint '%s' is defined in both %s and %s", bp.Name(), existing.Source, bp.Source)
		}
		model.Blueprints = append(model.Blueprints, bp)
	}

	logger.Debug("HCL loading complete.", "node_types", len(model.Nodes), "blueprints", len(model.Blueprints))
	return model, nil
}

// layeredProvider prefers node types declared alongside the blueprint.
type layeredProvider struct {
	model    map[string]*blueprint.NodeMetadata
	fallback MetadataProvider
}

func (p layeredProvider) Lookup(nodeType string) (*blueprint.NodeMetadata, bool) {
	if meta, ok := p.model[nodeType]; ok {
		return meta, true
	}
	if p.fallback == nil {
		return nil, false
	}
	return p.fallback.Lookup(nodeType)
}
