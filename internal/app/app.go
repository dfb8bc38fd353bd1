package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/blueprintc/internal/ctxlog"
	"github.com/specialistvlad/blueprintc/internal/hcl_adapter"
	"github.com/specialistvlad/blueprintc/internal/publish"
	"github.com/specialistvlad/blueprintc/internal/registry"
	"github.com/specialistvlad/blueprintc/internal/stdlib"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	registry  *registry.Registry
	publisher publish.Publisher
}

// Option customizes an App.
type Option func(*appOptions)

type appOptions struct {
	modules   []registry.Module
	publisher publish.Publisher
}

// WithModules registers node types defined in Go code.
func WithModules(modules ...registry.Module) Option {
	return func(o *appOptions) { o.modules = append(o.modules, modules...) }
}

// WithPublisher overrides the publisher built from Config.NotifyURL.
func WithPublisher(p publish.Publisher) Option {
	return func(o *appOptions) { o.publisher = p }
}

// NewApp builds an App with its own logger and registry. Generated code goes
// to outW; logs go to logW. The registry holds the standard library, any Go
// modules and the manifests under Config.LibraryPath, and must validate.
func NewApp(outW, logW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	var o appOptions
	for _, opt := range opts {
		opt(&o)
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if err := stdlib.Load(ctx, reg); err != nil {
		return nil, err
	}
	for _, mod := range o.modules {
		mod.Register(reg)
	}
	logger.Debug("Built-in node types registered.", "count", reg.Len(), "modules", len(o.modules))

	if cfg.LibraryPath != "" {
		model, err := hcl_adapter.NewLoader().Load(ctx, cfg.LibraryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load node library: %w", err)
		}
		if len(model.Blueprints) > 0 {
			logger.Warn("Blueprints found in the node library are ignored.", "path", cfg.LibraryPath, "count", len(model.Blueprints))
		}
		if err := reg.PopulateFromModel(model); err != nil {
			return nil, fmt.Errorf("failed to register node library: %w", err)
		}
		logger.Debug("Node library registered.", "path", cfg.LibraryPath, "node_types", len(model.Nodes))
	}

	if err := reg.Validate(ctx); err != nil {
		return nil, err
	}
	logger.Debug("Registry validation passed.", "node_types", reg.Len())

	publisher := o.publisher
	if publisher == nil && cfg.NotifyURL != "" {
		p, err := publish.NewSocketIO(cfg.NotifyURL, publish.SocketIOOptions{})
		if err != nil {
			return nil, fmt.Errorf("invalid notify URL: %w", err)
		}
		publisher = p
	}

	return &App{
		outW:      outW,
		logger:    logger,
		config:    cfg,
		registry:  reg,
		publisher: publisher,
	}, nil
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
