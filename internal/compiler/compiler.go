package compiler

import (
	"context"
	"fmt"
	"sync"

	"github.com/specialistvlad/blueprintc/internal/blueprint"
	"github.com/specialistvlad/blueprintc/internal/codegen"
	"github.com/specialistvlad/blueprintc/internal/ctxlog"
	"github.com/specialistvlad/blueprintc/internal/dataflow"
	"github.com/specialistvlad/blueprintc/internal/registry"
	"github.com/specialistvlad/blueprintc/internal/routing"
	"github.com/specialistvlad/blueprintc/internal/stdlib"
)

// MetadataProvider resolves node-type metadata.
type MetadataProvider interface {
	Lookup(nodeType string) (*blueprint.NodeMetadata, bool)
}

// Expander rewrites a graph before analysis, e.g. to inline sub-graph
// instances. It receives a private copy and may modify it in place.
type Expander interface {
	Expand(ctx context.Context, g *blueprint.Graph) (*blueprint.Graph, error)
}

// ExpanderFunc adapts a function to the Expander interface.
type ExpanderFunc func(ctx context.Context, g *blueprint.Graph) (*blueprint.Graph, error)

// Expand calls f.
func (f ExpanderFunc) Expand(ctx context.Context, g *blueprint.Graph) (*blueprint.Graph, error) {
	return f(ctx, g)
}

// Compiler compiles graphs against one metadata provider.
type Compiler struct {
	provider MetadataProvider
	expander Expander
	opts     codegen.Options
}

// Option configures a Compiler.
type Option func(*Compiler)

// WithExpander runs e before analysis.
func WithExpander(e Expander) Option {
	return func(c *Compiler) { c.expander = e }
}

// WithOptions sets the code generator options.
func WithOptions(opts codegen.Options) Option {
	return func(c *Compiler) { c.opts = opts }
}

// New creates a compiler that resolves node types through provider.
func New(provider MetadataProvider, opts ...Option) *Compiler {
	c := &Compiler{provider: provider}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compile generates the program for a graph without class variables.
func (c *Compiler) Compile(ctx context.Context, g *blueprint.Graph) (string, error) {
	return c.CompileWithVariables(ctx, g, nil)
}

// CompileWithVariables generates the program for a graph whose getter and
// setter nodes access the given variables (name to Rust type). The input
// graph is never modified.
func (c *Compiler) CompileWithVariables(ctx context.Context, g *blueprint.Graph, variables map[string]string) (string, error) {
	logger := ctxlog.FromContext(ctx).With("graph", g.Name)
	ctx = ctxlog.WithLogger(ctx, logger)

	logger.Info("Starting Blueprint compilation.", "nodes", len(g.Nodes), "connections", len(g.Connections), "variables", len(variables))

	graph := g
	if c.expander != nil {
		logger.Info("Phase 0: Expanding sub-graphs...")
		expanded, err := c.expander.Expand(ctx, g.Clone())
		if err != nil {
			return "", fmt.Errorf("expanding graph %s: %w", g.Name, err)
		}
		if expanded == nil {
			return "", fmt.Errorf("expanding graph %s: %w", g.Name, &blueprint.StructuralError{Msg: "expander returned no graph"})
		}
		graph = expanded
		logger.Debug("Expansion complete.", "nodes", len(graph.Nodes), "connections", len(graph.Connections))
	}

	logger.Info("Phase 1: Loading node metadata...")
	if counted, ok := c.provider.(interface{ Len() int }); ok {
		logger.Info("Node metadata available.", "node_types", counted.Len())
	}

	logger.Info("Phase 2: Analyzing data flow...")
	resolver, err := dataflow.Build(ctx, graph, c.provider)
	if err != nil {
		return "", fmt.Errorf("analyzing data flow of %s: %w", g.Name, err)
	}
	logger.Info("Data flow analysis complete.", "pure_nodes", len(resolver.PureOrder()))

	logger.Info("Phase 3: Analyzing execution flow...")
	router, err := routing.Build(ctx, graph)
	if err != nil {
		return "", fmt.Errorf("analyzing execution flow of %s: %w", g.Name, err)
	}
	logger.Info("Execution flow analysis complete.")

	logger.Info("Phase 4: Generating Rust code...")
	code, err := codegen.New(graph, c.provider, resolver, router, variables, c.opts).Generate(ctx)
	if err != nil {
		return "", fmt.Errorf("generating code for %s: %w", g.Name, err)
	}
	logger.Info("Code generation complete.", "bytes", len(code))
	logger.Info("Compilation successful.")
	return code, nil
}

var standardRegistry = sync.OnceValues(func() (*registry.Registry, error) {
	reg := registry.New()
	if err := stdlib.Load(context.Background(), reg); err != nil {
		return nil, err
	}
	return reg, nil
})

// Standard returns a compiler backed by the embedded standard library.
func Standard(opts ...Option) (*Compiler, error) {
	reg, err := standardRegistry()
	if err != nil {
		return nil, err
	}
	return New(reg, opts...), nil
}

// Compile compiles g against the standard library.
func Compile(ctx context.Context, g *blueprint.Graph) (string, error) {
	return CompileWithVariables(ctx, g, nil)
}

// CompileWithVariables compiles g against the standard library with the
// given class variables.
func CompileWithVariables(ctx context.Context, g *blueprint.Graph, variables map[string]string) (string, error) {
	c, err := Standard()
	if err != nil {
		return "", err
	}
	return c.CompileWithVariables(ctx, g, variables)
}
