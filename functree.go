package functree

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/functree/pkg/builder"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/grammar"
	"github.com/aretw0/functree/pkg/random"
	"github.com/aretw0/functree/pkg/serializer"
)

// Generator is the high-level entry point of the library.
// It resolves a grammar policy, owns a random provider and turns every
// Generate call into a serialized fixture.
type Generator struct {
	policy     grammar.Policy
	presetName string
	hasPolicy  bool
	registry   *grammar.Registry
	rnd        random.Provider
	seed       uint64
	seeded     bool
	namespace  string
	hooks      domain.GenerationHooks
	logger     *slog.Logger

	builder    *builder.Builder
	serializer *serializer.Serializer
}

// Option defines a functional option for configuring the Generator.
type Option func(*Generator)

// WithPreset selects a named policy from the registry (default "general").
func WithPreset(name string) Option {
	return func(g *Generator) {
		g.presetName = name
	}
}

// WithPolicy uses p directly instead of looking up a preset.
func WithPolicy(p grammar.Policy) Option {
	return func(g *Generator) {
		g.policy = p.Clone()
		g.hasPolicy = true
	}
}

// WithRegistry sets the registry presets are looked up in.
func WithRegistry(r *grammar.Registry) Option {
	return func(g *Generator) {
		g.registry = r
	}
}

// WithSeed makes the output reproducible.
func WithSeed(seed uint64) Option {
	return func(g *Generator) {
		g.seed = seed
		g.seeded = true
	}
}

// WithRandom injects a custom provider. It takes precedence over WithSeed.
func WithRandom(p random.Provider) Option {
	return func(g *Generator) {
		g.rnd = p
	}
}

// WithNamespace sets the constructor prefix of the serialized statement.
func WithNamespace(ns string) Option {
	return func(g *Generator) {
		g.namespace = ns
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.GenerationHooks) Option {
	return func(g *Generator) {
		g.hooks = g.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New initializes a Generator.
// Without WithSeed or WithRandom a seed is taken from the clock and recorded
// in every fixture so the output can be replayed.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		presetName: grammar.PresetGeneral,
		namespace:  domain.DefaultNamespace,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if !g.hasPolicy {
		if g.registry == nil {
			g.registry = grammar.NewRegistry()
		}
		p, err := g.registry.Lookup(g.presetName)
		if err != nil {
			return nil, err
		}
		g.policy = p
	}
	if err := g.policy.Validate(); err != nil {
		return nil, err
	}

	if g.rnd == nil {
		if !g.seeded {
			g.seed = uint64(time.Now().UnixNano())
			g.seeded = true
		}
		g.rnd = random.NewSeeded(g.seed)
	} else {
		g.seeded = false
		g.seed = 0
	}

	g.logger = g.logger.With("preset", g.policy.Name)
	g.builder = builder.New(random.NewTraced(g.rnd, g.logger),
		builder.WithHooks(g.hooks),
		builder.WithLogger(g.logger),
	)
	g.serializer = serializer.New(serializer.WithNamespace(g.namespace))
	return g, nil
}

// Policy returns a copy of the policy in use.
func (g *Generator) Policy() grammar.Policy {
	return g.policy.Clone()
}

// Seed reports the seed of the provider, if the generator owns a seeded one.
func (g *Generator) Seed() (uint64, bool) {
	return g.seed, g.seeded
}

// Generate builds one tree and serializes it into a statement.
// Successive calls continue the same random stream.
func (g *Generator) Generate() (domain.Fixture, error) {
	tree, err := g.builder.Build(g.policy, 0)
	if err != nil {
		return domain.Fixture{}, fmt.Errorf("failed to build expression: %w", err)
	}
	fx := domain.NewFixture(g.policy.Name, g.seed, tree, g.serializer.Statement(tree))
	g.logger.Debug("fixture generated", "id", fx.ID, "nodes", fx.Stats.Nodes, "depth", fx.Stats.Depth)
	return fx, nil
}

// Emit generates one statement and writes it to w followed by a newline.
// Nothing is written when generation fails.
func (g *Generator) Emit(w io.Writer) error {
	fx, err := g.Generate()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, fx.Statement+"\n"); err != nil {
		return fmt.Errorf("failed to write statement: %w", err)
	}
	return nil
}
