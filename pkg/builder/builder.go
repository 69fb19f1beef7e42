package builder

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/grammar"
	"github.com/aretw0/functree/pkg/random"
)

// Builder grows expression trees by consulting a grammar policy for every node.
// A Builder is not safe for concurrent use because its provider is not.
type Builder struct {
	rnd    random.Provider
	hooks  domain.GenerationHooks
	logger *slog.Logger
}

// Option defines a functional option for configuring the Builder.
type Option func(*Builder)

// WithHooks registers observability hooks.
func WithHooks(hooks domain.GenerationHooks) Option {
	return func(b *Builder) {
		b.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the builder.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New creates a Builder that draws from rnd.
func New(rnd random.Provider, opts ...Option) *Builder {
	b := &Builder{rnd: rnd}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return b
}

// Build produces a tree rooted at the given depth.
// Callers normally pass depth 0; a larger depth builds a subtree that is
// already that many levels below the root.
func (b *Builder) Build(policy grammar.Policy, depth int) (*domain.Node, error) {
	if err := policy.Validate(); err != nil {
		b.emitTree(policy.Name, nil, err)
		return nil, err
	}

	var (
		root *domain.Node
		err  error
	)
	if kind, forced := policy.RootKind(); forced && depth == 0 {
		root, err = b.produce(policy, depth, kind)
	} else {
		root, err = b.node(policy, depth)
	}
	if err != nil {
		b.logger.Debug("build failed", "preset", policy.Name, "error", err)
		b.emitTree(policy.Name, nil, err)
		return nil, err
	}

	b.logger.Debug("build complete", "preset", policy.Name, "nodes", root.Size(), "depth", root.Depth())
	b.emitTree(policy.Name, root, nil)
	return root, nil
}

// node draws the production for one position and builds it.
func (b *Builder) node(policy grammar.Policy, depth int) (*domain.Node, error) {
	draw, err := b.rnd.UniformInt(grammar.DrawMin, grammar.DrawMax)
	if err != nil {
		return nil, fmt.Errorf("depth %d: production draw: %w", depth, err)
	}
	return b.produce(policy, depth, policy.Choose(depth, draw))
}

// produce builds a node of a known kind. Operators are picked before their
// operands, and the left operand is built before the right one.
func (b *Builder) produce(policy grammar.Policy, depth int, kind domain.Kind) (*domain.Node, error) {
	var n *domain.Node

	switch kind {
	case domain.KindBinary:
		op, err := b.rnd.PickOne(policy.BinaryOps)
		if err != nil {
			return nil, fmt.Errorf("depth %d: binary operator: %w", depth, err)
		}
		left, err := b.node(policy, depth+1)
		if err != nil {
			return nil, err
		}
		right, err := b.node(policy, depth+1)
		if err != nil {
			return nil, err
		}
		n = domain.NewBinary(op, left, right)

	case domain.KindUnary:
		op, err := b.rnd.PickOne(policy.UnaryOps)
		if err != nil {
			return nil, fmt.Errorf("depth %d: unary operator: %w", depth, err)
		}
		child, err := b.node(policy, depth+1)
		if err != nil {
			return nil, err
		}
		n = domain.NewUnary(op, child)

	case domain.KindConst:
		v, err := b.rnd.UniformInt(policy.ConstMin, policy.ConstMax)
		if err != nil {
			return nil, fmt.Errorf("depth %d: constant: %w", depth, err)
		}
		n = domain.NewConst(v)

	case domain.KindVariable:
		name, err := b.rnd.PickOne(policy.Variables)
		if err != nil {
			return nil, fmt.Errorf("depth %d: variable: %w", depth, err)
		}
		n = domain.NewVariable(name)

	default:
		return nil, fmt.Errorf("depth %d: %w: no production for %s", depth, domain.ErrInvalidPolicy, kind)
	}

	b.emitNode(policy.Name, n, depth)
	return n, nil
}

func (b *Builder) emitNode(preset string, n *domain.Node, depth int) {
	if b.hooks.OnNode == nil {
		return
	}
	b.hooks.OnNode(&domain.NodeEvent{
		Preset: preset,
		Kind:   n.Kind(),
		Name:   n.Name(),
		Value:  n.Value(),
		Depth:  depth,
	})
}

func (b *Builder) emitTree(preset string, root *domain.Node, err error) {
	if b.hooks.OnTree == nil {
		return
	}
	ev := &domain.TreeEvent{Preset: preset, Err: err}
	if root != nil {
		ev.Stats = root.Stats()
	}
	b.hooks.OnTree(ev)
}
