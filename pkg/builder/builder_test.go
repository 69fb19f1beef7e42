package builder_test

import (
	"testing"

	"github.com/aretw0/functree/pkg/builder"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/grammar"
	"github.com/aretw0/functree/pkg/random"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_ForcedSequence(t *testing.T) {
	rnd := random.NewSequence(80, 0, 30, 42, 30, 7)
	tree, err := builder.New(rnd).Build(grammar.General(), 0)
	require.NoError(t, err)

	want := domain.NewBinary(domain.OpAdd, domain.NewConst(42), domain.NewConst(7))
	assert.True(t, want.Equal(tree))
	assert.Zero(t, rnd.Remaining(), "every forced draw is consumed")
}

func TestBuild_DrawOrder(t *testing.T) {
	// depth 0 unary Tanh; depth 1 binary Div; left variable y; right constant 99.
	rnd := random.NewSequence(50, 0, 90, 1, 10, 1, 25, 99)
	tree, err := builder.New(rnd).Build(grammar.General(), 0)
	require.NoError(t, err)

	want := domain.NewUnary(domain.OpTanh,
		domain.NewBinary(domain.OpDiv, domain.NewVariable("y"), domain.NewConst(99)))
	assert.True(t, want.Equal(tree))
}

func TestBuild_LeafOnlyAtDepthCap(t *testing.T) {
	// A draw of 100 selects binary everywhere except at the cap, where it selects a constant.
	draws := []int{100, 0}
	draws = append(draws, 100, 0, 100, 0, 100, 5, 100, 6, 100, 0, 100, 7, 100, 8)
	draws = append(draws, 100, 0, 100, 0, 100, 9, 100, 10, 100, 0, 100, 11, 100, 12)
	rnd := random.NewSequence(draws...)

	tree, err := builder.New(rnd).Build(grammar.General(), 0)
	require.NoError(t, err)
	assert.Equal(t, 3, tree.Depth())
	assert.Equal(t, grammar.General().MaxNodes(), tree.Size(), "a full tree reaches the node bound")
	assert.Zero(t, rnd.Remaining())
}

func TestBuild_BinaryOnlyRoot(t *testing.T) {
	// No production draw for the root: operator pick, then two constant leaves.
	rnd := random.NewSequence(0, 30, 1, 30, 2)
	tree, err := builder.New(rnd).Build(grammar.BinaryOnly(), 0)
	require.NoError(t, err)

	want := domain.NewBinary(domain.OpAdd, domain.NewConst(1), domain.NewConst(2))
	assert.True(t, want.Equal(tree))
}

func TestBuild_Properties(t *testing.T) {
	presets := []grammar.Policy{grammar.General(), grammar.BinaryOnly()}

	for _, policy := range presets {
		t.Run(policy.Name, func(t *testing.T) {
			for seed := uint64(0); seed < 500; seed++ {
				tree, err := builder.New(random.NewSeeded(seed)).Build(policy, 0)
				require.NoError(t, err)

				assert.LessOrEqual(t, tree.Depth(), policy.MaxDepth, "seed %d", seed)
				assert.LessOrEqual(t, tree.Size(), policy.MaxNodes(), "seed %d", seed)

				tree.Walk(func(n *domain.Node, depth int) bool {
					switch n.Kind() {
					case domain.KindConst:
						assert.GreaterOrEqual(t, n.Value(), policy.ConstMin)
						assert.LessOrEqual(t, n.Value(), policy.ConstMax)
					case domain.KindVariable:
						assert.Contains(t, policy.Variables, n.Name())
					case domain.KindUnary:
						assert.Contains(t, policy.UnaryOps, n.Name())
						assert.Len(t, n.Children(), 1)
						assert.Less(t, depth, policy.MaxDepth)
					case domain.KindBinary:
						assert.Contains(t, policy.BinaryOps, n.Name())
						assert.Len(t, n.Children(), 2)
						assert.Less(t, depth, policy.MaxDepth)
					}
					return true
				})

				if policy.Name == grammar.PresetBinaryOnly {
					assert.Equal(t, domain.KindBinary, tree.Kind(), "seed %d", seed)
				}
			}
		})
	}
}

func TestBuild_Deterministic(t *testing.T) {
	for seed := uint64(0); seed < 50; seed++ {
		a, err := builder.New(random.NewSeeded(seed)).Build(grammar.General(), 0)
		require.NoError(t, err)
		b, err := builder.New(random.NewSeeded(seed)).Build(grammar.General(), 0)
		require.NoError(t, err)
		assert.True(t, a.Equal(b), "seed %d", seed)
	}
}

func TestBuild_ProviderFailurePropagates(t *testing.T) {
	rnd := random.NewSequence(80, 0, 30)
	_, err := builder.New(rnd).Build(grammar.General(), 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrRandomnessUnavailable)
	assert.Contains(t, err.Error(), "depth 1")
}

func TestBuild_RejectsInvalidPolicy(t *testing.T) {
	policy := grammar.General()
	policy.Variables = nil

	rnd := random.NewSequence(1)
	_, err := builder.New(rnd).Build(policy, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidPolicy)
	assert.Equal(t, 1, rnd.Remaining(), "validation happens before any draw")
}

func TestBuild_Hooks(t *testing.T) {
	var nodes []domain.NodeEvent
	var trees []domain.TreeEvent
	hooks := domain.GenerationHooks{
		OnNode: func(e *domain.NodeEvent) { nodes = append(nodes, *e) },
		OnTree: func(e *domain.TreeEvent) { trees = append(trees, *e) },
	}

	b := builder.New(random.NewSequence(80, 1, 30, 42, 10, 2), builder.WithHooks(hooks))
	tree, err := b.Build(grammar.General(), 0)
	require.NoError(t, err)

	require.Len(t, nodes, 3)
	assert.Equal(t, domain.KindConst, nodes[0].Kind)
	assert.Equal(t, 42, nodes[0].Value)
	assert.Equal(t, 1, nodes[0].Depth)
	assert.Equal(t, "z", nodes[1].Name)
	assert.Equal(t, domain.OpDiv, nodes[2].Name, "parents fire after their operands")
	assert.Equal(t, 0, nodes[2].Depth)

	require.Len(t, trees, 1)
	assert.Equal(t, tree.Stats(), trees[0].Stats)
	assert.NoError(t, trees[0].Err)

	_, err = b.Build(grammar.General(), 0)
	require.Error(t, err)
	require.Len(t, trees, 2)
	assert.ErrorIs(t, trees[1].Err, domain.ErrRandomnessUnavailable)
}
