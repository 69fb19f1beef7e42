package serializer_test

import (
	"strings"
	"testing"

	"github.com/aretw0/functree/pkg/builder"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/grammar"
	"github.com/aretw0/functree/pkg/random"
	"github.com/aretw0/functree/pkg/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *domain.Node {
	return domain.NewBinary(domain.OpAdd,
		domain.NewConst(42),
		domain.NewUnary(domain.OpTanh,
			domain.NewBinary(domain.OpDiv, domain.NewVariable("x"), domain.NewConst(7))))
}

func TestSerialize(t *testing.T) {
	tests := []struct {
		name string
		node *domain.Node
		want string
	}{
		{"const", domain.NewConst(42), "new FunctionTree.Const(42)"},
		{"variable", domain.NewVariable("x"), `new FunctionTree.Variable("x")`},
		{"unary", domain.NewUnary(domain.OpTanh, domain.NewVariable("y")),
			`new FunctionTree.Tanh(new FunctionTree.Variable("y"))`},
		{"binary", domain.NewBinary(domain.OpAdd, domain.NewConst(42), domain.NewConst(7)),
			"new FunctionTree.Add(new FunctionTree.Const(42), new FunctionTree.Const(7))"},
		{"nested", sample(),
			`new FunctionTree.Add(new FunctionTree.Const(42), new FunctionTree.Tanh(new FunctionTree.Div(new FunctionTree.Variable("x"), new FunctionTree.Const(7))))`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, serializer.Serialize(tt.node))
		})
	}
}

func TestStatement_ForcedSequence(t *testing.T) {
	tree, err := builder.New(random.NewSequence(80, 0, 30, 42, 30, 7)).Build(grammar.General(), 0)
	require.NoError(t, err)

	assert.Equal(t,
		"new FunctionTree.Add(new FunctionTree.Const(42), new FunctionTree.Const(7));",
		serializer.Statement(tree))
}

func TestSerializer_Options(t *testing.T) {
	s := serializer.New(serializer.WithNamespace("ft"), serializer.WithSeparator(","))
	node := domain.NewBinary(domain.OpDiv, domain.NewConst(1), domain.NewVariable("z"))
	assert.Equal(t, `ft.Div(ft.Const(1),ft.Variable("z"));`, s.Statement(node))
}

func TestStatement_Balanced(t *testing.T) {
	for _, policy := range []grammar.Policy{grammar.General(), grammar.BinaryOnly()} {
		for seed := uint64(0); seed < 300; seed++ {
			tree, err := builder.New(random.NewSeeded(seed)).Build(policy, 0)
			require.NoError(t, err)
			out := serializer.Statement(tree)

			assert.Equal(t, strings.Count(out, "("), strings.Count(out, ")"), "%s seed %d", policy.Name, seed)
			assert.Equal(t, 1, strings.Count(out, ";"))
			assert.True(t, strings.HasSuffix(out, ");"))
			assert.Equal(t, tree.Size(), strings.Count(out, "new FunctionTree."), "one constructor per node")

			if policy.Name == grammar.PresetBinaryOnly {
				assert.True(t, strings.HasPrefix(out, "new FunctionTree.Add("))
				assert.NotContains(t, out, "Tanh")
				assert.NotContains(t, out, "Div")
			}
		}
	}
}

func TestInfix(t *testing.T) {
	assert.Equal(t, "42 + tanh(x / 7)", serializer.Infix(sample()))
	assert.Equal(t, "x", serializer.Infix(domain.NewVariable("x")))

	nested := domain.NewBinary(domain.OpDiv,
		domain.NewBinary(domain.OpAdd, domain.NewConst(1), domain.NewConst(2)),
		domain.NewVariable("y"))
	assert.Equal(t, "(1 + 2) / y", serializer.Infix(nested))

	custom := domain.NewBinary("Pow", domain.NewVariable("x"), domain.NewConst(2))
	assert.Equal(t, "pow(x, 2)", serializer.Infix(custom))
}

func TestTeX(t *testing.T) {
	assert.Equal(t, `42 + \tanh{\left(\dfrac{x}{7}\right)}`, serializer.TeX(sample()))

	nested := domain.NewBinary(domain.OpAdd,
		domain.NewBinary(domain.OpAdd, domain.NewConst(1), domain.NewConst(2)),
		domain.NewVariable("y"))
	assert.Equal(t, `\left(1 + 2\right) + y`, serializer.TeX(nested))

	assert.Equal(t, `\operatorname{sin}\left(x\right)`,
		serializer.TeX(domain.NewUnary("Sin", domain.NewVariable("x"))))
}
