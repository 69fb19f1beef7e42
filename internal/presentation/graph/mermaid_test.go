package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/functree/internal/presentation/graph"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func sampleTree() *domain.Node {
	return domain.NewBinary(domain.OpAdd,
		domain.NewConst(42),
		domain.NewUnary(domain.OpTanh, domain.NewVariable("x")))
}

func TestGenerateMermaid(t *testing.T) {
	tests := []struct {
		name     string
		tree     *domain.Node
		overlay  *graph.Overlay
		contains []string
		excludes []string
	}{
		{
			name: "Node Shapes",
			tree: sampleTree(),
			contains: []string{
				"graph TD",
				`n0[["Add"]]`,
				`n1["42"]`,
				`n2[/"Tanh"/]`,
				`n3(("x"))`,
			},
		},
		{
			name: "Edges In Operand Order",
			tree: sampleTree(),
			contains: []string{
				"n0 --> n1\n    n0 --> n2",
				"n2 --> n3",
			},
		},
		{
			name:    "Overlay Highlights Depth",
			tree:    sampleTree(),
			overlay: &graph.Overlay{CapDepth: 2},
			contains: []string{
				"classDef capped",
				"class n3 capped;",
			},
			excludes: []string{"class n1 capped;"},
		},
		{
			name:     "Overlay Disabled",
			tree:     sampleTree(),
			overlay:  &graph.Overlay{CapDepth: -1},
			excludes: []string{"classDef capped"},
		},
		{
			name:     "Single Leaf",
			tree:     domain.NewConst(7),
			contains: []string{`n0["7"]`},
			excludes: []string{"-->"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.tree, tt.overlay)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, got, unwanted)
			}
		})
	}
}

func TestGenerateMermaid_OneLinePerNodeAndEdge(t *testing.T) {
	tree := sampleTree()
	got := graph.GenerateMermaid(tree, nil)
	lines := strings.Split(strings.TrimSpace(got), "\n")

	// header + nodes + edges (a tree has one edge less than it has nodes)
	assert.Len(t, lines, 1+tree.Size()+tree.Size()-1)
}
