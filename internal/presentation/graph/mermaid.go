package graph

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aretw0/functree/pkg/domain"
)

// Overlay marks nodes of the tree for emphasis.
type Overlay struct {
	// CapDepth highlights every node built at this depth (usually the policy's MaxDepth).
	// A negative value disables the highlight.
	CapDepth int
}

// GenerateMermaid produces a Mermaid flowchart of an expression tree.
// It applies semantic styling:
// - Binary operator: [[Subroutine]]
// - Unary operator: [/Parallelogram/]
// - Variable: ((Circle))
// - Constant: [Rectangle]
// Operands are linked left to right, so the chart reads like the expression.
func GenerateMermaid(tree *domain.Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	ids := make(map[*domain.Node]string)
	var capped []string

	tree.Walk(func(node *domain.Node, depth int) bool {
		id := "n" + strconv.Itoa(len(ids))
		ids[node] = id

		opener, closer := "[", "]"
		label := node.Name()
		switch node.Kind() {
		case domain.KindBinary:
			opener, closer = "[[", "]]"
		case domain.KindUnary:
			opener, closer = "[/", "/]"
		case domain.KindVariable:
			opener, closer = "((", "))"
		case domain.KindConst:
			label = strconv.Itoa(node.Value())
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", id, opener, escapeLabel(label), closer))

		if overlay != nil && overlay.CapDepth >= 0 && depth == overlay.CapDepth {
			capped = append(capped, id)
		}
		return true
	})

	tree.Walk(func(node *domain.Node, _ int) bool {
		for _, child := range node.Children() {
			sb.WriteString(fmt.Sprintf("    %s --> %s\n", ids[node], ids[child]))
		}
		return true
	})

	if overlay != nil && len(capped) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef capped fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		for _, id := range capped {
			sb.WriteString(fmt.Sprintf("    class %s capped;\n", id))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}
