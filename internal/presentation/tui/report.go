package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/functree/internal/presentation/graph"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/serializer"
)

// Report builds the Markdown inspection report of a fixture.
// The tree sections are skipped when the fixture carries no tree. A non-nil
// overlay is applied to the Mermaid chart.
func Report(fx domain.Fixture, overlay *graph.Overlay) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Fixture `%s`\n\n", fx.ID)
	fmt.Fprintf(&sb, "Preset **%s**, seed `%d`\n\n", fx.Preset, fx.Seed)

	sb.WriteString("## Statement\n\n```\n")
	sb.WriteString(fx.Statement)
	sb.WriteString("\n```\n\n")

	if fx.Tree != nil {
		sb.WriteString("## Infix\n\n```\n")
		sb.WriteString(serializer.Infix(fx.Tree))
		sb.WriteString("\n```\n\n")

		sb.WriteString("## TeX\n\n```latex\n")
		sb.WriteString(serializer.TeX(fx.Tree))
		sb.WriteString("\n```\n\n")
	}

	s := fx.Stats
	sb.WriteString("## Stats\n\n")
	sb.WriteString("| Metric | Value |\n|---|---|\n")
	rows := []struct {
		name  string
		value int
	}{
		{"Nodes", s.Nodes},
		{"Depth", s.Depth},
		{"Leaves", s.Leaves},
		{"Constants", s.Consts},
		{"Variables", s.Variables},
		{"Unary", s.Unary},
		{"Binary", s.Binary},
	}
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %s | %d |\n", r.name, r.value)
	}

	if fx.Tree != nil {
		sb.WriteString("\n## Tree\n\n```mermaid\n")
		sb.WriteString(graph.GenerateMermaid(fx.Tree, overlay))
		sb.WriteString("```\n")
	}

	return sb.String()
}
