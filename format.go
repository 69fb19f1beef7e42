package functree

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/functree/internal/presentation/graph"
	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/serializer"
)

// Format selects how a fixture is rendered for output.
type Format string

const (
	// FormatConstruct is the FunctionTree constructor statement.
	FormatConstruct Format = "construct"
	// FormatInfix is the human-readable infix expression.
	FormatInfix Format = "infix"
	// FormatTeX is a TeX math expression.
	FormatTeX Format = "tex"
	// FormatJSON is the full fixture, tree included, as indented JSON.
	FormatJSON Format = "json"
	// FormatMermaid is a Mermaid flowchart of the tree.
	FormatMermaid Format = "mermaid"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatConstruct, FormatInfix, FormatTeX, FormatJSON, FormatMermaid}
}

// ErrUnknownFormat is returned by ParseFormat for unsupported names.
var ErrUnknownFormat = errors.New("unknown format")

// ParseFormat maps a name to a Format. The empty string means FormatConstruct.
func ParseFormat(s string) (Format, error) {
	if s == "" {
		return FormatConstruct, nil
	}
	for _, f := range Formats() {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q (supported: %v)", ErrUnknownFormat, s, Formats())
}

// Render turns a fixture into text. Every format but construct needs fx.Tree.
func Render(fx domain.Fixture, format Format) (string, error) {
	if format == FormatConstruct || format == "" {
		return fx.Statement, nil
	}
	if fx.Tree == nil {
		return "", fmt.Errorf("format %s: %w: fixture has no tree", format, domain.ErrMalformedTree)
	}

	switch format {
	case FormatInfix:
		return serializer.Infix(fx.Tree), nil
	case FormatTeX:
		return serializer.TeX(fx.Tree), nil
	case FormatMermaid:
		return graph.GenerateMermaid(fx.Tree, nil), nil
	case FormatJSON:
		data, err := json.MarshalIndent(fx, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode fixture: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("%w %q", ErrUnknownFormat, format)
}
