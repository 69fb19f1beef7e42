package grammar

import (
	"errors"
	"fmt"

	"github.com/aretw0/functree/pkg/domain"
)

// DrawMin and DrawMax bound the draw that selects a production.
const (
	DrawMin = 1
	DrawMax = 100
)

// MaxDepthLimit is the deepest cap a policy may declare. A full tree at this
// depth already holds 2^21-1 nodes.
const MaxDepthLimit = 20

// Policy is a table of production rules for one preset.
//
// At depth i the builder draws r in [DrawMin, DrawMax] and evaluates, in order:
//
//	i < MaxDepth && r > BinaryAbove  -> binary operator node
//	i < MaxDepth && r > UnaryAbove   -> unary operator node
//	r > ConstAbove                   -> constant leaf
//	otherwise                        -> variable leaf
//
// Root, when set, fixes the kind of the node at depth 0 without a draw.
type Policy struct {
	Name        string   `json:"name" yaml:"name" mapstructure:"name"`
	MaxDepth    int      `json:"max_depth" yaml:"max_depth" mapstructure:"max_depth"`
	BinaryAbove int      `json:"binary_above" yaml:"binary_above" mapstructure:"binary_above"`
	UnaryAbove  int      `json:"unary_above" yaml:"unary_above" mapstructure:"unary_above"`
	ConstAbove  int      `json:"const_above" yaml:"const_above" mapstructure:"const_above"`
	BinaryOps   []string `json:"binary_ops" yaml:"binary_ops" mapstructure:"binary_ops"`
	UnaryOps    []string `json:"unary_ops" yaml:"unary_ops" mapstructure:"unary_ops"`
	Variables   []string `json:"variables" yaml:"variables" mapstructure:"variables"`
	ConstMin    int      `json:"const_min" yaml:"const_min" mapstructure:"const_min"`
	ConstMax    int      `json:"const_max" yaml:"const_max" mapstructure:"const_max"`
	// Root is empty or a kind name ("binary", "unary", "const", "variable").
	Root string `json:"root,omitempty" yaml:"root,omitempty" mapstructure:"root"`
}

// Choose maps a draw at the given depth to the kind of node to produce.
func (p Policy) Choose(depth, draw int) domain.Kind {
	if depth < p.MaxDepth && draw > p.BinaryAbove {
		return domain.KindBinary
	}
	if depth < p.MaxDepth && draw > p.UnaryAbove {
		return domain.KindUnary
	}
	if draw > p.ConstAbove {
		return domain.KindConst
	}
	return domain.KindVariable
}

// RootKind reports the forced kind of the root node, if any.
func (p Policy) RootKind() (domain.Kind, bool) {
	if p.Root == "" {
		return 0, false
	}
	k, err := domain.ParseKind(p.Root)
	if err != nil {
		return 0, false
	}
	return k, true
}

// MaxNodes is the largest tree the policy can produce.
// Only meaningful for a policy that passes Validate.
func (p Policy) MaxNodes() int {
	return 1<<(p.MaxDepth+1) - 1
}

// Validate checks that every reachable production has something to produce.
func (p Policy) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if p.MaxDepth < 0 || p.MaxDepth > MaxDepthLimit {
		add("max_depth must be within [0, %d], got %d", MaxDepthLimit, p.MaxDepth)
	}
	thresholds := []struct {
		name  string
		value int
	}{
		{"binary_above", p.BinaryAbove},
		{"unary_above", p.UnaryAbove},
		{"const_above", p.ConstAbove},
	}
	for _, th := range thresholds {
		if th.value < 0 || th.value > DrawMax {
			add("%s must be within [0, %d], got %d", th.name, DrawMax, th.value)
		}
	}
	if !(p.ConstAbove <= p.UnaryAbove && p.UnaryAbove <= p.BinaryAbove) {
		add("thresholds must satisfy const_above <= unary_above <= binary_above, got %d, %d, %d",
			p.ConstAbove, p.UnaryAbove, p.BinaryAbove)
	}

	if p.MaxDepth > 0 && p.BinaryAbove < DrawMax && len(p.BinaryOps) == 0 {
		add("binary band is reachable but binary_ops is empty")
	}
	if p.MaxDepth > 0 && p.UnaryAbove < p.BinaryAbove && len(p.UnaryOps) == 0 {
		add("unary band is reachable but unary_ops is empty")
	}
	if p.ConstAbove >= DrawMin && len(p.Variables) == 0 {
		add("variable band is reachable but variables is empty")
	}
	if p.ConstMin > p.ConstMax {
		add("const_min %d is greater than const_max %d", p.ConstMin, p.ConstMax)
	}

	if _, err := domain.ParseKind(p.Root); p.Root != "" && err != nil {
		add("root: %v", err)
	}
	if root, ok := p.RootKind(); ok {
		switch root {
		case domain.KindBinary:
			if p.MaxDepth == 0 || len(p.BinaryOps) == 0 {
				add("binary root needs max_depth > 0 and binary_ops")
			}
		case domain.KindUnary:
			if p.MaxDepth == 0 || len(p.UnaryOps) == 0 {
				add("unary root needs max_depth > 0 and unary_ops")
			}
		case domain.KindVariable:
			if len(p.Variables) == 0 {
				add("variable root needs variables")
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w %q: %w", domain.ErrInvalidPolicy, p.Name, errors.Join(errs...))
	}
	return nil
}

// Clone returns a deep copy so callers can adjust a preset without touching the original.
func (p Policy) Clone() Policy {
	c := p
	c.BinaryOps = append([]string(nil), p.BinaryOps...)
	c.UnaryOps = append([]string(nil), p.UnaryOps...)
	c.Variables = append([]string(nil), p.Variables...)
	return c
}
