package grammar

import (
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/functree/pkg/domain"
)

// Built-in preset names.
const (
	PresetGeneral    = "general"
	PresetBinaryOnly = "binaryOnly"
)

// DefaultMaxDepth is the depth cap of both built-in presets.
const DefaultMaxDepth = 3

// General mixes binary, unary and leaf productions.
// Below the depth cap: 30% binary, 30% unary, 20% constant, 20% variable.
// At the cap: 80% constant, 20% variable.
func General() Policy {
	return Policy{
		Name:        PresetGeneral,
		MaxDepth:    DefaultMaxDepth,
		BinaryAbove: 70,
		UnaryAbove:  40,
		ConstAbove:  20,
		BinaryOps:   []string{domain.OpAdd, domain.OpDiv},
		UnaryOps:    []string{domain.OpTanh},
		Variables:   domain.DefaultVariables(),
		ConstMin:    domain.ConstMin,
		ConstMax:    domain.ConstMax,
	}
}

// BinaryOnly always starts from an Add node and only ever nests further Add nodes.
// Below the depth cap each operand is 50% Add, 30% constant, 20% variable.
func BinaryOnly() Policy {
	return Policy{
		Name:        PresetBinaryOnly,
		MaxDepth:    DefaultMaxDepth,
		BinaryAbove: 50,
		UnaryAbove:  50,
		ConstAbove:  20,
		BinaryOps:   []string{domain.OpAdd},
		Variables:   domain.DefaultVariables(),
		ConstMin:    domain.ConstMin,
		ConstMax:    domain.ConstMax,
		Root:        domain.KindBinary.String(),
	}
}

// Registry holds named policies. The zero value is not usable; call NewRegistry.
type Registry struct {
	mu       sync.RWMutex
	policies map[string]Policy
}

// NewRegistry creates a registry preloaded with the built-in presets.
func NewRegistry() *Registry {
	r := &Registry{policies: make(map[string]Policy)}
	r.policies[PresetGeneral] = General()
	r.policies[PresetBinaryOnly] = BinaryOnly()
	return r
}

// Register validates p and stores it under p.Name, replacing any existing entry.
func (r *Registry) Register(p Policy) error {
	if p.Name == "" {
		return fmt.Errorf("%w: policy without a name", domain.ErrInvalidPolicy)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[p.Name] = p.Clone()
	return nil
}

// Lookup returns a copy of the named policy.
func (r *Registry) Lookup(name string) (Policy, error) {
	r.mu.RLock()
	p, ok := r.policies[name]
	r.mu.RUnlock()

	if !ok {
		return Policy{}, fmt.Errorf("%w: %q (available: %v)", domain.ErrUnknownPreset, name, r.Names())
	}
	return p.Clone(), nil
}

// Names returns the registered preset names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.policies))
	for name := range r.policies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Policies returns copies of every registered policy, sorted by name.
func (r *Registry) Policies() []Policy {
	names := r.Names()
	out := make([]Policy, 0, len(names))
	for _, name := range names {
		p, err := r.Lookup(name)
		if err == nil {
			out = append(out, p)
		}
	}
	return out
}

var defaultRegistry = NewRegistry()

// Lookup finds a preset in the default registry.
func Lookup(name string) (Policy, error) {
	return defaultRegistry.Lookup(name)
}

// Names lists the presets of the default registry.
func Names() []string {
	return defaultRegistry.Names()
}
