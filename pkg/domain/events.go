package domain

// NodeEvent is emitted for every node the builder creates.
type NodeEvent struct {
	Preset string `json:"preset"`
	Kind   Kind   `json:"kind"`
	Name   string `json:"name,omitempty"`
	Value  int    `json:"value,omitempty"`
	Depth  int    `json:"depth"`
}

// TreeEvent is emitted once per build, after the tree is complete or the build failed.
type TreeEvent struct {
	Preset string `json:"preset"`
	Stats  Stats  `json:"stats"`
	Err    error  `json:"-"`
}

// GenerationHooks defines callbacks for generation observability.
// Nil callbacks are skipped.
type GenerationHooks struct {
	OnNode func(*NodeEvent)
	OnTree func(*TreeEvent)
}

// Merge returns hooks that call h first and then other.
func (h GenerationHooks) Merge(other GenerationHooks) GenerationHooks {
	return GenerationHooks{
		OnNode: chain(h.OnNode, other.OnNode),
		OnTree: chain(h.OnTree, other.OnTree),
	}
}

func chain[E any](a, b func(*E)) func(*E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(e *E) {
		a(e)
		b(e)
	}
}
