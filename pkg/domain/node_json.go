package domain

import (
	"encoding/json"
	"fmt"
)

type nodeJSON struct {
	Kind     string  `json:"kind"`
	Value    int     `json:"value,omitempty"`
	Name     string  `json:"name,omitempty"`
	Op       string  `json:"op,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// MarshalJSON encodes the tree as nested objects.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{Kind: n.kind.String()}
	switch n.kind {
	case KindConst:
		out.Value = n.value
	case KindVariable:
		out.Name = n.name
	default:
		out.Op = n.name
		out.Children = n.children
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a tree and enforces operator arity.
func (n *Node) UnmarshalJSON(data []byte) error {
	var in nodeJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	kind, err := ParseKind(in.Kind)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedTree, err)
	}

	want := 0
	switch kind {
	case KindUnary:
		want = 1
	case KindBinary:
		want = 2
	}
	if len(in.Children) != want {
		return fmt.Errorf("%w: %s node has %d children, want %d", ErrMalformedTree, kind, len(in.Children), want)
	}
	for _, c := range in.Children {
		if c == nil {
			return fmt.Errorf("%w: null child in %s node", ErrMalformedTree, kind)
		}
	}

	*n = Node{kind: kind, value: in.Value}
	switch kind {
	case KindVariable:
		n.name = in.Name
	case KindUnary, KindBinary:
		if in.Op == "" {
			return fmt.Errorf("%w: %s node without operator", ErrMalformedTree, kind)
		}
		n.name = in.Op
		n.children = in.Children
	}
	return nil
}
