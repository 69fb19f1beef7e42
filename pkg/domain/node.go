package domain

import "fmt"

// Kind identifies the variant of a Node.
type Kind int

const (
	// KindConst is an integer literal leaf.
	KindConst Kind = iota
	// KindVariable is a named symbol leaf.
	KindVariable
	// KindUnary applies an operator to exactly one child.
	KindUnary
	// KindBinary applies an operator to exactly two children.
	KindBinary
)

var kindNames = map[Kind]string{
	KindConst:    "const",
	KindVariable: "variable",
	KindUnary:    "unary",
	KindBinary:   "binary",
}

// String returns the lowercase kind name used in JSON and logs.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown node kind %q", s)
}

// IsLeaf reports whether nodes of this kind terminate a path.
func (k Kind) IsLeaf() bool {
	return k == KindConst || k == KindVariable
}

// Node is one unit of a generated expression tree.
// Fields are unexported so a tree cannot change once built.
type Node struct {
	kind     Kind
	value    int
	name     string
	children []*Node
}

// NewConst creates a constant leaf.
func NewConst(value int) *Node {
	return &Node{kind: KindConst, value: value}
}

// NewVariable creates a variable leaf.
func NewVariable(name string) *Node {
	return &Node{kind: KindVariable, name: name}
}

// NewUnary creates an operator node with a single operand.
func NewUnary(op string, child *Node) *Node {
	if child == nil {
		panic("domain: unary node requires a child")
	}
	return &Node{kind: KindUnary, name: op, children: []*Node{child}}
}

// NewBinary creates an operator node with a left and a right operand.
func NewBinary(op string, left, right *Node) *Node {
	if left == nil || right == nil {
		panic("domain: binary node requires two children")
	}
	return &Node{kind: KindBinary, name: op, children: []*Node{left, right}}
}

// Kind returns the node variant.
func (n *Node) Kind() Kind { return n.kind }

// Value returns the literal of a constant node (zero otherwise).
func (n *Node) Value() int { return n.value }

// Name returns the variable name or the operator name.
// Constants have no name.
func (n *Node) Name() string { return n.name }

// Children returns a copy of the operand list.
func (n *Node) Children() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	return append([]*Node(nil), n.children...)
}

// Child returns the i-th operand or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Depth returns the largest number of operator nodes on any root-to-leaf path.
// A single leaf has depth 0.
func (n *Node) Depth() int {
	if n.kind.IsLeaf() {
		return 0
	}
	deepest := 0
	for _, c := range n.children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Size returns the number of nodes in the tree.
func (n *Node) Size() int {
	size := 1
	for _, c := range n.children {
		size += c.Size()
	}
	return size
}

// Walk visits the tree in pre-order. The depth passed to fn counts the
// operator ancestors of the visited node. Returning false from fn skips
// the node's subtree.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// ArrangeByDepth groups the nodes of the tree by their distance from the root,
// left to right within each level.
func (n *Node) ArrangeByDepth() map[int][]*Node {
	levels := make(map[int][]*Node)
	n.Walk(func(node *Node, depth int) bool {
		levels[depth] = append(levels[depth], node)
		return true
	})
	return levels
}

// Equal reports whether two trees have the same shape, operators and leaves.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.kind != other.kind || n.value != other.value || n.name != other.name {
		return false
	}
	if len(n.children) != len(other.children) {
		return false
	}
	for i := range n.children {
		if !n.children[i].Equal(other.children[i]) {
			return false
		}
	}
	return true
}

// Stats summarizes a tree.
type Stats struct {
	Nodes     int `json:"nodes"`
	Depth     int `json:"depth"`
	Leaves    int `json:"leaves"`
	Consts    int `json:"consts"`
	Variables int `json:"variables"`
	Unary     int `json:"unary"`
	Binary    int `json:"binary"`
}

// Stats computes the summary in a single traversal.
func (n *Node) Stats() Stats {
	var s Stats
	n.Walk(func(node *Node, depth int) bool {
		s.Nodes++
		switch node.kind {
		case KindConst:
			s.Consts++
			s.Leaves++
			if depth > s.Depth {
				s.Depth = depth
			}
		case KindVariable:
			s.Variables++
			s.Leaves++
			if depth > s.Depth {
				s.Depth = depth
			}
		case KindUnary:
			s.Unary++
		case KindBinary:
			s.Binary++
		}
		return true
	})
	return s
}
