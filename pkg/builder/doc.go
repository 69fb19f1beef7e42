// Package builder grows random expression trees.
//
// Build walks the grammar top-down: at every position it draws a number,
// asks the policy which production that draw selects at the current depth,
// and recurses into the operands of operator nodes. Because a policy never
// selects an operator at or below its depth cap, every build terminates and
// the tree holds at most 2^(MaxDepth+1)-1 nodes.
//
// The order of draws is fixed (production draw, operator, left operand,
// right operand), so a replayed sequence of draws reproduces the same tree:
//
//	b := builder.New(random.NewSequence(80, 0, 30, 42, 30, 7))
//	tree, _ := b.Build(grammar.General(), 0) // Add(Const(42), Const(7))
package builder
