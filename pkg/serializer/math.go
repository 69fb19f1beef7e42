package serializer

import (
	"strconv"
	"strings"

	"github.com/aretw0/functree/pkg/domain"
)

// infixSymbols are the operators the FunctionTree library prints between operands.
var infixSymbols = map[string]string{
	domain.OpAdd: "+",
	domain.OpDiv: "/",
}

// Infix renders n the way FunctionTree's toString does: binary operators
// between their operands and unary operators as function calls.
// Nested binary operands are parenthesized so precedence is explicit.
//
//	Add(Const(42), Div(x, Const(7)))  ->  42 + (x / 7)
func Infix(n *domain.Node) string {
	return infix(n, false)
}

func infix(n *domain.Node, nested bool) string {
	switch n.Kind() {
	case domain.KindConst:
		return strconv.Itoa(n.Value())
	case domain.KindVariable:
		return n.Name()
	case domain.KindUnary:
		return strings.ToLower(n.Name()) + "(" + infix(n.Child(0), false) + ")"
	}

	left, right := infix(n.Child(0), true), infix(n.Child(1), true)
	symbol, ok := infixSymbols[n.Name()]
	if !ok {
		return strings.ToLower(n.Name()) + "(" + left + ", " + right + ")"
	}
	out := left + " " + symbol + " " + right
	if nested {
		return "(" + out + ")"
	}
	return out
}

// TeX renders n as a TeX math expression, following FunctionTree's toTex.
//
//	Div(x, Tanh(y))  ->  \dfrac{x}{\tanh{\left(y\right)}}
func TeX(n *domain.Node) string {
	return tex(n, false)
}

func tex(n *domain.Node, nested bool) string {
	switch n.Kind() {
	case domain.KindConst:
		return strconv.Itoa(n.Value())
	case domain.KindVariable:
		return n.Name()
	case domain.KindUnary:
		arg := tex(n.Child(0), false)
		if n.Name() == domain.OpTanh {
			return `\tanh{\left(` + arg + `\right)}`
		}
		return `\operatorname{` + strings.ToLower(n.Name()) + `}\left(` + arg + `\right)`
	}

	switch n.Name() {
	case domain.OpDiv:
		return `\dfrac{` + tex(n.Child(0), false) + `}{` + tex(n.Child(1), false) + `}`
	case domain.OpAdd:
		out := tex(n.Child(0), true) + " + " + tex(n.Child(1), true)
		if nested {
			return `\left(` + out + `\right)`
		}
		return out
	}
	return `\operatorname{` + strings.ToLower(n.Name()) + `}\left(` +
		tex(n.Child(0), false) + ", " + tex(n.Child(1), false) + `\right)`
}
