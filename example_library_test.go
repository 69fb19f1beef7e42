package functree_test

import (
	"fmt"
	"log"

	"github.com/aretw0/functree"
	"github.com/aretw0/functree/pkg/random"
)

// ExampleRender prints one tree in the alternative formats.
func ExampleRender() {
	// Div(y, Tanh(3)): binary, Div, variable y, unary Tanh, constant 3.
	g, err := functree.New(functree.WithRandom(random.NewSequence(90, 1, 10, 1, 50, 0, 30, 3)))
	if err != nil {
		log.Fatal(err)
	}
	fx, err := g.Generate()
	if err != nil {
		log.Fatal(err)
	}

	for _, format := range []functree.Format{functree.FormatConstruct, functree.FormatInfix, functree.FormatTeX} {
		text, err := functree.Render(fx, format)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(text)
	}
	fmt.Printf("nodes=%d depth=%d\n", fx.Stats.Nodes, fx.Stats.Depth)

	// Output:
	// new FunctionTree.Div(new FunctionTree.Variable("y"), new FunctionTree.Tanh(new FunctionTree.Const(3)));
	// y / tanh(3)
	// \dfrac{y}{\tanh{\left(3\right)}}
	// nodes=4 depth=2
}
