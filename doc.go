/*
Package functree generates random, depth-bounded expression trees and serializes them as
constructor statements for the FunctionTree expression library.

Each statement is a ready-made test fixture:

	new FunctionTree.Add(new FunctionTree.Const(42), new FunctionTree.Tanh(new FunctionTree.Variable("x")));

# Concept

Generation is a short pipeline. A grammar policy decides, from one random draw per
position, whether the node at a given depth is a binary operator, a unary operator, a
constant or a variable. The builder follows those decisions recursively until every path
ends in a leaf, and the serializer prints the tree as nested constructor calls. The
policy never chooses an operator at its depth cap, so every tree is finite.

# Key Features

  - Reproducible: a seed (or a forced sequence of draws) always yields the same statement.
  - Presets: "general" mixes Add, Div and Tanh; "binaryOnly" nests Add nodes only.
    Further presets can be loaded from YAML or JSON.
  - Corpora: many fixtures can be generated and stored, deduplicated by content, in memory
    or in Redis.
  - Several renderings: constructor statement, infix, TeX, JSON tree and Mermaid chart.

# Usage

	package main

	import (
		"log"
		"os"

		"github.com/aretw0/functree"
	)

	func main() {
		gen, err := functree.New(functree.WithPreset("binaryOnly"), functree.WithSeed(7))
		if err != nil {
			log.Fatal(err)
		}
		if err := gen.Emit(os.Stdout); err != nil {
			log.Fatal(err)
		}
	}
*/
package functree
