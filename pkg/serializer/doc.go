/*
Package serializer turns expression trees into text.

The canonical form is a nested constructor call for the FunctionTree library,
with one statement per tree:

	new FunctionTree.Add(new FunctionTree.Const(42), new FunctionTree.Variable("x"));

Infix and TeX render the same tree for people rather than for the library.
*/
package serializer
