/*
Package random supplies the two randomness primitives used by the generator:
a uniform integer in a closed range and a uniform pick from a list.

Providers are passed explicitly to the builder. Use NewSeeded for reproducible output,
NewSystem for a cryptographic source, and NewSequence to force an exact series of draws:

	// depth 0 draws 80 (binary), picks operator 0 (Add),
	// then both children draw 30 (constant) with values 42 and 7.
	p := random.NewSequence(80, 0, 30, 42, 30, 7)
*/
package random
