// Package grammar defines the production rules of the generator.
//
// A Policy maps a draw in [1, 100] at a given depth to the kind of node to
// build, and carries the operator, variable and constant sets each kind draws
// from. The built-in presets are "general" and "binaryOnly"; more can be
// declared in a YAML or JSON file and added to a Registry with LoadFile.
package grammar
