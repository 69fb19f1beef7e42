/*
Package domain contains the core model of the functree generator.

It defines the expression tree handed from the builder to the serializers, the fixture
record stored in a corpus, generation events and the sentinel errors shared by every
package. It performs no I/O and draws no random numbers.

# Key Entities

  - Node: an immutable tree node (Const, Variable, Unary or Binary).
  - Stats: node counts and depth of a tree.
  - Fixture: one serialized statement, its content-derived ID and provenance.
  - GenerationHooks: callbacks fired while a tree is built.
*/
package domain
