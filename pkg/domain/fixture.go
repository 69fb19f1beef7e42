package domain

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Fixture is one generated expression statement together with how it was produced.
type Fixture struct {
	ID        string    `json:"id" yaml:"id"`
	Preset    string    `json:"preset" yaml:"preset"`
	Seed      uint64    `json:"seed,omitempty" yaml:"seed,omitempty"`
	Statement string    `json:"statement" yaml:"statement"`
	Stats     Stats     `json:"stats" yaml:"stats"`
	Tree      *Node     `json:"tree,omitempty" yaml:"-"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// FixtureID derives the content address of a statement.
// Two fixtures with the same text share an ID.
func FixtureID(statement string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(statement))
}

// NewFixture assembles a fixture for a tree and its serialized statement.
func NewFixture(preset string, seed uint64, tree *Node, statement string) Fixture {
	return Fixture{
		ID:        FixtureID(statement),
		Preset:    preset,
		Seed:      seed,
		Statement: statement,
		Stats:     tree.Stats(),
		Tree:      tree,
		CreatedAt: time.Now().UTC(),
	}
}
