package ports

import (
	"context"

	"github.com/aretw0/functree/pkg/domain"
)

// CorpusStore defines the interface for persisting generated fixtures.
// Fixtures are content addressed: saving a statement that is already
// stored keeps the first copy.
type CorpusStore interface {
	// Save persists the fixture under fx.ID.
	// created is false when a fixture with the same ID already exists.
	Save(ctx context.Context, fx domain.Fixture) (created bool, err error)

	// Load retrieves a fixture by ID.
	// Returns domain.ErrFixtureNotFound if the fixture does not exist.
	Load(ctx context.Context, id string) (domain.Fixture, error)

	// Delete removes a fixture. Deleting a missing fixture is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of every stored fixture.
	List(ctx context.Context) ([]string, error)
}
