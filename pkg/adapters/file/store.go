package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/functree/pkg/domain"
)

// DefaultDir is used when the store is created with an empty path.
var DefaultDir = filepath.Join(".functree", "fixtures")

const ext = ".json"

// Store implements ports.CorpusStore using the local filesystem.
// It stores fixtures as <id>.json files in a configured directory.
// Safe for concurrent use, including by several processes sharing the directory.
type Store struct {
	BasePath string
}

// NewStore creates a new Store with the given base path.
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = DefaultDir
	}
	return &Store{BasePath: basePath}
}

func (f *Store) path(id string) (string, error) {
	if id == "" || id != filepath.Base(id) || strings.HasPrefix(id, ".") {
		return "", fmt.Errorf("invalid fixture id %q", id)
	}
	return filepath.Join(f.BasePath, id+ext), nil
}

// Save writes the fixture unless a file with the same ID exists.
// The JSON is written to a temporary file first and then hard-linked into place,
// so readers never see a partial file and only one concurrent writer wins.
func (f *Store) Save(ctx context.Context, fx domain.Fixture) (bool, error) {
	target, err := f.path(fx.ID)
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(f.BasePath, 0o755); err != nil {
		return false, fmt.Errorf("failed to ensure fixture directory: %w", err)
	}

	data, err := json.MarshalIndent(fx, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to marshal fixture: %w", err)
	}

	tmp, err := os.CreateTemp(f.BasePath, ".fixture-*.tmp")
	if err != nil {
		return false, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return false, fmt.Errorf("failed to write fixture: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return false, fmt.Errorf("failed to write fixture: %w", err)
	}

	if err := os.Link(tmp.Name(), target); err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to publish fixture %s: %w", fx.ID, err)
	}
	return true, nil
}

// Load retrieves the fixture from its JSON file.
func (f *Store) Load(ctx context.Context, id string) (domain.Fixture, error) {
	target, err := f.path(id)
	if err != nil {
		return domain.Fixture{}, err
	}

	data, err := os.ReadFile(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.Fixture{}, domain.ErrFixtureNotFound
		}
		return domain.Fixture{}, fmt.Errorf("failed to read fixture file: %w", err)
	}

	var fx domain.Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return domain.Fixture{}, fmt.Errorf("failed to unmarshal fixture %s: %w", id, err)
	}
	return fx, nil
}

// Delete removes the fixture file.
func (f *Store) Delete(ctx context.Context, id string) error {
	target, err := f.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete fixture file: %w", err)
	}
	return nil
}

// List returns the stored IDs in sorted order.
func (f *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(f.BasePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}

	ids := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") || filepath.Ext(name) != ext {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, ext))
	}
	return ids, nil
}
