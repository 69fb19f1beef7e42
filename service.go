package functree

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/functree/pkg/domain"
	"github.com/aretw0/functree/pkg/grammar"
	"github.com/aretw0/functree/pkg/ports"
)

// Service hands out independent generations to concurrent callers.
// Every call builds a fresh Generator, so no provider is ever shared.
type Service struct {
	registry *grammar.Registry
	opts     []Option
}

// NewService creates a Service that resolves presets in registry
// (a registry with the built-in presets when nil). opts are applied to
// every Generator it creates, before the per-call preset and seed.
func NewService(registry *grammar.Registry, opts ...Option) *Service {
	if registry == nil {
		registry = grammar.NewRegistry()
	}
	return &Service{registry: registry, opts: opts}
}

// Generate produces one fixture for preset. A nil seed draws a fresh one.
func (s *Service) Generate(preset string, seed *uint64) (domain.Fixture, error) {
	opts := append([]Option{WithRegistry(s.registry)}, s.opts...)
	opts = append(opts, WithPreset(preset))
	if seed != nil {
		opts = append(opts, WithSeed(*seed))
	}

	g, err := New(opts...)
	if err != nil {
		return domain.Fixture{}, err
	}
	return g.Generate()
}

// Presets returns every policy the service can generate from.
func (s *Service) Presets() []grammar.Policy {
	return s.registry.Policies()
}

// CorpusReport summarizes a corpus run.
type CorpusReport struct {
	Preset     string   `json:"preset"`
	Generated  int      `json:"generated"`
	Unique     int      `json:"unique"`
	Duplicates int      `json:"duplicates"`
	IDs        []string `json:"ids"`
}

// Corpus generates count fixtures with seeds seed, seed+1, ... and saves them in store.
// Statements the store already holds are counted as duplicates. IDs lists the
// fixtures of this run in generation order, duplicates excluded.
func (s *Service) Corpus(ctx context.Context, store ports.CorpusStore, preset string, count int, seed uint64, logger *slog.Logger) (CorpusReport, error) {
	report := CorpusReport{Preset: preset}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	for i := 0; i < count; i++ {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		current := seed + uint64(i)
		fx, err := s.Generate(preset, &current)
		if err != nil {
			return report, fmt.Errorf("fixture %d (seed %d): %w", i, current, err)
		}
		report.Generated++

		created, err := store.Save(ctx, fx)
		if err != nil {
			return report, fmt.Errorf("failed to save fixture %s: %w", fx.ID, err)
		}
		if !created {
			report.Duplicates++
			logger.Debug("duplicate fixture", "id", fx.ID, "seed", current)
			continue
		}
		report.Unique++
		report.IDs = append(report.IDs, fx.ID)
	}

	logger.Info("corpus generated",
		"preset", preset,
		"generated", report.Generated,
		"unique", report.Unique,
		"duplicates", report.Duplicates,
	)
	return report, nil
}
