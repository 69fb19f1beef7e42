package random

import (
	"crypto/rand"
	"fmt"
	"math/big"
	mrand "math/rand/v2"

	"github.com/aretw0/functree/pkg/domain"
)

// Provider is the only way generation code obtains randomness.
// Implementations are not safe for concurrent use.
type Provider interface {
	// UniformInt returns an integer in [lo, hi], both ends inclusive.
	UniformInt(lo, hi int) (int, error)
	// PickOne returns one of the candidates with uniform probability.
	PickOne(candidates []string) (string, error)
}

// intSource is the single primitive every provider builds on.
type intSource interface {
	UniformInt(lo, hi int) (int, error)
}

// pickOne draws one index in [0, len-1], like indexing a list with a random position.
func pickOne(src intSource, candidates []string) (string, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates to pick from", domain.ErrInvalidCandidateSet)
	}
	i, err := src.UniformInt(0, len(candidates)-1)
	if err != nil {
		return "", err
	}
	return candidates[i], nil
}

func checkRange(lo, hi int) error {
	if lo > hi {
		return fmt.Errorf("%w: empty range [%d, %d]", domain.ErrInvalidCandidateSet, lo, hi)
	}
	return nil
}

// Seeded is a deterministic provider: the same seed yields the same draws.
type Seeded struct {
	seed uint64
	rng  *mrand.Rand
}

// NewSeeded creates a provider backed by a PCG generator.
func NewSeeded(seed uint64) *Seeded {
	return &Seeded{
		seed: seed,
		rng:  mrand.New(mrand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Seed returns the seed the provider was created with.
func (s *Seeded) Seed() uint64 { return s.seed }

// UniformInt implements Provider.
func (s *Seeded) UniformInt(lo, hi int) (int, error) {
	if err := checkRange(lo, hi); err != nil {
		return 0, err
	}
	return lo + s.rng.IntN(hi-lo+1), nil
}

// PickOne implements Provider.
func (s *Seeded) PickOne(candidates []string) (string, error) {
	return pickOne(s, candidates)
}

// System draws from the operating system's cryptographic source.
// Read failures surface as domain.ErrRandomnessUnavailable.
type System struct{}

// NewSystem creates a provider backed by crypto/rand.
func NewSystem() *System {
	return &System{}
}

// UniformInt implements Provider.
func (System) UniformInt(lo, hi int) (int, error) {
	if err := checkRange(lo, hi); err != nil {
		return 0, err
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(hi)-int64(lo)+1))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrRandomnessUnavailable, err)
	}
	return lo + int(n.Int64()), nil
}

// PickOne implements Provider.
func (s System) PickOne(candidates []string) (string, error) {
	return pickOne(s, candidates)
}
