package random

import (
	"fmt"

	"github.com/aretw0/functree/pkg/domain"
)

// Sequence replays a fixed list of draws. Each UniformInt call consumes one draw,
// and PickOne consumes one draw used as the candidate index.
//
// A draw outside the requested range, or a call after the list is exhausted,
// fails with domain.ErrRandomnessUnavailable.
type Sequence struct {
	draws []int
	pos   int
}

// NewSequence creates a provider that returns draws in order.
func NewSequence(draws ...int) *Sequence {
	return &Sequence{draws: append([]int(nil), draws...)}
}

// UniformInt implements Provider.
func (s *Sequence) UniformInt(lo, hi int) (int, error) {
	if err := checkRange(lo, hi); err != nil {
		return 0, err
	}
	if s.pos >= len(s.draws) {
		return 0, fmt.Errorf("%w: sequence exhausted after %d draws", domain.ErrRandomnessUnavailable, len(s.draws))
	}
	v := s.draws[s.pos]
	if v < lo || v > hi {
		return 0, fmt.Errorf("%w: draw %d is %d, outside [%d, %d]", domain.ErrRandomnessUnavailable, s.pos, v, lo, hi)
	}
	s.pos++
	return v, nil
}

// PickOne implements Provider.
func (s *Sequence) PickOne(candidates []string) (string, error) {
	return pickOne(s, candidates)
}

// Remaining reports how many draws have not been consumed.
func (s *Sequence) Remaining() int {
	return len(s.draws) - s.pos
}
