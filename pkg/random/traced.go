package random

import (
	"context"
	"log/slog"
)

// Traced logs every draw of the wrapped provider at debug level.
type Traced struct {
	next   Provider
	logger *slog.Logger
	pos    uint64
}

// NewTraced wraps p. A nil logger falls back to slog.Default().
func NewTraced(p Provider, logger *slog.Logger) *Traced {
	if logger == nil {
		logger = slog.Default()
	}
	return &Traced{next: p, logger: logger}
}

// UniformInt implements Provider.
func (t *Traced) UniformInt(lo, hi int) (int, error) {
	v, err := t.next.UniformInt(lo, hi)
	t.pos++
	if err != nil {
		t.logger.Debug("draw failed", "pos", t.pos, "lo", lo, "hi", hi, "error", err)
		return v, err
	}
	if t.logger.Enabled(context.Background(), slog.LevelDebug) {
		t.logger.Debug("draw", "pos", t.pos, "lo", lo, "hi", hi, "value", v)
	}
	return v, nil
}

// PickOne implements Provider. The pick is delegated so the wrapped provider
// keeps its own draw accounting; only the outcome is logged.
func (t *Traced) PickOne(candidates []string) (string, error) {
	v, err := t.next.PickOne(candidates)
	t.pos++
	if err != nil {
		t.logger.Debug("pick failed", "pos", t.pos, "candidates", len(candidates), "error", err)
		return v, err
	}
	t.logger.Debug("pick", "pos", t.pos, "candidates", candidates, "value", v)
	return v, nil
}
