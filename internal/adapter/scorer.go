// Package adapter provides the collaborator implementations around the
// evaluation core: scoring backends, the submission log, the points
// aggregator, and the glossary.
package adapter

import (
	"context"
	"log/slog"

	m "traduco.dev/pkg/traduco/internal/model"
)

// Scorer computes reference-based quality metrics for a hypothesis
// translation. Implementations are swappable backends: a metric whose backend
// is unavailable is omitted from the map, never treated as fatal by callers.
type Scorer interface {
	Score(ctx context.Context, hypothesis, reference string) (m.ScoreMap, error)
}

// StubScorer is the backend used when no scoring library is available. It
// returns an empty map so the evaluation flow proceeds without metrics.
type StubScorer struct{}

// Score implements Scorer.
func (StubScorer) Score(_ context.Context, _, _ string) (m.ScoreMap, error) {
	return m.ScoreMap{}, nil
}

// MultiScorer merges the score maps of several backends. A failing backend
// loses only its own metrics: the error is logged and the remaining backends
// still contribute.
type MultiScorer struct {
	backends []Scorer
}

// NewMultiScorer creates a MultiScorer over the given backends.
func NewMultiScorer(backends ...Scorer) *MultiScorer {
	return &MultiScorer{backends: backends}
}

// Score implements Scorer.
func (s *MultiScorer) Score(ctx context.Context, hypothesis, reference string) (m.ScoreMap, error) {
	merged := m.ScoreMap{}

	for _, backend := range s.backends {
		scores, err := backend.Score(ctx, hypothesis, reference)
		if err != nil {
			slog.Warn("scorer backend unavailable, omitting its metrics", "error", err)
			continue
		}

		for name, value := range scores {
			merged[name] = value
		}
	}

	return merged, nil
}
