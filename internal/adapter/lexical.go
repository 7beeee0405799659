package adapter

import (
	"context"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/pmezard/go-difflib/difflib"

	m "traduco.dev/pkg/traduco/internal/model"
)

// Metric names produced by LexicalScorer.
const (
	MetricEditDistance   = "edit_distance"
	MetricSimilarity     = "similarity"
	MetricTokenErrorRate = "token_error_rate"
	MetricUnigramF1      = "unigram_f1"
)

// LexicalScorer computes surface-level metrics that need only the two
// strings: character edit distance, token similarity ratio, token error rate
// and unigram F1. All values are deterministic and script-agnostic.
type LexicalScorer struct{}

// Score implements Scorer.
func (LexicalScorer) Score(ctx context.Context, hypothesis, reference string) (m.ScoreMap, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	hyp := tokenize(hypothesis)
	ref := tokenize(reference)

	return m.ScoreMap{
		MetricEditDistance:   float64(levenshtein.ComputeDistance(hypothesis, reference)),
		MetricSimilarity:     difflib.NewMatcher(ref, hyp).Ratio(),
		MetricTokenErrorRate: tokenErrorRate(ref, hyp),
		MetricUnigramF1:      unigramF1(ref, hyp),
	}, nil
}

// tokenErrorRate is the word-error-rate style metric: minimum token edit
// distance divided by the reference length. An empty reference scores 0 for
// an empty hypothesis and one unit per extra hypothesis token otherwise.
func tokenErrorRate(ref, hyp []string) float64 {
	n, mm := len(ref), len(hyp)
	if n == 0 {
		return float64(mm)
	}

	// Single-row DP over the token edit distance.
	row := make([]int, mm+1)
	for j := 0; j <= mm; j++ {
		row[j] = j
	}

	for i := 1; i <= n; i++ {
		prev := row[0]
		row[0] = i

		for j := 1; j <= mm; j++ {
			tmp := row[j]

			cost := 1
			if ref[i-1] == hyp[j-1] {
				cost = 0
			}

			row[j] = minInt(row[j]+1, minInt(row[j-1]+1, prev+cost))
			prev = tmp
		}
	}

	return float64(row[mm]) / float64(n)
}

// unigramF1 is the harmonic mean of unigram precision and recall between the
// hypothesis and reference token multisets.
func unigramF1(ref, hyp []string) float64 {
	if len(ref) == 0 && len(hyp) == 0 {
		return 1.0
	}

	if len(ref) == 0 || len(hyp) == 0 {
		return 0.0
	}

	refCounts := make(map[string]int, len(ref))
	for _, tok := range ref {
		refCounts[tok]++
	}

	hypCounts := make(map[string]int, len(hyp))
	for _, tok := range hyp {
		hypCounts[tok]++
	}

	overlap := 0
	for tok, count := range hypCounts {
		if refCount, ok := refCounts[tok]; ok {
			overlap += minInt(count, refCount)
		}
	}

	if overlap == 0 {
		return 0.0
	}

	precision := float64(overlap) / float64(len(hyp))
	recall := float64(overlap) / float64(len(ref))

	return 2 * precision * recall / (precision + recall)
}

// tokenize mirrors the alignment core's whitespace splitting.
func tokenize(s string) []string {
	return strings.Fields(s)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
