package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLexicalScorer_Identical(t *testing.T) {
	scores, err := LexicalScorer{}.Score(context.Background(), "the cat sat", "the cat sat")
	require.NoError(t, err)

	assert.Equal(t, 0.0, scores[MetricEditDistance])
	assert.Equal(t, 1.0, scores[MetricSimilarity])
	assert.Equal(t, 0.0, scores[MetricTokenErrorRate])
	assert.Equal(t, 1.0, scores[MetricUnigramF1])
}

func TestLexicalScorer_SingleSubstitution(t *testing.T) {
	scores, err := LexicalScorer{}.Score(context.Background(), "the cat sat", "the cat sits")
	require.NoError(t, err)

	// "sat" vs "sits" differ by one substitution and one insertion.
	assert.Equal(t, 2.0, scores[MetricEditDistance])
	assert.InDelta(t, 1.0/3.0, scores[MetricTokenErrorRate], 1e-9)
	assert.InDelta(t, 2.0/3.0, scores[MetricUnigramF1], 1e-9)
}

func TestLexicalScorer_BothEmpty(t *testing.T) {
	scores, err := LexicalScorer{}.Score(context.Background(), "", "")
	require.NoError(t, err)

	assert.Equal(t, 0.0, scores[MetricEditDistance])
	assert.Equal(t, 1.0, scores[MetricSimilarity])
	assert.Equal(t, 0.0, scores[MetricTokenErrorRate])
	assert.Equal(t, 1.0, scores[MetricUnigramF1])
}

func TestLexicalScorer_EmptyReference(t *testing.T) {
	scores, err := LexicalScorer{}.Score(context.Background(), "two tokens", "")
	require.NoError(t, err)

	assert.Equal(t, 2.0, scores[MetricTokenErrorRate])
	assert.Equal(t, 0.0, scores[MetricUnigramF1])
}

func TestLexicalScorer_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LexicalScorer{}.Score(ctx, "a", "b")
	require.ErrorIs(t, err, context.Canceled)
}

func TestTokenErrorRate(t *testing.T) {
	cases := []struct {
		name string
		ref  string
		hyp  string
		want float64
	}{
		{"equal", "a b c", "a b c", 0.0},
		{"one substitution", "a b c", "a x c", 1.0 / 3.0},
		{"one deletion", "a b c", "a c", 1.0 / 3.0},
		{"one insertion", "a b c", "a b x c", 1.0 / 3.0},
		{"all wrong", "a b", "x y", 1.0},
		{"empty hypothesis", "a b c", "", 1.0},
		{"empty reference", "", "a b", 2.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tokenErrorRate(tokenize(tc.ref), tokenize(tc.hyp))
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestUnigramF1(t *testing.T) {
	cases := []struct {
		name string
		ref  string
		hyp  string
		want float64
	}{
		{"equal", "a b c", "a b c", 1.0},
		{"no overlap", "a b", "x y", 0.0},
		{"half overlap", "a b", "a x", 0.5},
		{"multiset counts once", "a a b", "a x y", 1.0 / 3.0},
		{"both empty", "", "", 1.0},
		{"one empty", "a", "", 0.0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := unigramF1(tokenize(tc.ref), tokenize(tc.hyp))
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}
