package adapter

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "traduco.dev/pkg/traduco/internal/model"
)

func TestMemoryRecorder_AppendAndList(t *testing.T) {
	rec := NewMemoryRecorder()
	ctx := context.Background()

	require.NoError(t, rec.Append(ctx, m.Submission{User: "amina", Points: 15}))
	require.NoError(t, rec.Append(ctx, m.Submission{User: "karim", Points: 12}))

	subs, err := rec.List(ctx)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "amina", subs[0].User)
	assert.Equal(t, "karim", subs[1].User)
}

func TestMemoryRecorder_ListReturnsCopy(t *testing.T) {
	rec := NewMemoryRecorder()
	ctx := context.Background()

	require.NoError(t, rec.Append(ctx, m.Submission{User: "amina"}))

	first, err := rec.List(ctx)
	require.NoError(t, err)

	first[0].User = "mutated"

	second, err := rec.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "amina", second[0].User)
}

func TestMemoryRecorder_CancelledContext(t *testing.T) {
	rec := NewMemoryRecorder()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.ErrorIs(t, rec.Append(ctx, m.Submission{}), context.Canceled)

	_, err := rec.List(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestMemoryAggregator_Totals(t *testing.T) {
	agg := NewMemoryAggregator()

	agg.Add("amina", 15)
	agg.Add("amina", 12)
	agg.Add("karim", 20)

	assert.Equal(t, 27, agg.Total("amina"))
	assert.Equal(t, 20, agg.Total("karim"))
	assert.Equal(t, 0, agg.Total("nobody"))
}

func TestMemoryAggregator_LeaderboardOrdering(t *testing.T) {
	agg := NewMemoryAggregator()

	agg.Add("karim", 10)
	agg.Add("amina", 25)
	agg.Add("zahra", 10)

	want := []m.LeaderboardEntry{
		{User: "amina", Points: 25},
		{User: "karim", Points: 10},
		{User: "zahra", Points: 10},
	}
	assert.Equal(t, want, agg.Leaderboard())
}

func TestRebuildAggregator(t *testing.T) {
	rec := NewMemoryRecorder()
	ctx := context.Background()

	require.NoError(t, rec.Append(ctx, m.Submission{User: "amina", Points: 15}))
	require.NoError(t, rec.Append(ctx, m.Submission{User: "amina", Points: 11}))
	require.NoError(t, rec.Append(ctx, m.Submission{User: "karim", Points: 20}))

	agg, err := RebuildAggregator(ctx, rec)
	require.NoError(t, err)

	assert.Equal(t, 26, agg.Total("amina"))
	assert.Equal(t, 20, agg.Total("karim"))
}
