package adapter

import (
	"context"
	"sort"
	"sync"

	m "traduco.dev/pkg/traduco/internal/model"
)

// MemoryRecorder is the in-process submission log, used when no storage DSN
// is configured and as the test double.
type MemoryRecorder struct {
	mu   sync.Mutex
	subs []m.Submission
}

// NewMemoryRecorder creates an empty in-memory submission log.
func NewMemoryRecorder() *MemoryRecorder {
	return &MemoryRecorder{}
}

// Append implements SubmissionRecorder.
func (r *MemoryRecorder) Append(ctx context.Context, sub m.Submission) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.subs = append(r.subs, sub)

	return nil
}

// List implements SubmissionRecorder. The returned slice is a copy in append
// order.
func (r *MemoryRecorder) List(ctx context.Context) ([]m.Submission, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]m.Submission, len(r.subs))
	copy(out, r.subs)

	return out, nil
}

// MemoryAggregator sums points per user in process memory. The original
// prototype kept this as a process-wide session dict; here it is explicit
// state owned by whoever wires the workflow.
type MemoryAggregator struct {
	mu     sync.Mutex
	totals map[string]int
}

// NewMemoryAggregator creates an empty aggregator.
func NewMemoryAggregator() *MemoryAggregator {
	return &MemoryAggregator{totals: make(map[string]int)}
}

// Add implements PointsAggregator.
func (a *MemoryAggregator) Add(user string, points int) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.totals[user] += points
}

// Total implements PointsAggregator.
func (a *MemoryAggregator) Total(user string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.totals[user]
}

// Leaderboard implements PointsAggregator: totals sorted descending by
// points, ascending by name on ties so the ordering is deterministic.
func (a *MemoryAggregator) Leaderboard() []m.LeaderboardEntry {
	a.mu.Lock()
	defer a.mu.Unlock()

	entries := make([]m.LeaderboardEntry, 0, len(a.totals))
	for user, points := range a.totals {
		entries = append(entries, m.LeaderboardEntry{User: user, Points: points})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}

		return entries[i].User < entries[j].User
	})

	return entries
}

// RebuildAggregator sums the points of every logged submission, so commands
// running in a fresh process see the totals of a durable recorder.
func RebuildAggregator(ctx context.Context, rec SubmissionRecorder) (*MemoryAggregator, error) {
	subs, err := rec.List(ctx)
	if err != nil {
		return nil, err
	}

	agg := NewMemoryAggregator()
	for _, sub := range subs {
		agg.Add(sub.User, sub.Points)
	}

	return agg, nil
}
