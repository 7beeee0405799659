package adapter

import (
	"context"

	m "traduco.dev/pkg/traduco/internal/model"
)

// SubmissionRecorder is the append-only submission log. There is no update
// or delete; the only guarantee implementations owe is append atomicity.
type SubmissionRecorder interface {
	Append(ctx context.Context, sub m.Submission) error
	List(ctx context.Context) ([]m.Submission, error)
}

// PointsAggregator sums points per user. Implementations must be safe for
// concurrent callers.
type PointsAggregator interface {
	Add(user string, points int)
	Total(user string) int
	Leaderboard() []m.LeaderboardEntry
}
