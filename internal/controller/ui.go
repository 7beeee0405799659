// Package controller provides output adapters for displaying evaluation
// results: annotated diffs, feedback, scores, leaderboards and the
// instructor dashboard.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "traduco.dev/pkg/traduco/internal/model"
)

// UI defines the interface for displaying evaluation output.
// Implementations can use different output methods (plain text, TUI, etc).
type UI interface {
	DisplayAnnotated(ctx context.Context, segments []m.AnnotatedSegment)
	DisplayFeedback(ctx context.Context, items []m.FeedbackItem)
	DisplayScores(ctx context.Context, scores m.ScoreMap)
	DisplayPoints(ctx context.Context, points int)
	DisplayLeaderboard(ctx context.Context, entries []m.LeaderboardEntry)
	DisplayDashboard(ctx context.Context, subs []m.Submission)
}

// NewUI creates the default UI for a command. Color styling is applied only
// when the output is a terminal.
func NewUI(cmd *cobra.Command, color bool) UI {
	return NewSimpleUI(cmd, color)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
