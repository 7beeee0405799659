package model

import "time"

// ScoreMap maps a metric name to its numeric score. Metrics whose backing
// scorer is unavailable are simply absent from the map.
type ScoreMap map[string]float64

// Submission is one evaluated translation attempt, the unit of the
// append-only submission log.
type Submission struct {
	User      string        `json:"user"`
	Source    string        `json:"source"`
	Student   string        `json:"student"`
	Reference string        `json:"reference"`
	Scores    ScoreMap      `json:"scores"`
	Points    int           `json:"points"`
	Elapsed   time.Duration `json:"elapsed"`
	CreatedAt time.Time     `json:"created_at"`
}

// LeaderboardEntry is one row of the descending points leaderboard.
type LeaderboardEntry struct {
	User   string `json:"user"`
	Points int    `json:"points"`
}
