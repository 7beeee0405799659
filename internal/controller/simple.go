package controller

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "traduco.dev/pkg/traduco/internal/model"
)

// Category styles match the original span colors: unchanged green,
// substituted red, inserted orange, deleted blue.
var categoryStyles = map[m.Category]lipgloss.Style{
	m.CategoryUnchanged:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	m.CategorySubstituted: lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	m.CategoryInserted:    lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	m.CategoryDeleted:     lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
}

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// DisplayAnnotated prints the annotated rendering of the student text, one
// colored run per segment.
func (s *SimpleUI) DisplayAnnotated(ctx context.Context, segments []m.AnnotatedSegment) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(segments) == 0 {
		return
	}

	s.printf("%s\n", RenderAnnotated(segments, s.color))
}

// RenderAnnotated renders segments into a single line. With color enabled
// each segment is styled by category; otherwise the texts are concatenated
// as-is.
func RenderAnnotated(segments []m.AnnotatedSegment, color bool) string {
	var b strings.Builder

	for _, seg := range segments {
		if !color {
			b.WriteString(seg.Text)
			continue
		}

		// Style the words only; the trailing separator stays unstyled so
		// background-less terminals render clean gaps.
		b.WriteString(categoryStyles[seg.Category].Render(strings.TrimRight(seg.Text, " ")))
		b.WriteString(" ")
	}

	return strings.TrimRight(b.String(), " ")
}

// DisplayFeedback prints one line per feedback item, with the glossary hint
// when present.
func (s *SimpleUI) DisplayFeedback(ctx context.Context, items []m.FeedbackItem) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(items) == 0 {
		s.printf("No differences found.\n")
		return
	}

	s.printf("Feedback:\n")

	for _, item := range items {
		s.printf("  - %s\n", item.String())

		if item.Hint != "" {
			s.printf("    hint: %s\n", item.Hint)
		}
	}
}

// DisplayScores prints the metric table, sorted by metric name.
func (s *SimpleUI) DisplayScores(ctx context.Context, scores m.ScoreMap) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(scores) == 0 {
		return
	}

	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}

	sort.Strings(names)

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Metric", "Score"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT})

	for _, name := range names {
		table.Append([]string{name, formatScore(scores[name])})
	}

	table.Render()
	s.printf("\n%s", buf.String())
}

// DisplayPoints prints the point award.
func (s *SimpleUI) DisplayPoints(ctx context.Context, points int) {
	if err := ctx.Err(); err != nil {
		return
	}

	s.printf("Points earned: %d\n", points)
}

// DisplayLeaderboard prints ranked per-user totals.
func (s *SimpleUI) DisplayLeaderboard(ctx context.Context, entries []m.LeaderboardEntry) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(entries) == 0 {
		s.printf("No submissions yet.\n")
		return
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Rank", "User", "Points"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for i, entry := range entries {
		table.Append([]string{strconv.Itoa(i + 1), entry.User, strconv.Itoa(entry.Points)})
	}

	table.Render()
	s.printf("\n%s", buf.String())
}

// DisplayDashboard prints the instructor view: the submission log plus the
// most repeated student translations.
func (s *SimpleUI) DisplayDashboard(ctx context.Context, subs []m.Submission) {
	if err := ctx.Err(); err != nil {
		return
	}

	if len(subs) == 0 {
		s.printf("No student submissions yet.\n")
		return
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"User", "Translation", "Points", "Time"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, sub := range subs {
		table.Append([]string{
			sub.User,
			truncate(sub.Student, 60),
			strconv.Itoa(sub.Points),
			sub.Elapsed.Truncate(10 * time.Millisecond).String(),
		})
	}

	table.SetFooter([]string{"Total", "", strconv.Itoa(totalPoints(subs)), ""})
	table.Render()
	s.printf("\n%s", buf.String())

	s.printf("\nMost common submissions:\n")

	for _, fc := range submissionFrequencies(subs, 10) {
		s.printf("  %3d  %s\n", fc.count, truncate(fc.text, 60))
	}
}

type frequency struct {
	text  string
	count int
}

// submissionFrequencies counts repeated student translations and returns the
// top n, most frequent first, text-ascending on ties.
func submissionFrequencies(subs []m.Submission, n int) []frequency {
	counts := make(map[string]int, len(subs))
	for _, sub := range subs {
		counts[sub.Student]++
	}

	freqs := make([]frequency, 0, len(counts))
	for text, count := range counts {
		freqs = append(freqs, frequency{text: text, count: count})
	}

	sort.Slice(freqs, func(i, j int) bool {
		if freqs[i].count != freqs[j].count {
			return freqs[i].count > freqs[j].count
		}

		return freqs[i].text < freqs[j].text
	})

	if len(freqs) > n {
		freqs = freqs[:n]
	}

	return freqs
}

func totalPoints(subs []m.Submission) int {
	total := 0
	for _, sub := range subs {
		total += sub.Points
	}

	return total
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-1]) + "…"
}

func formatScore(v float64) string {
	if v == float64(int64(v)) {
		return strconv.FormatInt(int64(v), 10)
	}

	return strconv.FormatFloat(v, 'f', 3, 64)
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
