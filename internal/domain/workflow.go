package domain

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"traduco.dev/pkg/traduco/internal/adapter"
	m "traduco.dev/pkg/traduco/internal/model"
)

// basePoints is the floor of every award; the similarity bonus adds up to
// ten more. This keeps the original 10-20 band but makes the award a
// deterministic function of the alignment instead of a random draw.
const basePoints = 10

// EvaluateArgs are the inputs of one evaluation.
type EvaluateArgs struct {
	User      string        `json:"user"`
	Source    string        `json:"source"`
	Student   string        `json:"student"`
	Reference string        `json:"reference"`
	Elapsed   time.Duration `json:"-"`
}

// Evaluation is the full result of one evaluation: display segments,
// structured feedback, metric scores, the point award and the submission
// record that was appended to the log.
type Evaluation struct {
	Segments   []m.AnnotatedSegment `json:"segments"`
	Feedback   []m.FeedbackItem     `json:"feedback"`
	Scores     m.ScoreMap           `json:"scores"`
	Points     int                  `json:"points"`
	Submission m.Submission         `json:"-"`
}

// Workflow runs evaluations end to end: alignment, scoring, points and
// persistence. A scorer or recorder failure degrades the result (metrics
// omitted, append logged) but never fails the evaluation itself.
type Workflow interface {
	Evaluate(ctx context.Context, args EvaluateArgs) (Evaluation, error)
	EvaluateBatch(ctx context.Context, batch []EvaluateArgs, threads int) ([]Evaluation, error)
}

type workflow struct {
	scorer   adapter.Scorer
	recorder adapter.SubmissionRecorder
	points   adapter.PointsAggregator
	glossary *adapter.Glossary
}

// NewWorkflow creates a Workflow over the given collaborators. The glossary
// may be nil.
func NewWorkflow(scorer adapter.Scorer, recorder adapter.SubmissionRecorder, points adapter.PointsAggregator, glossary *adapter.Glossary) Workflow {
	return &workflow{
		scorer:   scorer,
		recorder: recorder,
		points:   points,
		glossary: glossary,
	}
}

// Evaluate runs one evaluation. A reference that is unset or whitespace-only
// counts as "not provided": no alignment is possible, so the result carries
// no segments, a single no-reference feedback item and no reference-based
// scores.
func (w *workflow) Evaluate(ctx context.Context, args EvaluateArgs) (Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return Evaluation{}, err
	}

	eval := Evaluation{Scores: m.ScoreMap{}}

	if strings.TrimSpace(args.Reference) == "" {
		eval.Feedback = []m.FeedbackItem{{Kind: m.FeedbackNoReference}}
		eval.Points = basePoints
	} else {
		eval.Segments, eval.Feedback = AlignAndExplain(args.Student, args.Reference)
		if w.glossary != nil {
			w.glossary.Annotate(eval.Feedback)
		}

		if w.scorer != nil {
			scores, err := w.scorer.Score(ctx, args.Student, args.Reference)
			if err != nil {
				slog.Warn("scoring unavailable, omitting metrics", "user", args.User, "error", err)
			} else {
				eval.Scores = scores
			}
		}

		eval.Points = pointsFor(Ratio(args.Student, args.Reference))
	}

	if w.points != nil {
		w.points.Add(args.User, eval.Points)
	}

	eval.Submission = m.Submission{
		User:      args.User,
		Source:    args.Source,
		Student:   args.Student,
		Reference: args.Reference,
		Scores:    eval.Scores,
		Points:    eval.Points,
		Elapsed:   args.Elapsed,
		CreatedAt: time.Now(),
	}

	if w.recorder != nil {
		if err := w.recorder.Append(ctx, eval.Submission); err != nil {
			slog.Warn("submission log append failed", "user", args.User, "error", err)
		}
	}

	return eval, nil
}

// EvaluateBatch evaluates a batch with up to threads concurrent workers.
// Results keep the input order. Each evaluation owns its inputs and outputs,
// so the only shared state is in the adapters, which are safe for concurrent
// use.
func (w *workflow) EvaluateBatch(ctx context.Context, batch []EvaluateArgs, threads int) ([]Evaluation, error) {
	if threads <= 0 {
		threads = 1
	}

	results := make([]Evaluation, len(batch))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(threads)

	for i, args := range batch {
		i, args := i, args
		group.Go(func() error {
			eval, err := w.Evaluate(groupCtx, args)
			if err != nil {
				return err
			}

			results[i] = eval

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func pointsFor(ratio float64) int {
	return basePoints + int(math.Round(ratio*10))
}
