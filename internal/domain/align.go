// Package domain contains the alignment core and the evaluation workflow.
package domain

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	m "traduco.dev/pkg/traduco/internal/model"
)

// Tokenize splits s into whitespace-delimited tokens. Runs of whitespace
// count as a single boundary and never produce empty tokens. Punctuation
// attached to a word stays part of that token; the splitter is
// encoding-agnostic and works for RTL scripts.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// Align computes the ordered token-level alignment between a student text and
// a reference text. It uses the longest-matching-blocks strategy (greedily
// take the earliest longest common contiguous block, recurse on the
// surrounding gaps), which groups moved words more intuitively than a minimal
// edit script would for ambiguous inputs.
//
// The returned ops partition both token sequences with no gaps or overlaps,
// in monotonically increasing index order on both sides.
func Align(student, reference string) []m.AlignmentOp {
	ref := Tokenize(reference)
	stu := Tokenize(student)

	opcodes := difflib.NewMatcher(ref, stu).GetOpCodes()
	ops := make([]m.AlignmentOp, 0, len(opcodes))

	for _, oc := range opcodes {
		op := m.AlignmentOp{
			Reference: m.Range{Lo: oc.I1, Hi: oc.I2},
			Student:   m.Range{Lo: oc.J1, Hi: oc.J2},
		}

		switch oc.Tag {
		case 'e':
			op.Kind = m.OpMatch
		case 'r':
			op.Kind = m.OpSubstitution
		case 'i':
			op.Kind = m.OpInsertion
		case 'd':
			op.Kind = m.OpDeletion
		default:
			continue
		}

		ops = append(ops, op)
	}

	return ops
}

// AlignAndExplain aligns a student text against a reference text and emits
// the display-ready annotated segments plus one feedback item per non-match
// op. It is a pure function of its inputs: no I/O, no randomness, safe for
// concurrent callers. Empty inputs are valid and produce degenerate but
// well-formed results (both empty yields no ops at all).
func AlignAndExplain(student, reference string) ([]m.AnnotatedSegment, []m.FeedbackItem) {
	ref := Tokenize(reference)
	stu := Tokenize(student)

	ops := Align(student, reference)
	segments := make([]m.AnnotatedSegment, 0, len(ops))
	feedback := make([]m.FeedbackItem, 0)

	for _, op := range ops {
		stuText := strings.Join(stu[op.Student.Lo:op.Student.Hi], " ")
		refText := strings.Join(ref[op.Reference.Lo:op.Reference.Hi], " ")

		switch op.Kind {
		case m.OpMatch:
			segments = append(segments, m.AnnotatedSegment{Text: stuText + " ", Category: m.CategoryUnchanged})

		case m.OpSubstitution:
			segments = append(segments, m.AnnotatedSegment{Text: stuText + " ", Category: m.CategorySubstituted})
			feedback = append(feedback, m.FeedbackItem{Kind: m.FeedbackReplaceWith, Student: stuText, Reference: refText})

		case m.OpInsertion:
			segments = append(segments, m.AnnotatedSegment{Text: stuText + " ", Category: m.CategoryInserted})
			feedback = append(feedback, m.FeedbackItem{Kind: m.FeedbackExtraWords, Student: stuText})

		case m.OpDeletion:
			// No student text to show; render the reference tokens instead.
			segments = append(segments, m.AnnotatedSegment{Text: refText + " ", Category: m.CategoryDeleted})
			feedback = append(feedback, m.FeedbackItem{Kind: m.FeedbackMissingWords, Reference: refText})
		}
	}

	return segments, feedback
}

// Ratio returns the token-level similarity ratio between the two texts, in
// [0, 1], from the same matcher that drives Align.
func Ratio(student, reference string) float64 {
	return difflib.NewMatcher(Tokenize(reference), Tokenize(student)).Ratio()
}
