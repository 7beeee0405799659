package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "traduco.dev/pkg/traduco/internal/model"
)

// requirePartition checks the structural invariant of Align: the ops cover
// both token sequences completely, in order, with no gaps or overlaps.
func requirePartition(t *testing.T, student, reference string, ops []m.AlignmentOp) {
	t.Helper()

	stuNext, refNext := 0, 0

	for _, op := range ops {
		require.Equal(t, stuNext, op.Student.Lo, "student ranges must be contiguous")
		require.Equal(t, refNext, op.Reference.Lo, "reference ranges must be contiguous")
		require.LessOrEqual(t, op.Student.Lo, op.Student.Hi)
		require.LessOrEqual(t, op.Reference.Lo, op.Reference.Hi)

		stuNext = op.Student.Hi
		refNext = op.Reference.Hi
	}

	require.Equal(t, len(Tokenize(student)), stuNext, "student tokens fully covered")
	require.Equal(t, len(Tokenize(reference)), refNext, "reference tokens fully covered")
}

func TestAlign_IdenticalTexts(t *testing.T) {
	segments, feedback := AlignAndExplain("The cat sat on the mat", "The cat sat on the mat")

	require.Len(t, segments, 1)
	assert.Equal(t, m.CategoryUnchanged, segments[0].Category)
	assert.Equal(t, "The cat sat on the mat ", segments[0].Text)
	assert.Empty(t, feedback)
}

func TestAlign_BothEmpty(t *testing.T) {
	segments, feedback := AlignAndExplain("", "")

	assert.Empty(t, segments)
	assert.Empty(t, feedback)
}

func TestAlign_WhitespaceOnlyInputs(t *testing.T) {
	segments, feedback := AlignAndExplain("   \t\n  ", "  ")

	assert.Empty(t, segments)
	assert.Empty(t, feedback)
}

func TestAlign_EmptyReference_AllInserted(t *testing.T) {
	segments, feedback := AlignAndExplain("hello world", "")

	require.Len(t, segments, 1)
	assert.Equal(t, m.CategoryInserted, segments[0].Category)
	assert.Equal(t, "hello world ", segments[0].Text)

	require.Len(t, feedback, 1)
	assert.Equal(t, m.FeedbackExtraWords, feedback[0].Kind)
	assert.Equal(t, "hello world", feedback[0].Student)
}

func TestAlign_EmptyStudent_AllDeleted(t *testing.T) {
	segments, feedback := AlignAndExplain("", "hello world")

	require.Len(t, segments, 1)
	assert.Equal(t, m.CategoryDeleted, segments[0].Category)
	assert.Equal(t, "hello world ", segments[0].Text)

	require.Len(t, feedback, 1)
	assert.Equal(t, m.FeedbackMissingWords, feedback[0].Kind)
	assert.Equal(t, "hello world", feedback[0].Reference)
}

func TestAlign_Substitution(t *testing.T) {
	segments, feedback := AlignAndExplain("The cat sat on the mat", "The cat sits on the mat")

	require.Len(t, segments, 3)
	assert.Equal(t, m.AnnotatedSegment{Text: "The cat ", Category: m.CategoryUnchanged}, segments[0])
	assert.Equal(t, m.AnnotatedSegment{Text: "sat ", Category: m.CategorySubstituted}, segments[1])
	assert.Equal(t, m.AnnotatedSegment{Text: "on the mat ", Category: m.CategoryUnchanged}, segments[2])

	require.Len(t, feedback, 1)
	assert.Equal(t, m.FeedbackItem{Kind: m.FeedbackReplaceWith, Student: "sat", Reference: "sits"}, feedback[0])
}

func TestAlign_TrailingInsertion(t *testing.T) {
	segments, feedback := AlignAndExplain("I love you very much", "I love you")

	require.Len(t, segments, 2)
	assert.Equal(t, m.AnnotatedSegment{Text: "I love you ", Category: m.CategoryUnchanged}, segments[0])
	assert.Equal(t, m.AnnotatedSegment{Text: "very much ", Category: m.CategoryInserted}, segments[1])

	require.Len(t, feedback, 1)
	assert.Equal(t, m.FeedbackItem{Kind: m.FeedbackExtraWords, Student: "very much"}, feedback[0])
}

func TestAlign_DisjointTokens_SingleSubstitution(t *testing.T) {
	// Fully disjoint non-empty texts collapse into one substitution gap:
	// both sides are non-empty, so the op walk emits a single replace.
	segments, feedback := AlignAndExplain("uno dos tres", "one two three")

	require.Len(t, segments, 1)
	assert.Equal(t, m.CategorySubstituted, segments[0].Category)

	require.Len(t, feedback, 1)
	assert.Equal(t, m.FeedbackReplaceWith, feedback[0].Kind)
	assert.Equal(t, "uno dos tres", feedback[0].Student)
	assert.Equal(t, "one two three", feedback[0].Reference)
}

func TestAlign_MissingWordsInMiddle(t *testing.T) {
	segments, feedback := AlignAndExplain("The sat on the mat", "The cat sat on the mat")

	require.Len(t, segments, 3)
	assert.Equal(t, m.AnnotatedSegment{Text: "The ", Category: m.CategoryUnchanged}, segments[0])
	assert.Equal(t, m.AnnotatedSegment{Text: "cat ", Category: m.CategoryDeleted}, segments[1])
	assert.Equal(t, m.AnnotatedSegment{Text: "sat on the mat ", Category: m.CategoryUnchanged}, segments[2])

	require.Len(t, feedback, 1)
	assert.Equal(t, m.FeedbackItem{Kind: m.FeedbackMissingWords, Reference: "cat"}, feedback[0])
}

func TestAlign_FeedbackCountMatchesNonMatchOps(t *testing.T) {
	student := "The quick brown fox jumped over a lazy dog today"
	reference := "A quick red fox jumps over the lazy dog"

	ops := Align(student, reference)
	_, feedback := AlignAndExplain(student, reference)

	nonMatch := 0

	for _, op := range ops {
		if op.Kind != m.OpMatch {
			nonMatch++
		}
	}

	assert.Equal(t, nonMatch, len(feedback))
}

func TestAlign_OpsPartitionBothSequences(t *testing.T) {
	cases := []struct {
		name      string
		student   string
		reference string
	}{
		{"identical", "a b c", "a b c"},
		{"disjoint", "x y z", "p q r"},
		{"student empty", "", "a b"},
		{"reference empty", "a b", ""},
		{"repeated words", "the the cat the", "the cat the the"},
		{"punctuation tokens", "Hello, world !", "Hello world!"},
		{"long drift", "one two three four five six", "two three seven four six eight"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ops := Align(tc.student, tc.reference)
			requirePartition(t, tc.student, tc.reference, ops)
		})
	}
}

func TestAlign_ConcatenationReconstructsStudent(t *testing.T) {
	cases := []struct {
		name      string
		student   string
		reference string
	}{
		{"substitution", "The cat sat on the mat", "The cat sits on the mat"},
		{"insertion", "I love you very much", "I love you"},
		{"deletion", "The sat on the mat", "The cat sat on the mat"},
		{"messy whitespace", "  The\tcat  sat ", "The cat sits"},
		{"empty student", "", "some reference"},
		{"arabic", "ذهب الولد إلى المدرسة", "ذهب الطفل إلى المدرسة"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			segments, _ := AlignAndExplain(tc.student, tc.reference)

			var b strings.Builder

			for _, seg := range segments {
				if seg.Category == m.CategoryDeleted {
					continue
				}

				b.WriteString(seg.Text)
			}

			got := strings.Join(strings.Fields(b.String()), " ")
			want := strings.Join(strings.Fields(tc.student), " ")
			assert.Equal(t, want, got)
		})
	}
}

func TestAlign_ArabicSubstitution(t *testing.T) {
	segments, feedback := AlignAndExplain("ذهب الولد إلى المدرسة", "ذهب الطفل إلى المدرسة")

	require.Len(t, segments, 3)
	assert.Equal(t, m.CategoryUnchanged, segments[0].Category)
	assert.Equal(t, m.CategorySubstituted, segments[1].Category)
	assert.Equal(t, m.CategoryUnchanged, segments[2].Category)

	require.Len(t, feedback, 1)
	assert.Equal(t, m.FeedbackReplaceWith, feedback[0].Kind)
	assert.Equal(t, "الولد", feedback[0].Student)
	assert.Equal(t, "الطفل", feedback[0].Reference)
}

func TestAlign_PunctuationStaysAttached(t *testing.T) {
	// "mat." and "mat" are distinct tokens: attached punctuation is part of
	// the token, so the tail becomes a substitution.
	_, feedback := AlignAndExplain("The cat sat on the mat.", "The cat sat on the mat")

	require.Len(t, feedback, 1)
	assert.Equal(t, m.FeedbackItem{Kind: m.FeedbackReplaceWith, Student: "mat.", Reference: "mat"}, feedback[0])
}

func TestAlign_Deterministic(t *testing.T) {
	student := "the the cat sat sat on a mat"
	reference := "the cat sat on the mat"

	segA, fbA := AlignAndExplain(student, reference)
	segB, fbB := AlignAndExplain(student, reference)

	assert.Equal(t, segA, segB)
	assert.Equal(t, fbA, fbB)
}

func TestTokenize(t *testing.T) {
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("  \t \n "))
	assert.Equal(t, []string{"a", "b"}, Tokenize(" a  b "))
	assert.Equal(t, []string{"don't", "stop!"}, Tokenize("don't stop!"))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("same text", "same text"))
	assert.Equal(t, 1.0, Ratio("", ""))
	assert.Equal(t, 0.0, Ratio("abc def", "uvw xyz"))

	partial := Ratio("The cat sat", "The cat sits")
	assert.Greater(t, partial, 0.0)
	assert.Less(t, partial, 1.0)
}
