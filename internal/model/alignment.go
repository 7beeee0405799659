// Package model defines the data structures for translation evaluation.
package model

import "fmt"

// OpKind represents the category of an alignment operation.
type OpKind string

const (
	// OpMatch marks token runs that are identical in both texts.
	OpMatch OpKind = "match"
	// OpSubstitution marks a student token run replacing a reference token run.
	OpSubstitution OpKind = "substitution"
	// OpInsertion marks student tokens with no reference counterpart.
	OpInsertion OpKind = "insertion"
	// OpDeletion marks reference tokens with no student counterpart.
	OpDeletion OpKind = "deletion"
)

// Range is a half-open [Lo, Hi) index interval into a token sequence.
type Range struct {
	Lo int
	Hi int
}

// Len returns the number of tokens covered by the range.
func (r Range) Len() int { return r.Hi - r.Lo }

// Empty reports whether the range covers no tokens.
func (r Range) Empty() bool { return r.Hi <= r.Lo }

// AlignmentOp is one classified, ordered unit of correspondence between the
// student and reference token sequences. The ordered op list partitions both
// sequences: concatenating the Student ranges reconstructs the student
// sequence and the Reference ranges the reference sequence, in index order.
type AlignmentOp struct {
	Kind      OpKind
	Student   Range
	Reference Range
}

// Category classifies an annotated segment for presentation.
type Category string

const (
	CategoryUnchanged   Category = "unchanged"
	CategorySubstituted Category = "substituted"
	CategoryInserted    Category = "inserted"
	CategoryDeleted     Category = "deleted"
)

// AnnotatedSegment is a display-ready (text, category) pair. Text carries the
// segment tokens rejoined with single spaces plus one trailing space, so that
// concatenating segments reproduces a readable rendering. Deletion segments
// carry reference text, every other category carries student text.
type AnnotatedSegment struct {
	Text     string   `json:"text"`
	Category Category `json:"category"`
}

// FeedbackKind identifies the instruction type of a feedback item.
type FeedbackKind string

const (
	FeedbackReplaceWith  FeedbackKind = "replace_with"
	FeedbackExtraWords   FeedbackKind = "extra_words"
	FeedbackMissingWords FeedbackKind = "missing_words"
	// FeedbackNoReference is emitted when no reference translation was
	// supplied, so no alignment was possible.
	FeedbackNoReference FeedbackKind = "no_reference"
)

// FeedbackItem is one human-readable instruction derived from a non-match
// alignment op. Student holds the offending student text, Reference the
// expected reference text; Hint carries an optional glossary annotation.
type FeedbackItem struct {
	Kind      FeedbackKind `json:"kind"`
	Student   string       `json:"student,omitempty"`
	Reference string       `json:"reference,omitempty"`
	Hint      string       `json:"hint,omitempty"`
}

// String renders the item the way it is shown to students.
func (f FeedbackItem) String() string {
	switch f.Kind {
	case FeedbackReplaceWith:
		return fmt.Sprintf("Replace '%s' with '%s'", f.Student, f.Reference)
	case FeedbackExtraWords:
		return fmt.Sprintf("Extra words: '%s'", f.Student)
	case FeedbackMissingWords:
		return fmt.Sprintf("Missing: '%s'", f.Reference)
	case FeedbackNoReference:
		return "Reference translation not provided; only basic feedback."
	}

	return string(f.Kind)
}
