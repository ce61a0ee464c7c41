package moderation

import "context"

// Outcome is the resolved classification of a piece of text.
type Outcome int

const (
	// OutcomeSafe means the classifier saw the text and did not flag it.
	OutcomeSafe Outcome = iota
	// OutcomeFlagged means the text needs human review.
	OutcomeFlagged
	// OutcomeSkipped means no verdict was obtained; treated as safe.
	OutcomeSkipped
)

// Result carries the outcome of a classification together with the reason a
// verdict was skipped, if it was. A skipped result is indistinguishable from
// a safe one at the persistence boundary but keeps the reason loggable.
type Result struct {
	Outcome Outcome
	Reason  string
}

// Flagged collapses the result to the boolean persisted on the comment.
// Skipped and safe both collapse to false.
func (r Result) Flagged() bool {
	return r.Outcome == OutcomeFlagged
}

// Classifier decides whether a piece of text should be flagged for review.
// Implementations never fail: every error path resolves to a safe result.
type Classifier interface {
	Classify(ctx context.Context, text string) Result
}
