package extract

import "fmt"

// Reason identifies why a block produced no record. An unclosed section is
// one whose marker is present but is not followed by a blank line and the
// next section's marker.
type Reason string

const (
	ReasonMissingProblem  Reason = "missing_problem"
	ReasonUnclosedProblem Reason = "unclosed_problem"
	ReasonEmptyProblem    Reason = "empty_problem"
	ReasonMissingChoices  Reason = "missing_choices"
	ReasonUnclosedChoices Reason = "unclosed_choices"
	ReasonMissingAnswer   Reason = "missing_answer"
	ReasonNoAnswerLetters Reason = "no_answer_letters"
)

// Rejection describes a block that could not be turned into a record.
// It is an expected outcome; callers skip the block and move on.
type Rejection struct {
	Reason Reason
	Detail string
}

func (r *Rejection) Error() string {
	if r.Detail == "" {
		return fmt.Sprintf("block rejected: %s", r.Reason)
	}
	return fmt.Sprintf("block rejected: %s: %s", r.Reason, r.Detail)
}

func reject(reason Reason, detail string) *Rejection {
	return &Rejection{Reason: reason, Detail: detail}
}
