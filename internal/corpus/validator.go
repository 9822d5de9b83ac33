package corpus

import (
	"fmt"

	"github.com/ceexam/qconv/internal/question"
)

// Validator checks an extracted record before the assembler accepts it.
// Implementations should be stateless.
type Validator interface {
	// Name returns a short identifier used in rejection tallies and logs.
	Name() string

	// Validate returns nil if the record passes.
	Validate(r *question.Record) *ValidationError
}

// ValidationError describes why an extracted record was not accepted.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// ChoiceCountValidator requires exactly Want choices.
type ChoiceCountValidator struct {
	Want int
}

func (v *ChoiceCountValidator) Name() string { return "choice_count" }

func (v *ChoiceCountValidator) Validate(r *question.Record) *ValidationError {
	if len(r.Choices) != v.Want {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("got %d choices, want %d", len(r.Choices), v.Want),
		}
	}
	return nil
}

// CorrectRangeValidator requires every correct index to point at a choice.
type CorrectRangeValidator struct{}

func (v *CorrectRangeValidator) Name() string { return "correct_range" }

func (v *CorrectRangeValidator) Validate(r *question.Record) *ValidationError {
	if len(r.Correct) == 0 {
		return &ValidationError{Validator: v.Name(), Message: "no correct choice"}
	}
	for _, i := range r.Correct {
		if i < 0 || i >= len(r.Choices) {
			return &ValidationError{
				Validator: v.Name(),
				Message:   fmt.Sprintf("correct index %d outside %d choices", i, len(r.Choices)),
			}
		}
	}
	return nil
}
