package corpus

import (
	"errors"
	"fmt"

	"github.com/ceexam/qconv/internal/question"
)

// ErrBadStartID is returned when generated ids could collide with the
// protected range.
var ErrBadStartID = errors.New("start id is inside the protected id range")

// Config controls an Assembler run.
type Config struct {
	// BaseDir is joined to relative job file paths.
	BaseDir string

	// StartID is the id given to the first accepted record.
	StartID int

	// ProtectedBelow is the floor of generated ids. Existing entries with
	// a lower id are carried over verbatim; the rest are replaced.
	ProtectedBelow int

	// Validators run in order on every extracted record; the first
	// failure rejects it.
	Validators []Validator
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		BaseDir:        ".",
		StartID:        1000,
		ProtectedBelow: 1000,
		Validators: []Validator{
			&ChoiceCountValidator{Want: question.MaxChoices},
			&CorrectRangeValidator{},
		},
	}
}

// Check reports configuration errors.
func (c Config) Check() error {
	if c.StartID < c.ProtectedBelow {
		return fmt.Errorf("%w: start id %d, protected below %d", ErrBadStartID, c.StartID, c.ProtectedBelow)
	}
	return nil
}
