package extract

import (
	"strings"
	"unicode"

	"github.com/ceexam/qconv/internal/question"
)

// Meta is the job metadata attached to every record of a document, plus
// the id the next accepted record receives.
type Meta struct {
	ID         int
	Year       int
	Difficulty string
	Morning    bool
}

// Extract turns one question block into a record. It returns a Rejection
// when a required section (prompt, choices, answer) is missing or unusable;
// the record is then the zero value.
func Extract(block string, meta Meta) (question.Record, *Rejection) {
	field, ok := findField(block)
	if !ok {
		field = question.DefaultField
	}

	prompt, ok := problemSection.find(block)
	if !ok {
		reason := ReasonMissingProblem
		switch {
		case !problemSection.present(block):
		case choicesSection.present(block):
			reason = ReasonUnclosedProblem
		default:
			reason = ReasonMissingChoices
		}
		return question.Record{}, reject(reason, "")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return question.Record{}, reject(ReasonEmptyProblem, "")
	}

	choicesBody, ok := choicesSection.find(block)
	if !ok {
		reason := ReasonMissingChoices
		switch {
		case !choicesSection.present(block):
		case answerSection.present(block):
			reason = ReasonUnclosedChoices
		default:
			reason = ReasonMissingAnswer
		}
		return question.Record{}, reject(reason, "")
	}
	choices := parseChoices(choicesBody)

	answerBody, ok := answerSection.find(block)
	if !ok {
		return question.Record{}, reject(ReasonMissingAnswer, "")
	}
	raw := parseAnswerLetters(answerBody)
	if len(raw) == 0 {
		return question.Record{}, reject(ReasonNoAnswerLetters, strings.TrimSpace(answerBody))
	}

	explanation := ""
	if body, ok := explanationSection.find(block); ok {
		explanation = strings.TrimSpace(body)
	}

	ans := resolveAnswer(raw)
	if ans.note != "" {
		explanation = strings.TrimSpace(explanation + ans.note)
	}

	return question.Record{
		ID:          meta.ID,
		Text:        prompt,
		Choices:     choices,
		Correct:     ans.correct,
		Type:        ans.typ,
		Difficulty:  question.DifficultyFor(meta.Difficulty),
		Year:        meta.Year,
		IsMorning:   meta.Morning,
		Field:       field,
		Explanation: explanation,
	}, nil
}

func isSpace(r rune) bool { return unicode.IsSpace(r) }
