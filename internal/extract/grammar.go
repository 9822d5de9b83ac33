package extract

import (
	"regexp"
	"strings"

	"github.com/ceexam/qconv/internal/question"
)

// Section markers of the source format.
const (
	MarkerProblem     = "【問題】"
	MarkerChoices     = "【選択肢】"
	MarkerAnswer      = "【正答】"
	MarkerExplanation = "【解説】"
)

// section is one labeled part of a question block. Its body starts on the
// line after the marker and runs up to the first terminator. A section
// whose terminator is never found is absent unless it may run to the end
// of the block.
type section struct {
	marker      string
	terminators []string
	toEnd       bool
}

var (
	problemSection = section{
		marker:      MarkerProblem,
		terminators: []string{"\n\n" + MarkerChoices},
	}
	choicesSection = section{
		marker:      MarkerChoices,
		terminators: []string{"\n\n" + MarkerAnswer},
	}
	// The answer ends at the next line that opens any 【…】 section, so
	// explanation text never reaches the letter scan.
	answerSection = section{
		marker:      MarkerAnswer,
		terminators: []string{"\n【"},
		toEnd:       true,
	}
	explanationSection = section{
		marker:      MarkerExplanation,
		terminators: []string{"\n---"},
		toEnd:       true,
	}
)

// present reports whether the marker line of s occurs in block.
func (s section) present(block string) bool {
	return strings.Contains(block, s.marker+"\n")
}

// find returns the raw body of s in block. The body is never empty: a
// terminator directly after the marker line does not end the section.
func (s section) find(block string) (string, bool) {
	head := s.marker + "\n"
	i := strings.Index(block, head)
	if i < 0 {
		return "", false
	}
	rest := block[i+len(head):]
	if rest == "" {
		return "", false
	}

	end := -1
	for _, term := range s.terminators {
		if j := strings.Index(rest[1:], term); j >= 0 && (end < 0 || j+1 < end) {
			end = j + 1
		}
	}
	switch {
	case end >= 0:
		return rest[:end], true
	case s.toEnd:
		return rest, true
	default:
		return "", false
	}
}

var (
	fieldPattern  = regexp.MustCompile(`\(分野:(.+?)\)`)
	choicePattern = regexp.MustCompile(`^[A-E]\.`)
	letterPattern = regexp.MustCompile(`[A-E]`)
)

// findField returns the first (分野:…) annotation value in block.
func findField(block string) (string, bool) {
	m := fieldPattern.FindStringSubmatch(block)
	if m == nil {
		return "", false
	}
	v := strings.TrimSpace(m[1])
	return v, v != ""
}

// parseChoices keeps the lines of body that start with an option letter
// and a period, stripped of that prefix.
func parseChoices(body string) []string {
	choices := []string{}
	for _, line := range strings.Split(strings.TrimSpace(body), "\n") {
		line = strings.TrimSpace(line)
		if !choicePattern.MatchString(line) {
			continue
		}
		choices = append(choices, strings.TrimLeftFunc(line[2:], isSpace))
	}
	return choices
}

// parseAnswerLetters returns the option index of every letter A–E in body,
// in order of appearance, duplicates included.
func parseAnswerLetters(body string) []int {
	letters := letterPattern.FindAllString(strings.TrimSpace(body), -1)
	indices := make([]int, 0, len(letters))
	for _, l := range letters {
		if i, ok := question.IndexOf(rune(l[0])); ok {
			indices = append(indices, i)
		}
	}
	return indices
}
