package question

import "strings"

// MaxChoices is the number of lettered options (A–E) the source format allows.
const MaxChoices = 5

// IndexOf returns the zero-based index for an option letter A–E.
func IndexOf(letter rune) (int, bool) {
	if letter < 'A' || letter >= 'A'+MaxChoices {
		return 0, false
	}
	return int(letter - 'A'), true
}

// LetterOf returns the option letter for a zero-based index.
func LetterOf(index int) string {
	if index < 0 || index >= MaxChoices {
		return "?"
	}
	return string(rune('A' + index))
}

// JoinLetters renders indices as letters joined by the ideographic comma,
// e.g. [0 1 2] -> "A、B、C".
func JoinLetters(indices []int) string {
	letters := make([]string, 0, len(indices))
	for _, i := range indices {
		letters = append(letters, LetterOf(i))
	}
	return strings.Join(letters, "、")
}
