package question

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifficultyFor(t *testing.T) {
	tests := []struct {
		label string
		want  Difficulty
	}{
		{"初級", DifficultyEasy},
		{"中級", DifficultyNormal},
		{"上級", DifficultyHard},
		{"", DifficultyNormal},
		{"特級", DifficultyNormal},
		{"easy", DifficultyNormal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DifficultyFor(tt.label), "label %q", tt.label)
	}
}

func TestIndexOf(t *testing.T) {
	for i, r := range "ABCDE" {
		got, ok := IndexOf(r)
		require.True(t, ok, "letter %c", r)
		assert.Equal(t, i, got)
	}
	for _, r := range "FZa1" {
		_, ok := IndexOf(r)
		assert.False(t, ok, "letter %c", r)
	}
}

func TestJoinLetters(t *testing.T) {
	assert.Equal(t, "A、B、C、D", JoinLetters([]int{0, 1, 2, 3}))
	assert.Equal(t, "E", JoinLetters([]int{4}))
	assert.Equal(t, "", JoinLetters(nil))
}

func TestRecordJSONFieldOrder(t *testing.T) {
	r := Record{
		ID:          1000,
		Text:        "問",
		Choices:     []string{"a", "b", "c", "d", "e"},
		Correct:     []int{1},
		Type:        TypeSingle,
		Difficulty:  DifficultyEasy,
		Year:        34,
		IsMorning:   true,
		Field:       DefaultField,
		Explanation: "",
	}
	b, err := json.Marshal(r)
	require.NoError(t, err)
	want := `{"id":1000,"text":"問","choices":["a","b","c","d","e"],"correct":[1],"type":"single",` +
		`"difficulty":"easy","year":34,"isMorning":true,"field":"医学概論","explanation":""}`
	assert.Equal(t, want, string(b))
}
