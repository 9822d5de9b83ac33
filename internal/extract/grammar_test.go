package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionFind(t *testing.T) {
	tests := []struct {
		name   string
		sec    section
		block  string
		want   string
		wantOK bool
	}{
		{"terminated", problemSection, "【問題】\n本文\n\n【選択肢】\nA. a", "本文", true},
		{"first terminator wins", problemSection, "【問題】\n一\n\n【選択肢】\n二\n\n【選択肢】\n", "一", true},
		{"missing terminator", problemSection, "【問題】\n本文\n", "", false},
		{"marker without newline", problemSection, "【問題】本文\n\n【選択肢】\n", "", false},
		{"runs to end", answerSection, "【正答】\nB\n", "B\n", true},
		{"explanation stops at rule", explanationSection, "【解説】\nx\n---\ny", "x", true},
		{"body never empty", problemSection, "【問題】\n\n\n\n【選択肢】\nA. 1", "\n", true},
		{"blank lines only", problemSection, "【問題】\n\n\n【選択肢】\nA. 1", "", false},
		{"marker at end", answerSection, "【正答】\n", "", false},
		{"answer stops at adjacent explanation", answerSection, "【正答】\nA\n【解説】\nBとCは誤り。DもEも誤り。\n", "A", true},
		{"answer stops at blank line and explanation", answerSection, "【正答】\nA\n\n【解説】\nB\n", "A\n", true},
		{"answer stops at other section", answerSection, "【正答】\nB\n\n【ポイント】\nECG と DC の違い", "B\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.sec.find(tt.block)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAnswerLetters(t *testing.T) {
	assert.Equal(t, []int{3, 0, 3}, parseAnswerLetters(" D と A、D "))
	assert.Equal(t, []int{}, parseAnswerLetters("なし"))
}
