package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	src := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a\r\nb\rc\n")...)
	assert.Equal(t, "a\nb\nc\n", Normalize(src))
}

func TestSplit(t *testing.T) {
	text := "one\n\n---\n\ntwo\n---\nthree"
	got := Split(text)
	require.Len(t, got, 3)
	assert.Equal(t, "one\n", got[0])
	assert.Equal(t, "\ntwo", got[1])
	assert.Equal(t, "three", got[2])
}

func TestSplit_DashesInsideLineAreKept(t *testing.T) {
	got := Split("a --- b\n----\nc")
	assert.Len(t, got, 1)
}

func TestQuestionBlocks_SkipsPreamble(t *testing.T) {
	text := "# 第34回 類似問題\n\n説明文\n\n---\n\n【問題】\n一\n\n---\n\n【問題】\n二\n"
	blocks := QuestionBlocks(text)
	require.Len(t, blocks, 2)
	assert.Contains(t, blocks[0], "一")
	assert.Contains(t, blocks[1], "二")
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		filename string
		want     string
	}{
		{"atx heading", "# 第34回 初級 午前\n\n本文\n", "x.md", "第34回 初級 午前"},
		{"first level-1 wins", "## sub\n\n# main\n", "x.md", "main"},
		{"setext level-2 ignored", "解説の一段落\n---\n", "第35回_上級.md", "第35回_上級"},
		{"empty", "", "dir/notes.md", "notes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title([]byte(tt.src), tt.filename))
		})
	}
}
