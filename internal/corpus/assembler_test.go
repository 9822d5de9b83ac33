package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ceexam/qconv/internal/extract"
	"github.com/ceexam/qconv/internal/manifest"
	"github.com/ceexam/qconv/internal/question"
)

type testBlock struct {
	Field       string
	Prompt      string
	Choices     int
	Answer      string
	Explanation string
}

func (b testBlock) String() string {
	var s strings.Builder
	s.WriteString("## 問題\n\n")
	if b.Field != "" {
		s.WriteString("(分野:" + b.Field + ")\n\n")
	}
	s.WriteString("【問題】\n" + b.Prompt + "\n\n")
	s.WriteString("【選択肢】\n")
	// Letters wrap after E so a sixth line is still a valid choice line.
	for i := 0; i < b.Choices; i++ {
		fmt.Fprintf(&s, "%s. 選択肢%d\n", string(rune('A'+i%5)), i+1)
	}
	s.WriteString("\n【正答】\n" + b.Answer + "\n")
	if b.Explanation != "" {
		s.WriteString("\n【解説】\n" + b.Explanation + "\n")
	}
	return s.String()
}

func validBlock(prompt string) testBlock {
	return testBlock{Prompt: prompt, Choices: 5, Answer: "A", Explanation: "解説"}
}

func writeDoc(t *testing.T, dir, name, title string, blocks ...testBlock) {
	t.Helper()
	parts := []string{"# " + title + "\n\n前書き"}
	for _, b := range blocks {
		parts = append(parts, b.String())
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Join(parts, "\n---\n")), 0o644))
}

func newAssembler(t *testing.T, dir string, opts ...Option) *Assembler {
	t.Helper()
	cfg := DefaultConfig()
	cfg.BaseDir = dir
	a, err := New(cfg, opts...)
	require.NoError(t, err)
	return a
}

func TestNew_RejectsStartIDBelowFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StartID = 10
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrBadStartID)
}

func TestRun_ContiguousIDsAcrossDocuments(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "A", validBlock("1"), validBlock("2"))
	writeDoc(t, dir, "b.md", "B", validBlock("3"), validBlock("4"), validBlock("5"))

	jobs := []manifest.Job{
		{File: "a.md", Year: 34, Difficulty: question.TierBeginner, Morning: true},
		{File: "b.md", Year: 35, Difficulty: question.TierAdvanced, Morning: false},
	}
	res, err := newAssembler(t, dir).Run(context.Background(), jobs)
	require.NoError(t, err)

	require.Len(t, res.Questions, 5)
	for i, q := range res.Questions {
		assert.Equal(t, 1000+i, q.ID)
		assert.Equal(t, fmt.Sprint(i+1), q.Text)
	}
	assert.Equal(t, 1005, res.NextID)
	assert.Equal(t, map[int]int{34: 2, 35: 3}, res.YearCounts)
	assert.Equal(t, []int{34, 35}, res.Years())

	assert.Equal(t, question.DifficultyEasy, res.Questions[0].Difficulty)
	assert.True(t, res.Questions[0].IsMorning)
	assert.Equal(t, question.DifficultyHard, res.Questions[4].Difficulty)
	assert.False(t, res.Questions[4].IsMorning)

	require.Len(t, res.Documents, 2)
	assert.Equal(t, "A", res.Documents[0].Title)
	assert.Equal(t, StatusProcessed, res.Documents[0].Status)
	assert.Equal(t, 2, res.Documents[0].Accepted)
}

func TestRun_RejectedBlocksDoNotConsumeIDs(t *testing.T) {
	dir := t.TempDir()
	four := validBlock("four")
	four.Choices = 4
	six := validBlock("six")
	six.Choices = 6
	noAnswer := validBlock("none")
	noAnswer.Answer = "なし"

	writeDoc(t, dir, "a.md", "A", validBlock("first"), four, six, noAnswer, validBlock("second"))

	res, err := newAssembler(t, dir).Run(context.Background(), []manifest.Job{{File: "a.md", Year: 34, Difficulty: "中級", Morning: true}})
	require.NoError(t, err)

	require.Len(t, res.Questions, 2)
	assert.Equal(t, 1000, res.Questions[0].ID)
	assert.Equal(t, "first", res.Questions[0].Text)
	assert.Equal(t, 1001, res.Questions[1].ID)
	assert.Equal(t, "second", res.Questions[1].Text)

	doc := res.Documents[0]
	assert.Equal(t, 5, doc.Blocks)
	assert.Equal(t, 2, doc.Accepted)
	assert.Equal(t, 3, doc.RejectedTotal())
	assert.Equal(t, 2, doc.Rejected["choice_count"])
	assert.Equal(t, 1, doc.Rejected[string(extract.ReasonNoAnswerLetters)])
}

func TestRun_TrimsLongAnswers(t *testing.T) {
	dir := t.TempDir()
	b := validBlock("many")
	b.Answer = "A, B, C, D"
	writeDoc(t, dir, "a.md", "A", b)

	res, err := newAssembler(t, dir).Run(context.Background(), []manifest.Job{{File: "a.md", Year: 34, Difficulty: "上級"}})
	require.NoError(t, err)
	require.Len(t, res.Questions, 1)

	q := res.Questions[0]
	assert.Equal(t, []int{0, 1, 2}, q.Correct)
	assert.Equal(t, question.TypeMultiple, q.Type)
	assert.Contains(t, q.Explanation, "正答が4個（A、B、C、D）")
	assert.Contains(t, q.Explanation, "先頭3つ（A、B、C）")
}

func TestRun_MissingDocumentIsSkipped(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "b.md", "B", validBlock("x"))

	jobs := []manifest.Job{
		{File: "a.md", Year: 34, Difficulty: "初級"},
		{File: "b.md", Year: 35, Difficulty: "初級"},
	}
	res, err := newAssembler(t, dir).Run(context.Background(), jobs)
	require.NoError(t, err)

	require.Len(t, res.Documents, 2)
	assert.Equal(t, StatusNotFound, res.Documents[0].Status)
	assert.Equal(t, StatusProcessed, res.Documents[1].Status)
	assert.Equal(t, map[int]int{35: 1}, res.YearCounts)
	require.Len(t, res.Questions, 1)
	assert.Equal(t, 1000, res.Questions[0].ID)
}

func TestRun_EmptyDocumentRecordsYear(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "A")

	res, err := newAssembler(t, dir).Run(context.Background(), []manifest.Job{{File: "a.md", Year: 34}})
	require.NoError(t, err)
	assert.Empty(t, res.Questions)
	assert.Equal(t, map[int]int{34: 0}, res.YearCounts)
}

func TestRun_ReadErrorAborts(t *testing.T) {
	boom := errors.New("permission denied")
	read := func(path string) ([]byte, error) {
		if strings.HasSuffix(path, "b.md") {
			return nil, boom
		}
		return nil, fs.ErrNotExist
	}
	a := newAssembler(t, ".", WithReadFile(read))

	_, err := a.Run(context.Background(), []manifest.Job{{File: "a.md"}, {File: "b.md"}})
	assert.ErrorIs(t, err, boom)
}

func TestRun_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newAssembler(t, t.TempDir()).Run(ctx, manifest.Default())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRun_AbsolutePathIgnoresBaseDir(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "A", validBlock("x"))

	a := newAssembler(t, "/nonexistent")
	res, err := a.Run(context.Background(), []manifest.Job{{File: filepath.Join(dir, "a.md"), Year: 34}})
	require.NoError(t, err)
	assert.Len(t, res.Questions, 1)
}

func TestRun_Idempotent(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "a.md", "A", validBlock("1"), validBlock("2"))
	jobs := []manifest.Job{{File: "a.md", Year: 34, Difficulty: "初級", Morning: true}}
	out := filepath.Join(dir, "out", "questions.json")

	convert := func() []byte {
		res, err := newAssembler(t, dir).Run(context.Background(), jobs)
		require.NoError(t, err)
		existing, err := Load(out)
		require.NoError(t, err)
		c, err := Merge(existing, res.Questions, 1000)
		require.NoError(t, err)
		require.NoError(t, Save(out, c))
		data, err := os.ReadFile(out)
		require.NoError(t, err)
		return data
	}

	first := convert()
	second := convert()
	assert.Equal(t, string(first), string(second))
}
