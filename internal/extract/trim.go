package extract

import (
	"fmt"
	"slices"

	"github.com/ceexam/qconv/internal/question"
)

// MaxMultipleAnswers is the most correct choices the quiz app accepts for
// a multiple-answer question.
const MaxMultipleAnswers = 3

type answer struct {
	typ     question.Type
	correct []int
	note    string
}

// resolveAnswer applies the multiple-answer policy to the raw letter
// indices. The type follows the raw count; the trim threshold and the note
// use distinct indices.
func resolveAnswer(raw []int) answer {
	typ := question.TypeMultiple
	if len(raw) == 1 {
		typ = question.TypeSingle
	}

	distinct := slices.Clone(raw)
	slices.Sort(distinct)
	distinct = slices.Compact(distinct)

	if typ != question.TypeMultiple || len(distinct) <= MaxMultipleAnswers {
		return answer{typ: typ, correct: distinct}
	}

	kept := slices.Clone(distinct[:MaxMultipleAnswers])
	return answer{
		typ:     typ,
		correct: kept,
		note:    trimNote(distinct, kept),
	}
}

// trimNote explains to the reader that the stored answers were cut down.
func trimNote(original, kept []int) string {
	return fmt.Sprintf(
		"\n【注記】本問は元データで正答が%d個（%s）ありましたが、\n"+
			"アプリ仕様（複数選択は最大%d）に合わせ、先頭%dつ（%s）に自動調整しています。",
		len(original), question.JoinLetters(original),
		MaxMultipleAnswers, MaxMultipleAnswers, question.JoinLetters(kept),
	)
}
