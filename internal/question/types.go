package question

// Record is one converted exam question as persisted in the quiz app corpus.
// Field order and JSON names are the app's contract.
type Record struct {
	// ID is unique across the corpus. Generated records start at the
	// configured start id; lower ids belong to the hand-curated subset.
	ID int `json:"id"`

	// Text is the question prompt, surrounding whitespace trimmed.
	Text string `json:"text"`

	// Choices holds the answer options in source order, without the
	// "A." style prefix.
	Choices []string `json:"choices"`

	// Correct holds zero-based indices into Choices, sorted ascending
	// and free of duplicates.
	Correct []int `json:"correct"`

	// Type is TypeSingle when the source answer named exactly one letter.
	Type Type `json:"type"`

	Difficulty Difficulty `json:"difficulty"`

	// Year is the exam sitting number (e.g. 34 for 第34回).
	Year int `json:"year"`

	// IsMorning distinguishes the morning (午前) and afternoon (午後) papers.
	IsMorning bool `json:"isMorning"`

	// Field is the topical category, DefaultField when the source has none.
	Field string `json:"field"`

	// Explanation is free text. It may end with an adjustment note when
	// the correct answers were trimmed.
	Explanation string `json:"explanation"`
}

// Type tells the quiz app how many choices the learner may pick.
type Type string

const (
	TypeSingle   Type = "single"
	TypeMultiple Type = "multiple"
)

// Difficulty is the app-facing difficulty bucket.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// DefaultField is used when a block carries no (分野:…) annotation.
const DefaultField = "医学概論"

// Tier labels used by the source document names.
const (
	TierBeginner     = "初級"
	TierIntermediate = "中級"
	TierAdvanced     = "上級"
)

var difficultyByTier = map[string]Difficulty{
	TierBeginner:     DifficultyEasy,
	TierIntermediate: DifficultyNormal,
	TierAdvanced:     DifficultyHard,
}

// DifficultyFor maps a source tier label to a Difficulty.
// Unknown labels map to DifficultyNormal.
func DifficultyFor(label string) Difficulty {
	if d, ok := difficultyByTier[label]; ok {
		return d
	}
	return DifficultyNormal
}

// Tiers returns the known tier labels from easiest to hardest.
func Tiers() []string {
	return []string{TierBeginner, TierIntermediate, TierAdvanced}
}
