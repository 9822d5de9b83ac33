package manifest

// Job is one source document to convert, with the metadata stamped on
// every record it yields.
type Job struct {
	// File is the document path. Relative paths resolve against the
	// base directory of the run.
	File string

	// Year is the exam sitting number, e.g. 34 for 第34回.
	Year int

	// Difficulty is the tier label (初級, 中級, 上級).
	Difficulty string

	// Morning is true for the morning (午前) paper.
	Morning bool
}

// Session returns the Japanese session label used in file names.
func (j Job) Session() string {
	if j.Morning {
		return SessionMorning
	}
	return SessionAfternoon
}

// Session labels.
const (
	SessionMorning   = "午前"
	SessionAfternoon = "午後"
)

// Spec is the on-disk manifest schema, loaded from YAML or JSON.
type Spec struct {
	Version int       `json:"version" yaml:"version"`
	Jobs    []JobSpec `json:"jobs" yaml:"jobs"`
}

// JobSpec is a manifest entry before normalization.
type JobSpec struct {
	File       string `json:"file" yaml:"file"`
	Year       int    `json:"year" yaml:"year"`
	Difficulty string `json:"difficulty" yaml:"difficulty"`
	// Session is morning/afternoon or 午前/午後.
	Session string `json:"session" yaml:"session"`
}
