package corpus

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"github.com/ceexam/qconv/internal/document"
	"github.com/ceexam/qconv/internal/extract"
	"github.com/ceexam/qconv/internal/manifest"
	"github.com/ceexam/qconv/internal/question"
)

// Status is the outcome of one job.
type Status string

const (
	StatusProcessed Status = "processed"
	StatusNotFound  Status = "not_found"
)

// DocumentReport summarizes one job of a run.
type DocumentReport struct {
	Job    manifest.Job
	Path   string
	Title  string
	Status Status

	// Blocks counts blocks that carried a problem marker.
	Blocks   int
	Accepted int

	// Rejected counts discarded blocks by extraction reason or
	// validator name.
	Rejected map[string]int
}

// RejectedTotal returns the number of discarded blocks.
func (d DocumentReport) RejectedTotal() int {
	n := 0
	for _, c := range d.Rejected {
		n += c
	}
	return n
}

// Result is everything a run produced.
type Result struct {
	// Questions are the accepted records in id order.
	Questions []question.Record

	// NextID is the id the next accepted record would have received.
	NextID int

	Documents []DocumentReport

	// YearCounts maps exam year to accepted records.
	YearCounts map[int]int
}

// Years returns the years present in YearCounts, ascending.
func (r *Result) Years() []int {
	years := make([]int, 0, len(r.YearCounts))
	for y := range r.YearCounts {
		years = append(years, y)
	}
	slices.Sort(years)
	return years
}

// Assembler converts the documents of a job list into records.
type Assembler struct {
	cfg      Config
	log      *zap.Logger
	readFile func(string) ([]byte, error)
}

// Option customizes an Assembler.
type Option func(*Assembler)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(a *Assembler) { a.log = log }
}

// WithReadFile replaces os.ReadFile for reading source documents.
func WithReadFile(fn func(string) ([]byte, error)) Option {
	return func(a *Assembler) { a.readFile = fn }
}

// New creates an Assembler.
func New(cfg Config, opts ...Option) (*Assembler, error) {
	if err := cfg.Check(); err != nil {
		return nil, err
	}
	a := &Assembler{cfg: cfg, log: zap.NewNop(), readFile: os.ReadFile}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// run is the mutable state of one Run call.
type run struct {
	nextID    int
	questions []question.Record
	years     map[int]int
}

// Run processes jobs in order. Missing documents are reported and
// skipped; any other read failure aborts the run.
func (a *Assembler) Run(ctx context.Context, jobs []manifest.Job) (*Result, error) {
	st := &run{
		nextID:    a.cfg.StartID,
		questions: []question.Record{},
		years:     map[int]int{},
	}
	docs := make([]DocumentReport, 0, len(jobs))

	for _, job := range jobs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rep, err := a.process(st, job)
		if err != nil {
			return nil, err
		}
		docs = append(docs, rep)
	}

	return &Result{
		Questions:  st.questions,
		NextID:     st.nextID,
		Documents:  docs,
		YearCounts: st.years,
	}, nil
}

func (a *Assembler) process(st *run, job manifest.Job) (DocumentReport, error) {
	path := a.resolve(job.File)
	rep := DocumentReport{Job: job, Path: path, Rejected: map[string]int{}}
	log := a.log.With(zap.String("file", job.File), zap.Int("year", job.Year))

	src, err := a.readFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn("source document not found", zap.String("path", path))
		rep.Status = StatusNotFound
		return rep, nil
	}
	if err != nil {
		return rep, fmt.Errorf("read %s: %w", path, err)
	}

	rep.Status = StatusProcessed
	rep.Title = document.Title(src, path)

	for i, block := range document.QuestionBlocks(document.Normalize(src)) {
		rep.Blocks++
		meta := extract.Meta{
			ID:         st.nextID,
			Year:       job.Year,
			Difficulty: job.Difficulty,
			Morning:    job.Morning,
		}
		rec, rej := extract.Extract(block, meta)
		if rej != nil {
			rep.Rejected[string(rej.Reason)]++
			log.Debug("block rejected", zap.Int("block", i), zap.String("reason", string(rej.Reason)), zap.String("detail", rej.Detail))
			continue
		}
		if verr := a.validate(&rec); verr != nil {
			rep.Rejected[verr.Validator]++
			log.Debug("block rejected", zap.Int("block", i), zap.String("reason", verr.Validator), zap.String("detail", verr.Message))
			continue
		}
		st.questions = append(st.questions, rec)
		st.nextID++
		rep.Accepted++
	}

	st.years[job.Year] += rep.Accepted
	log.Info("document processed",
		zap.String("title", rep.Title),
		zap.Int("blocks", rep.Blocks),
		zap.Int("accepted", rep.Accepted),
		zap.Int("rejected", rep.RejectedTotal()),
	)
	return rep, nil
}

func (a *Assembler) validate(r *question.Record) *ValidationError {
	for _, v := range a.cfg.Validators {
		if err := v.Validate(r); err != nil {
			return err
		}
	}
	return nil
}

func (a *Assembler) resolve(file string) string {
	if filepath.IsAbs(file) || a.cfg.BaseDir == "" {
		return file
	}
	return filepath.Join(a.cfg.BaseDir, file)
}
