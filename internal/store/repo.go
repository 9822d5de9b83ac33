package store

import (
	"context"
	"time"
)

// QueryOpts configures run queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// Run is one recorded conversion.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	OutputPath string
	BaseDir    string
	DryRun     bool

	// Total is the size of the written corpus: Protected + Generated.
	Total     int
	Protected int
	Generated int
	NextID    int

	Documents []Document
}

// Document is the ledger row for one job of a run.
type Document struct {
	File       string
	Title      string
	Year       int
	Difficulty string
	Morning    bool
	Status     string
	Blocks     int
	Accepted   int
	Rejected   map[string]int
}

// RunRepo manages recorded runs.
type RunRepo interface {
	// Save stores a run and its documents. A run without an ID gets a
	// fresh one, written back to run.ID.
	Save(ctx context.Context, run *Run) error

	// List returns runs, most recent first, with their documents.
	List(ctx context.Context, opts QueryOpts) ([]Run, error)

	// Prune deletes all but the N most recent runs.
	Prune(ctx context.Context, keep int) error
}
