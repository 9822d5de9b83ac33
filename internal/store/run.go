package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// runRepo implements RunRepo on database/sql.
type runRepo struct {
	db *sql.DB
}

func (r *runRepo) Save(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, output_path, base_dir, dry_run, total, protected, generated, next_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, formatTime(run.StartedAt), formatTime(run.FinishedAt), run.OutputPath, run.BaseDir,
		run.DryRun, run.Total, run.Protected, run.Generated, run.NextID,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for i, d := range run.Documents {
		rejected, err := json.Marshal(orEmpty(d.Rejected))
		if err != nil {
			return fmt.Errorf("marshal rejections: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_documents (run_id, position, file, title, year, difficulty, morning, status, blocks, accepted, rejected)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, d.File, d.Title, d.Year, d.Difficulty, d.Morning, d.Status, d.Blocks, d.Accepted, string(rejected),
		)
		if err != nil {
			return fmt.Errorf("insert run document %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

func (r *runRepo) List(ctx context.Context, opts QueryOpts) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, output_path, base_dir, dry_run, total, protected, generated, next_id
		FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []any
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run               Run
			started, finished string
		)
		if err := rows.Scan(&run.ID, &started, &finished, &run.OutputPath, &run.BaseDir, &run.DryRun,
			&run.Total, &run.Protected, &run.Generated, &run.NextID); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = parseTime(started); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseTime(finished); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	rows.Close()

	for i := range runs {
		docs, err := r.documents(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Documents = docs
	}
	return runs, nil
}

func (r *runRepo) documents(ctx context.Context, runID string) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT file, title, year, difficulty, morning, status, blocks, accepted, rejected
		 FROM run_documents WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("query run documents: %w", err)
	}
	defer rows.Close()

	var docs []Document
	for rows.Next() {
		var (
			d        Document
			rejected string
		)
		if err := rows.Scan(&d.File, &d.Title, &d.Year, &d.Difficulty, &d.Morning, &d.Status,
			&d.Blocks, &d.Accepted, &rejected); err != nil {
			return nil, fmt.Errorf("scan run document: %w", err)
		}
		if err := json.Unmarshal([]byte(rejected), &d.Rejected); err != nil {
			return nil, fmt.Errorf("decode rejections: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run documents: %w", err)
	}
	return docs, nil
}

func (r *runRepo) Prune(ctx context.Context, keep int) error {
	// Everything ranked after the newest keep runs goes.
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM runs WHERE id NOT IN (
			SELECT id FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?
		)`, keep)
	if err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return nil
}

// timeLayout has a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}

func orEmpty(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}
