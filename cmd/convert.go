package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ceexam/qconv/internal/config"
	"github.com/ceexam/qconv/internal/corpus"
	"github.com/ceexam/qconv/internal/manifest"
	"github.com/ceexam/qconv/internal/metrics"
	"github.com/ceexam/qconv/internal/report"
	"github.com/ceexam/qconv/internal/store"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the source documents and rewrite the corpus (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd)
	},
}

func init() {
	addConvertFlags(convertCmd.Flags())
}

// runConvert performs a full conversion run.
func runConvert(cmd *cobra.Command) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	jobs := manifest.Default()
	if cfg.Manifest != "" {
		if jobs, err = manifest.Load(cfg.Manifest); err != nil {
			return err
		}
	}

	asm, err := corpus.New(cfg.Assembler(), corpus.WithLogger(log))
	if err != nil {
		return err
	}

	out := report.New(cmd.OutOrStdout(), cfg.Plain)
	output := cfg.OutputPath()
	started := time.Now()
	log.Info("conversion started",
		zap.Int("jobs", len(jobs)),
		zap.String("base_dir", cfg.BaseDir),
		zap.String("output", output),
		zap.Int("start_id", cfg.StartID),
	)

	res, err := asm.Run(ctx, jobs)
	if err != nil {
		return fmt.Errorf("convert: %w", err)
	}
	for _, d := range res.Documents {
		out.Document(d)
	}

	existing, err := corpus.Load(output)
	if err != nil {
		return err
	}
	merged, err := corpus.Merge(existing, res.Questions, cfg.ProtectedBelow)
	if err != nil {
		return err
	}
	if dups := corpus.DuplicateIDs(merged.Entries); len(dups) > 0 {
		log.Warn("corpus has duplicate ids", zap.Ints("ids", dups))
	}

	if err := corpus.CheckGenerated(merged); err != nil {
		return err
	}

	if cfg.DryRun {
		log.Info("dry run, corpus not written")
	} else if err := corpus.Save(output, merged); err != nil {
		return err
	}
	finished := time.Now()

	out.Summary(report.NewSummary(output, res, merged, cfg.DryRun))
	log.Info("conversion finished",
		zap.Int("total", len(merged.Entries)),
		zap.Int("protected", merged.Protected),
		zap.Int("generated", merged.Generated),
		zap.Duration("elapsed", finished.Sub(started)),
	)

	if cfg.MetricsFile != "" {
		m := metrics.NewRun()
		m.Observe(res, merged, finished)
		if err := m.WriteFile(cfg.MetricsFile); err != nil {
			return err
		}
	}

	if cfg.Recording() {
		run := ledgerRun(cfg, output, res, merged, started, finished)
		if err := recordRun(cmd, cfg, run); err != nil {
			return err
		}
		log.Debug("run recorded", zap.String("run_id", run.ID))
	}
	return nil
}

// ledgerRun describes a finished run for the ledger.
func ledgerRun(cfg *config.Config, output string, res *corpus.Result, c corpus.Corpus, started, finished time.Time) *store.Run {
	run := &store.Run{
		StartedAt:  started,
		FinishedAt: finished,
		OutputPath: output,
		BaseDir:    cfg.BaseDir,
		DryRun:     cfg.DryRun,
		Total:      len(c.Entries),
		Protected:  c.Protected,
		Generated:  c.Generated,
		NextID:     res.NextID,
	}
	for _, d := range res.Documents {
		run.Documents = append(run.Documents, store.Document{
			File:       d.Job.File,
			Title:      d.Title,
			Year:       d.Job.Year,
			Difficulty: d.Job.Difficulty,
			Morning:    d.Job.Morning,
			Status:     string(d.Status),
			Blocks:     d.Blocks,
			Accepted:   d.Accepted,
			Rejected:   d.Rejected,
		})
	}
	return run
}

func recordRun(cmd *cobra.Command, cfg *config.Config, run *store.Run) error {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.RunRepo().Save(cmd.Context(), run); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}
