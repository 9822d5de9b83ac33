package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ceexam/qconv/internal/config"
	"github.com/ceexam/qconv/internal/logging"
	"github.com/ceexam/qconv/internal/report"
	"github.com/ceexam/qconv/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "qconv",
	Short: "Convert marked-up exam questions into the quiz app corpus",
	Long: "qconv reads the 類似問題 Markdown documents, extracts every well-formed question\n" +
		"and writes them, together with the hand-curated sample questions, to the\n" +
		"quiz app's questions.json.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConvert(cmd)
	},
}

// Execute runs the root command and prints any failure to stderr.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		plain, _ := rootCmd.PersistentFlags().GetBool("plain")
		report.New(rootCmd.ErrOrStderr(), plain).Error(err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Config file (default ./qconv.yaml if present)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.String("log-file", "", "Also write JSON logs to this file, rotated")
	pf.String("db", "", "Path to the run ledger database (enables recording; overrides QCONV_DB)")
	pf.Bool("plain", false, "Disable styled output")

	addConvertFlags(rootCmd.Flags())

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

func addConvertFlags(fs *pflag.FlagSet) {
	fs.String("base-dir", ".", "Directory holding the source documents")
	fs.StringP("output", "o", config.DefaultOutput, "Corpus file, relative to --base-dir unless absolute")
	fs.StringP("manifest", "m", "", "Job manifest (.yaml, .yml or .json); default is the built-in job list")
	fs.Int("start-id", 1000, "Id of the first generated question")
	fs.Int("protected-below", 1000, "Existing questions with a lower id are kept as is")
	fs.String("metrics-file", "", "Write Prometheus metrics for the run to this file")
	fs.Bool("dry-run", false, "Convert and report without writing the corpus")
	fs.Bool("record", false, "Record the run in the ledger even without --db")
}

// loadConfig resolves and validates settings for cmd.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(file, cmd.Flags())
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger described by cfg. The returned function
// flushes it.
func newLogger(cmd *cobra.Command, cfg *config.Config) (*zap.Logger, func(), error) {
	log, closeFn, err := logging.New(logging.Options{
		Level:   cfg.LogLevel,
		File:    cfg.LogFile,
		Console: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	if cfg.File != "" {
		log.Debug("config loaded", zap.String("file", cfg.File))
	}
	return log, closeFn, nil
}

// resolveDBPath returns the ledger path using --db / QCONV_DB,
// then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
