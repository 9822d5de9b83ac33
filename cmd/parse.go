package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ceexam/qconv/internal/config"
	"github.com/ceexam/qconv/internal/corpus"
	"github.com/ceexam/qconv/internal/manifest"
	"github.com/ceexam/qconv/internal/question"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Preview the questions extracted from one document",
	Long: "Parse a single source document and print the accepted records as JSON.\n" +
		"Rejected blocks are tallied on stderr. Nothing is written.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		year, _ := cmd.Flags().GetInt("year")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		afternoon, _ := cmd.Flags().GetBool("afternoon")
		configFile, _ := cmd.Flags().GetString("config")

		// The protected floor does not apply to a preview, so the start
		// id is not checked against it.
		cfg, err := config.Load(configFile, cmd.Flags())
		if err != nil {
			return err
		}
		log, closeLog, err := newLogger(cmd, cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		ac := corpus.DefaultConfig()
		ac.BaseDir = ""
		ac.StartID = cfg.StartID
		ac.ProtectedBelow = 0
		asm, err := corpus.New(ac, corpus.WithLogger(log))
		if err != nil {
			return err
		}

		job := manifest.Job{File: args[0], Year: year, Difficulty: difficulty, Morning: !afternoon}
		res, err := asm.Run(cmd.Context(), []manifest.Job{job})
		if err != nil {
			return err
		}
		doc := res.Documents[0]
		if doc.Status == corpus.StatusNotFound {
			return fmt.Errorf("document not found: %s", args[0])
		}

		merged, err := corpus.Merge(nil, res.Questions, 0)
		if err != nil {
			return err
		}
		data, err := corpus.Encode(merged.Entries)
		if err != nil {
			return err
		}
		if _, err := cmd.OutOrStdout().Write(data); err != nil {
			return err
		}

		stderr := cmd.ErrOrStderr()
		fmt.Fprintf(stderr, "%s: %d blocks, %d accepted, %d rejected\n",
			doc.Title, doc.Blocks, doc.Accepted, doc.RejectedTotal())
		reasons := make([]string, 0, len(doc.Rejected))
		for r := range doc.Rejected {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)
		for _, r := range reasons {
			fmt.Fprintf(stderr, "  %-20s %d\n", r, doc.Rejected[r])
		}
		return nil
	},
}

func init() {
	parseCmd.Flags().Int("year", 0, "Exam sitting number recorded on each question (e.g. 34)")
	parseCmd.Flags().String("difficulty", question.TierIntermediate, "Tier label: 初級, 中級 or 上級")
	parseCmd.Flags().Bool("afternoon", false, "Mark questions as afternoon (午後) instead of morning")
	parseCmd.Flags().Int("start-id", 1000, "Id of the first accepted question")
}
