package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ceexam/qconv/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded conversion runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		prune, _ := cmd.Flags().GetInt("prune")
		verbose, _ := cmd.Flags().GetBool("verbose")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		repo := st.RunRepo()
		if prune > 0 {
			if err := repo.Prune(ctx, prune); err != nil {
				return err
			}
		}

		runs, err := repo.List(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if len(runs) == 0 {
			fmt.Fprintln(w, "No runs recorded.")
			return nil
		}

		fmt.Fprintf(w, "%-36s  %-19s  %6s  %9s  %9s  %s\n",
			"Run", "Started", "Total", "Protected", "Generated", "Output")
		fmt.Fprintln(w, strings.Repeat("─", 110))
		for _, r := range runs {
			output := r.OutputPath
			if r.DryRun {
				output += " (dry run)"
			}
			fmt.Fprintf(w, "%-36s  %-19s  %6d  %9d  %9d  %s\n",
				r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"),
				r.Total, r.Protected, r.Generated, output)
			if verbose {
				for _, d := range r.Documents {
					fmt.Fprintf(w, "    %-10s  %4d/%-4d  %s\n", d.Status, d.Accepted, d.Blocks, d.File)
				}
			}
		}

		fmt.Fprintf(w, "\n%d runs\n", len(runs))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 10, "Number of runs to list (0 = all)")
	historyCmd.Flags().Int("prune", 0, "Keep only the N most recent runs before listing")
	historyCmd.Flags().BoolP("verbose", "v", false, "Show per-document outcomes")
}
