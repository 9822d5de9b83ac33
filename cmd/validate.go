package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/ceexam/qconv/internal/corpus"
)

var validateCmd = &cobra.Command{
	Use:   "validate [corpus.json]",
	Short: "Check every record of a corpus file against the record schema",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var path string
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			path = cfg.OutputPath()
		}

		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("corpus not found: %s", path)
		}
		entries, err := corpus.Load(path)
		if err != nil {
			return err
		}
		issues, err := corpus.Validate(entries)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		for _, issue := range issues {
			fmt.Fprintln(w, issue)
		}
		dups := corpus.DuplicateIDs(entries)
		for _, id := range dups {
			fmt.Fprintf(w, "duplicate id %d\n", id)
		}

		if n := len(issues) + len(dups); n > 0 {
			return fmt.Errorf("%s: %d of %d records have problems", path, n, len(entries))
		}
		fmt.Fprintf(w, "%s: %d records OK\n", path, len(entries))
		return nil
	},
}
