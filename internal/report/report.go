// Package report prints run progress and the final summary to the console.
package report

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"

	"github.com/ceexam/qconv/internal/corpus"
	"github.com/ceexam/qconv/internal/ui/theme"
)

// Printer writes human-readable run output. In plain mode no styling is
// applied.
type Printer struct {
	w     io.Writer
	plain bool
}

// New returns a Printer writing to w.
func New(w io.Writer, plain bool) *Printer {
	return &Printer{w: w, plain: plain}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if p.plain {
		return text
	}
	return s.Render(text)
}

func (p *Printer) println(line string) {
	if p.plain {
		fmt.Fprintln(p.w, line)
		return
	}
	lipgloss.Fprintln(p.w, line)
}

// Document prints the one-line outcome of a job.
func (p *Printer) Document(d corpus.DocumentReport) {
	switch d.Status {
	case corpus.StatusNotFound:
		p.println(p.style(theme.Missing, "File not found: "+d.Job.File))
	default:
		line := fmt.Sprintf("Processed: %s -> %s questions",
			p.style(theme.File, d.Job.File),
			p.style(theme.Count, fmt.Sprint(d.Accepted)))
		if n := d.RejectedTotal(); n > 0 {
			line += p.style(theme.Hint, fmt.Sprintf(" (%d skipped)", n))
		}
		p.println(line)
	}
}

// Summary is what a finished run reports.
type Summary struct {
	Output     string
	Total      int
	Protected  int
	Years      []int
	YearCounts map[int]int
	DryRun     bool
}

// NewSummary builds a Summary from a run result and the merged corpus.
func NewSummary(output string, res *corpus.Result, c corpus.Corpus, dryRun bool) Summary {
	return Summary{
		Output:     output,
		Total:      len(c.Entries),
		Protected:  c.Protected,
		Years:      res.Years(),
		YearCounts: res.YearCounts,
		DryRun:     dryRun,
	}
}

// Summary prints the totals block.
func (p *Printer) Summary(s Summary) {
	fmt.Fprintln(p.w)
	label := "Total questions saved"
	if s.DryRun {
		label = "Total questions (dry run, nothing written)"
	}
	p.println(p.style(theme.Title, fmt.Sprintf("%s: %d", label, s.Total)))
	p.println(fmt.Sprintf("  - Sample questions: %d", s.Protected))
	for _, y := range s.Years {
		p.println(fmt.Sprintf("  - Year %d questions: %d", y, s.YearCounts[y]))
	}
	if s.Output != "" && !s.DryRun {
		p.println(p.style(theme.Hint, "  -> "+s.Output))
	}
}

// Error prints a failure line.
func (p *Printer) Error(err error) {
	p.println(p.style(theme.Failure, "Error: "+err.Error()))
}
