// Package report persists run results as machine-readable JSON and a
// human-readable Markdown summary.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kamilpajak/tsmend/pkg/models"
)

// Writer writes a RunReport to disk. Either path may be empty to skip that
// format.
type Writer struct {
	JSONPath     string
	MarkdownPath string
}

// Write renders and writes the configured report files.
func (w Writer) Write(r *models.RunReport) error {
	if w.JSONPath != "" {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
		data = append(data, '\n')
		if err := os.WriteFile(w.JSONPath, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", w.JSONPath, err)
		}
	}
	if w.MarkdownPath != "" {
		if err := os.WriteFile(w.MarkdownPath, []byte(Markdown(r)), 0644); err != nil {
			return fmt.Errorf("write %s: %w", w.MarkdownPath, err)
		}
	}
	return nil
}

// Markdown renders the report as a Markdown document.
func Markdown(r *models.RunReport) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# tsmend run %s\n\n", r.RunID)
	fmt.Fprintf(&b, "Started: %s\n", r.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Duration: %s\n\n", r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))

	if r.DryRun {
		b.WriteString("**Dry run:** no files were modified and no commits were made.\n\n")
	}

	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "| Errors before | Errors after | Resolved | Fixes applied | Converged |\n")
	fmt.Fprintf(&b, "|---:|---:|---:|---:|:---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %s |\n\n",
		r.InitialTotal, r.FinalTotal, r.Resolved(), r.TotalFixes(), yesNo(r.Converged))

	if len(r.Strategies) == 0 {
		b.WriteString("No strategies were run.\n")
		return b.String()
	}

	b.WriteString("## Strategies\n\n")
	b.WriteString("| Category | Strategy | Before | After | Fixes | Iterations | Outcome |\n")
	b.WriteString("|:---|:---|---:|---:|---:|---:|:---|\n")
	for _, s := range r.Strategies {
		name := s.Strategy
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %d | %d | %s |\n",
			s.Category, name, s.BeforeCategory, s.AfterCategory, s.Fixes, s.Iterations, outcome(s))
	}

	var notes []string
	for _, s := range r.Strategies {
		if s.Skipped && s.SkipReason != "" {
			notes = append(notes, fmt.Sprintf("- `%s`: %s", s.Category, s.SkipReason))
		}
	}
	if len(notes) > 0 {
		b.WriteString("\n## Skipped\n\n")
		b.WriteString(strings.Join(notes, "\n"))
		b.WriteString("\n")
	}

	return b.String()
}

func outcome(s models.StrategyResult) string {
	switch {
	case s.Skipped:
		return "skipped"
	case s.Reverted && s.TimedOut:
		return "reverted (checker timeout)"
	case s.Reverted:
		return "reverted"
	case s.TimedOut:
		return "kept (checker timeout)"
	case s.Success:
		return "improved"
	default:
		return "no change"
	}
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
