package tsmend

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/kamilpajak/tsmend/internal/checker"
	"github.com/kamilpajak/tsmend/internal/config"
	"github.com/kamilpajak/tsmend/internal/console"
	"github.com/kamilpajak/tsmend/internal/gitrepo"
	"github.com/kamilpajak/tsmend/internal/orchestrator"
	"github.com/kamilpajak/tsmend/internal/report"
	"github.com/kamilpajak/tsmend/internal/strategy"
	"github.com/kamilpajak/tsmend/pkg/models"
	"github.com/spf13/cobra"
)

var (
	fixDryRun        bool
	fixBackup        bool
	fixReport        bool
	fixNoReport      bool
	fixReportPath    string
	fixMaxIterations int
	fixTolerance     int
	fixConfigPath    string
	fixVerbose       bool
)

var fixCmd = &cobra.Command{
	Use:   "fix [dir]",
	Short: "Resolve type errors with checkpointed fix strategies",
	Long: `Fix runs the type checker, groups the errors into categories, and applies
one fix strategy per category in priority order. Each strategy run is
committed when it helps and hard-reset when it regresses the error count
beyond the tolerance.

Examples:
  tsmend fix
  tsmend fix ./web --dry-run
  tsmend fix --tolerance 0 --max-iterations 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Compute fixes without writing files or committing")
	fixCmd.Flags().BoolVar(&fixBackup, "backup", false, "Write a .bak copy beside every rewritten file")
	fixCmd.Flags().BoolVar(&fixReport, "report", true, "Write JSON and Markdown run reports")
	fixCmd.Flags().BoolVar(&fixNoReport, "no-report", false, "Disable report files")
	fixCmd.Flags().StringVar(&fixReportPath, "report-path", "", "Report path (.json; the Markdown twin is written beside it)")
	fixCmd.Flags().IntVar(&fixMaxIterations, "max-iterations", 0, "Max iterations per strategy (overrides config)")
	fixCmd.Flags().IntVar(&fixTolerance, "tolerance", 0, "Allowed error-count increase before rollback (overrides config)")
	fixCmd.Flags().StringVarP(&fixConfigPath, "config", "c", "", "Config file (default <dir>/.tsmend.yaml)")
	fixCmd.Flags().BoolVarP(&fixVerbose, "verbose", "v", false, "Show per-category detail and raw checker behavior")
}

func runFix(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	log := console.New(os.Stderr, fixVerbose)

	cfg, err := loadConfig(dir, fixConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-iterations") {
		cfg.MaxIterationsPerStrategy = fixMaxIterations
	}
	if cmd.Flags().Changed("tolerance") {
		cfg.Tolerance = fixTolerance
	}
	if fixReportPath != "" {
		cfg.Report.JSONPath = fixReportPath
		cfg.Report.MarkdownPath = strings.TrimSuffix(fixReportPath, filepath.Ext(fixReportPath)) + ".md"
	}

	vcs := gitrepo.New(dir)
	if !fixDryRun {
		if !gitrepo.Available() {
			return fmt.Errorf("git is required (install git, or use --dry-run)")
		}
		if !vcs.IsRepo() {
			return fmt.Errorf("%s is not a git repository (run `git init`, or use --dry-run)", dir)
		}
		if dirty, err := vcs.HasChanges(); err == nil && dirty {
			log.Warning("working tree has uncommitted changes; they will be folded into the first checkpoint")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	run, err := orchestrator.Run(ctx, orchestrator.Params{
		Config:   cfg,
		Checker:  runnerFrom(dir, cfg),
		VCS:      vcs,
		Registry: strategy.Default(),
		Exec:     &strategy.Executor{Dir: dir, DryRun: fixDryRun, Backup: fixBackup},
		Log:      log,
		DryRun:   fixDryRun,
	})

	if fixReport && !fixNoReport && run != nil {
		w := report.Writer{JSONPath: cfg.Report.JSONPath, MarkdownPath: cfg.Report.MarkdownPath}
		if werr := w.Write(run); werr != nil {
			log.Error("could not write report: %v", werr)
		} else {
			log.Info("report written to %s", cfg.Report.JSONPath)
		}
	}

	if err != nil {
		return fmt.Errorf("fix run aborted: %w", err)
	}

	printSummary(os.Stdout, run)

	if !run.Converged {
		os.Exit(2)
	}
	return nil
}

func loadConfig(dir, explicit string) (config.Config, error) {
	path := explicit
	if path == "" {
		path = filepath.Join(dir, config.DefaultFile)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func runnerFrom(dir string, cfg config.Config) *checker.Runner {
	r := checker.NewRunner(dir)
	if len(cfg.Checker.Command) > 0 {
		r.Command = cfg.Checker.Command
	}
	r.Attempts = cfg.Checker.Attempts
	r.BaseTimeout = cfg.CheckerTimeout()
	r.Backoff = cfg.CheckerBackoff()
	return r
}

func printSummary(w io.Writer, run *models.RunReport) {
	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	fmt.Fprintln(w)
	_, _ = dim.Fprintln(w, "  "+strings.Repeat("━", 50))

	if run.Converged {
		green := color.New(color.FgGreen, color.Bold)
		_, _ = green.Fprintf(w, "  All clear: %d -> 0 errors\n", run.InitialTotal)
	} else {
		_, _ = bold.Fprintf(w, "  %d -> %d errors (%d resolved)\n",
			run.InitialTotal, run.FinalTotal, run.Resolved())
	}
	fmt.Fprintf(w, "  %d fixes across %d strategies\n", run.TotalFixes(), len(run.Strategies))
	if run.DryRun {
		_, _ = dim.Fprintln(w, "  dry run: nothing was written or committed")
	}

	var unhandled []string
	for _, s := range run.Strategies {
		if s.Skipped && s.SkipReason == "no strategy registered" {
			unhandled = append(unhandled, s.Category)
		}
	}
	if len(unhandled) > 0 {
		fmt.Fprintln(w)
		_, _ = bold.Fprintln(w, "  Remaining categories need manual attention:")
		for _, c := range unhandled {
			fmt.Fprintf(w, "    - %s\n", c)
		}
		_, _ = dim.Fprintln(w, "  Run `tsmend check` to list the individual errors.")
	}
}
