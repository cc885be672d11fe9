package tsmend

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/kamilpajak/tsmend/internal/checker"
	"github.com/kamilpajak/tsmend/internal/classify"
	"github.com/kamilpajak/tsmend/internal/console"
	"github.com/spf13/cobra"
)

var (
	checkConfigPath string
	checkVerbose    bool
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Run the type checker once and summarize errors by category",
	Long: `Check runs a single type-checker pass and prints the classified error
categories without touching any file. Use it to preview what a fix run
would work on.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkConfigPath, "config", "c", "", "Config file (default <dir>/.tsmend.yaml)")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "List every diagnostic under its category")
}

func runCheck(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	log := console.New(os.Stderr, checkVerbose)

	cfg, err := loadConfig(dir, checkConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()

	stop := log.Spinner("running type checker")
	raw, err := runnerFrom(dir, cfg).Read(ctx)
	stop()
	if err != nil {
		return fmt.Errorf("type check: %w", err)
	}

	diags := checker.Parse(raw)
	if len(diags) == 0 {
		log.Success("no type errors")
		return nil
	}

	categories := classify.Classify(diags)

	bold := color.New(color.Bold)
	dim := color.New(color.FgHiBlack)

	fmt.Printf("%d errors in %d categories\n\n", len(diags), len(categories))
	_, _ = bold.Printf("  %-28s %6s %6s %9s\n", "CATEGORY", "COUNT", "FILES", "PRIORITY")
	_, _ = dim.Println("  " + strings.Repeat("-", 51))
	for _, cat := range categories {
		fmt.Printf("  %-28s %6d %6d %9d\n", cat.Key, len(cat.Members), len(cat.Files()), cat.Priority)
		if checkVerbose {
			for _, d := range cat.Members {
				_, _ = dim.Printf("      %s(%d,%d) %s: %s\n", d.File, d.Line, d.Column, d.Code, d.Message)
			}
		}
	}

	os.Exit(2)
	return nil
}
