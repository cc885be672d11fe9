package tsmend

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tsmend",
	Short: "Automated TypeScript error resolution",
	Long: `Tsmend runs the TypeScript compiler over a project, classifies the
reported errors into repair categories, and applies targeted fix strategies.

Every strategy run is bracketed by a git checkpoint commit: fixes that reduce
the error count are kept, fixes that make things worse are rolled back.`,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}
