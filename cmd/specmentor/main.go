package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/specmentor/internal/cli"
	"github.com/example/specmentor/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "specmentor",
		Short:   "SpecMentor - phase-gated specification workflows",
		Version: version.String(),
		Long: `SpecMentor manages specification projects through four sequential phases:
REQUIREMENTS, DESIGN, TASKS, and IMPLEMENTATION. Each transition is gated by
document validation and team approvals, with optional AI-assisted review.`,
	}

	// Add subcommands
	rootCmd.AddCommand(cli.InitCmd())
	rootCmd.AddCommand(cli.ProjectCmd())
	rootCmd.AddCommand(cli.DocCmd())
	rootCmd.AddCommand(cli.WorkflowCmd())
	rootCmd.AddCommand(cli.ReviewCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
