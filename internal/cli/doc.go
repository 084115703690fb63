package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/wire"
)

// parsePhase resolves a phase argument case-insensitively.
func parsePhase(arg string) (models.Phase, error) {
	p := models.Phase(strings.ToUpper(arg))
	if !p.Valid() {
		return "", fmt.Errorf("unknown phase %q: must be one of REQUIREMENTS, DESIGN, TASKS, IMPLEMENTATION", arg)
	}
	return p, nil
}

var docCmd = &cobra.Command{
	Use:   "doc",
	Short: "Manage phase documents",
	Long:  "View and update phase documents and inspect their version history",
}

var docUpdateCmd = &cobra.Command{
	Use:   "update [project-id] [phase]",
	Short: "Update a phase document from a file",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID := actorContext(cmd)
		phase, err := parsePhase(args[1])
		if err != nil {
			return err
		}

		file, _ := cmd.Flags().GetString("file")
		if file == "" {
			return fmt.Errorf("--file is required")
		}
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		version, _ := cmd.Flags().GetInt("version")
		return wire.WorkflowAdapter().UpdateDocument(ctx, args[0], phase, string(content), version, userID)
	},
}

var docShowCmd = &cobra.Command{
	Use:   "show [project-id] [phase]",
	Short: "Print the current document for a phase",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _ := actorContext(cmd)
		phase, err := parsePhase(args[1])
		if err != nil {
			return err
		}
		return wire.WorkflowAdapter().ShowDocument(ctx, args[0], phase)
	},
}

var docHistoryCmd = &cobra.Command{
	Use:   "history [project-id] [phase]",
	Short: "Show a document's version history",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _ := actorContext(cmd)
		phase, err := parsePhase(args[1])
		if err != nil {
			return err
		}
		return wire.WorkflowAdapter().ShowHistory(ctx, args[0], phase)
	},
}

// DocCmd returns the doc command tree.
func DocCmd() *cobra.Command {
	docUpdateCmd.Flags().String("user", "", "Acting user ID")
	docUpdateCmd.Flags().String("file", "", "File containing the new document content")
	docUpdateCmd.Flags().Int("version", 0, "Version last read (rejected if stale)")
	docShowCmd.Flags().String("user", "", "Acting user ID")
	docHistoryCmd.Flags().String("user", "", "Acting user ID")

	docCmd.AddCommand(docUpdateCmd)
	docCmd.AddCommand(docShowCmd)
	docCmd.AddCommand(docHistoryCmd)
	return docCmd
}
