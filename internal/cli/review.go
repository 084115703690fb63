package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/specmentor/internal/wire"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "AI reviews of phase documents",
}

var reviewTriggerCmd = &cobra.Command{
	Use:   "trigger [project-id] [phase]",
	Short: "Run an AI review and store the result",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID := actorContext(cmd)
		phase, err := parsePhase(args[1])
		if err != nil {
			return err
		}
		return wire.WorkflowAdapter().TriggerReview(ctx, args[0], phase, userID)
	},
}

var reviewShowCmd = &cobra.Command{
	Use:   "show [project-id] [phase]",
	Short: "List stored AI reviews",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _ := actorContext(cmd)
		phase, err := parsePhase(args[1])
		if err != nil {
			return err
		}
		return wire.WorkflowAdapter().ShowReviews(ctx, args[0], phase)
	},
}

// ReviewCmd returns the review command tree.
func ReviewCmd() *cobra.Command {
	reviewTriggerCmd.Flags().String("user", "", "Acting user ID")
	reviewShowCmd.Flags().String("user", "", "Acting user ID")

	reviewCmd.AddCommand(reviewTriggerCmd)
	reviewCmd.AddCommand(reviewShowCmd)
	return reviewCmd
}
