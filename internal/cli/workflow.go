package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/specmentor/internal/wire"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Drive the phase-gated workflow",
	Long:  "Validate phase completion, record approvals, and execute phase transitions",
}

var workflowValidateCmd = &cobra.Command{
	Use:   "validate [project-id] [phase]",
	Short: "Run phase completion validation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _ := actorContext(cmd)
		phase, err := parsePhase(args[1])
		if err != nil {
			return err
		}
		return wire.WorkflowAdapter().Validate(ctx, args[0], phase)
	},
}

var workflowApproveCmd = &cobra.Command{
	Use:   "approve [project-id] [phase]",
	Short: "Approve a phase",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID := actorContext(cmd)
		if userID == "" {
			return fmt.Errorf("no acting user: pass --user or set user_id in .specmentor/config.json")
		}
		phase, err := parsePhase(args[1])
		if err != nil {
			return err
		}
		comment, _ := cmd.Flags().GetString("comment")
		return wire.WorkflowAdapter().Approve(ctx, args[0], phase, userID, comment)
	},
}

var workflowTransitionCmd = &cobra.Command{
	Use:   "transition [project-id] [target-phase]",
	Short: "Transition a project to the next phase",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID := actorContext(cmd)
		if userID == "" {
			return fmt.Errorf("no acting user: pass --user or set user_id in .specmentor/config.json")
		}
		phase, err := parsePhase(args[1])
		if err != nil {
			return err
		}
		comment, _ := cmd.Flags().GetString("comment")
		return wire.WorkflowAdapter().Transition(ctx, args[0], phase, userID, comment)
	},
}

var workflowStatusCmd = &cobra.Command{
	Use:   "status [project-id]",
	Short: "Show the workflow state projection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _ := actorContext(cmd)
		return wire.WorkflowAdapter().Status(ctx, args[0])
	},
}

// WorkflowCmd returns the workflow command tree.
func WorkflowCmd() *cobra.Command {
	workflowValidateCmd.Flags().String("user", "", "Acting user ID")
	workflowApproveCmd.Flags().String("user", "", "Acting user ID")
	workflowApproveCmd.Flags().String("comment", "", "Approval comment")
	workflowTransitionCmd.Flags().String("user", "", "Acting user ID")
	workflowTransitionCmd.Flags().String("comment", "", "Approval comment recorded with the transition")
	workflowStatusCmd.Flags().String("user", "", "Acting user ID")

	workflowCmd.AddCommand(workflowValidateCmd)
	workflowCmd.AddCommand(workflowApproveCmd)
	workflowCmd.AddCommand(workflowTransitionCmd)
	workflowCmd.AddCommand(workflowStatusCmd)
	return workflowCmd
}
