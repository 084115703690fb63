// Package cli contains the cobra command constructors.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/specmentor/internal/ctxutil"
	"github.com/example/specmentor/internal/wire"
)

// actorContext returns a context carrying the acting user for audit
// attribution. The --user flag wins over the configured user.
func actorContext(cmd *cobra.Command) (context.Context, string) {
	userID, _ := cmd.Flags().GetString("user")
	if userID == "" {
		userID = wire.ActorID()
	}
	return ctxutil.WithActorID(context.Background(), userID), userID
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage specification projects",
	Long:  "Create and inspect projects and their team memberships",
}

var projectCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, userID := actorContext(cmd)
		if userID == "" {
			return fmt.Errorf("no acting user: pass --user or set user_id in .specmentor/config.json")
		}
		return wire.ProjectAdapter().Create(ctx, args[0], userID)
	},
}

var projectShowCmd = &cobra.Command{
	Use:   "show [project-id]",
	Short: "Show project details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _ := actorContext(cmd)
		return wire.ProjectAdapter().Show(ctx, args[0])
	},
}

var projectMemberCmd = &cobra.Command{
	Use:   "member [project-id] [user-id]",
	Short: "Add a team member",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _ := actorContext(cmd)
		role, _ := cmd.Flags().GetString("role")
		return wire.ProjectAdapter().AddMember(ctx, args[0], args[1], role)
	},
}

var projectAuditCmd = &cobra.Command{
	Use:   "audit [project-id]",
	Short: "Show recent audit entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, _ := actorContext(cmd)
		limit, _ := cmd.Flags().GetInt("limit")
		return wire.ProjectAdapter().Audit(ctx, args[0], limit)
	},
}

// ProjectCmd returns the project command tree.
func ProjectCmd() *cobra.Command {
	projectCreateCmd.Flags().String("user", "", "Acting user ID (project owner)")
	projectShowCmd.Flags().String("user", "", "Acting user ID")
	projectMemberCmd.Flags().String("user", "", "Acting user ID")
	projectMemberCmd.Flags().String("role", "MEMBER", "Team role: LEAD or MEMBER")
	projectAuditCmd.Flags().String("user", "", "Acting user ID")
	projectAuditCmd.Flags().Int("limit", 20, "Maximum entries to show")

	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectMemberCmd)
	projectCmd.AddCommand(projectAuditCmd)
	return projectCmd
}
