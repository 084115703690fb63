package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/ports/primary"
)

// ProjectAdapter is a thin adapter that translates CLI operations to
// ProjectService calls.
type ProjectAdapter struct {
	service primary.ProjectService
	out     io.Writer
}

// NewProjectAdapter creates a new ProjectAdapter with the given service.
func NewProjectAdapter(service primary.ProjectService, out io.Writer) *ProjectAdapter {
	return &ProjectAdapter{
		service: service,
		out:     out,
	}
}

// Create creates a new project.
func (a *ProjectAdapter) Create(ctx context.Context, name, ownerID string) error {
	resp, err := a.service.CreateProject(ctx, primary.CreateProjectRequest{
		Name:    name,
		OwnerID: ownerID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Created project %s: %s\n", resp.ProjectID, resp.Project.Name)
	fmt.Fprintf(a.out, "  Phase: %s\n", resp.Project.CurrentPhase)
	return nil
}

// Show displays details for a single project.
func (a *ProjectAdapter) Show(ctx context.Context, projectID string) error {
	project, err := a.service.GetProject(ctx, projectID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nProject: %s\n", project.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", project.Name)
	fmt.Fprintf(a.out, "Owner:   %s\n", project.OwnerID)
	fmt.Fprintf(a.out, "Phase:   %s\n", color.New(color.FgCyan).Sprint(project.CurrentPhase))
	fmt.Fprintf(a.out, "Created: %s\n", project.CreatedAt)

	if len(project.Members) > 0 {
		fmt.Fprintln(a.out, "\nTeam:")
		for _, m := range project.Members {
			status := color.New(color.FgGreen).Sprint(m.Status)
			if m.Status == models.MemberStatusInactive {
				status = color.New(color.FgYellow).Sprint(m.Status)
			}
			fmt.Fprintf(a.out, "  %-15s %-8s %s\n", m.UserID, m.Role, status)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

// AddMember adds a team member to a project.
func (a *ProjectAdapter) AddMember(ctx context.Context, projectID, userID, role string) error {
	err := a.service.AddMember(ctx, primary.AddMemberRequest{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Added %s to %s as %s\n", userID, projectID, role)
	return nil
}

// Audit lists a project's recent audit entries.
func (a *ProjectAdapter) Audit(ctx context.Context, projectID string, limit int) error {
	entries, err := a.service.ListAuditEntries(ctx, projectID, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "No audit entries")
		return nil
	}

	for _, e := range entries {
		outcome := color.New(color.FgGreen).Sprint("ok")
		if !e.Success {
			outcome = color.New(color.FgRed).Sprint("failed")
		}
		fmt.Fprintf(a.out, "%s  %-24s %-12s %s  %s\n", e.CreatedAt, e.Action, e.ActorID, outcome, e.Details)
	}
	return nil
}
