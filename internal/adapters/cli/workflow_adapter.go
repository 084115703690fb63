// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/ports/primary"
)

// WorkflowAdapter is a thin adapter that translates CLI operations to
// WorkflowService calls. It depends only on the service interface,
// enabling easy testing with mocks.
type WorkflowAdapter struct {
	service primary.WorkflowService
	out     io.Writer
}

// NewWorkflowAdapter creates a new WorkflowAdapter with the given service.
func NewWorkflowAdapter(service primary.WorkflowService, out io.Writer) *WorkflowAdapter {
	return &WorkflowAdapter{
		service: service,
		out:     out,
	}
}

// Validate runs phase completion validation and prints the result.
func (a *WorkflowAdapter) Validate(ctx context.Context, projectID string, phase models.Phase) error {
	result, err := a.service.ValidatePhase(ctx, projectID, phase)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nValidation for %s / %s\n", projectID, phase)
	if result.IsValid {
		fmt.Fprintf(a.out, "Status:     %s\n", color.New(color.FgGreen).Sprint("PASS"))
	} else {
		fmt.Fprintf(a.out, "Status:     %s\n", color.New(color.FgRed).Sprint("FAIL"))
	}
	fmt.Fprintf(a.out, "Completion: %d%%\n", result.CompletionPercentage)
	if result.AIValidationScore != nil {
		fmt.Fprintf(a.out, "AI score:   %d\n", *result.AIValidationScore)
	}
	for _, e := range result.Errors {
		fmt.Fprintf(a.out, "  %s %s\n", color.New(color.FgRed).Sprint("✗"), e)
	}
	for _, w := range result.Warnings {
		fmt.Fprintf(a.out, "  %s %s\n", color.New(color.FgYellow).Sprint("!"), w)
	}
	fmt.Fprintln(a.out)
	return nil
}

// Approve records an approval for a phase.
func (a *WorkflowAdapter) Approve(ctx context.Context, projectID string, phase models.Phase, userID, comment string) error {
	err := a.service.ApprovePhase(ctx, primary.ApprovePhaseRequest{
		ProjectID: projectID,
		Phase:     phase,
		UserID:    userID,
		Comment:   comment,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Approved %s for %s\n", phase, projectID)
	return nil
}

// Transition executes a phase transition and prints the new state.
func (a *WorkflowAdapter) Transition(ctx context.Context, projectID string, target models.Phase, userID, comment string) error {
	state, err := a.service.TransitionPhase(ctx, primary.TransitionRequest{
		ProjectID:       projectID,
		TargetPhase:     target,
		UserID:          userID,
		ApprovalComment: comment,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Project %s is now in %s\n", projectID, state.CurrentPhase)
	return nil
}

// Status prints the workflow state projection.
func (a *WorkflowAdapter) Status(ctx context.Context, projectID string) error {
	state, err := a.service.GetWorkflowState(ctx, projectID)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\nProject: %s\n", state.ProjectID)
	fmt.Fprintf(a.out, "Phase:   %s\n", color.New(color.FgCyan).Sprint(state.CurrentPhase))
	if state.NextPhase != "" {
		progress := color.New(color.FgYellow).Sprint("blocked")
		if state.CanProgress {
			progress = color.New(color.FgGreen).Sprint("ready")
		}
		fmt.Fprintf(a.out, "Next:    %s (%s)\n", state.NextPhase, progress)
	}

	fmt.Fprintln(a.out, "\nDocuments:")
	for _, ph := range models.AllPhases() {
		status, ok := state.DocumentStatuses[ph]
		if !ok {
			continue
		}
		fmt.Fprintf(a.out, "  %-15s %s (%d approvals)\n", ph, status, len(state.Approvals[ph]))
	}

	if len(state.PhaseHistory) > 0 {
		fmt.Fprintln(a.out, "\nHistory:")
		for _, t := range state.PhaseHistory {
			fmt.Fprintf(a.out, "  %s  %s -> %s  by %s\n", t.Timestamp, t.FromPhase, t.ToPhase, t.UserID)
		}
	}
	fmt.Fprintln(a.out)
	return nil
}

// TriggerReview runs an AI review of a phase document.
func (a *WorkflowAdapter) TriggerReview(ctx context.Context, projectID string, phase models.Phase, userID string) error {
	review, err := a.service.TriggerAIReview(ctx, projectID, phase, userID)
	if err != nil {
		return err
	}
	if review == nil {
		fmt.Fprintln(a.out, "No review produced (missing document or AI unavailable)")
		return nil
	}

	fmt.Fprintf(a.out, "✓ Review %s: score %d, %d suggestions\n", review.ID, review.OverallScore, len(review.Suggestions))
	return nil
}

// ShowReviews lists stored AI reviews for a phase document.
func (a *WorkflowAdapter) ShowReviews(ctx context.Context, projectID string, phase models.Phase) error {
	reviews, err := a.service.ListAIReviews(ctx, projectID, phase)
	if err != nil {
		return err
	}
	if len(reviews) == 0 {
		fmt.Fprintln(a.out, "No reviews found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-38s %-7s %s\n", "ID", "SCORE", "CREATED")
	for _, r := range reviews {
		fmt.Fprintf(a.out, "%-38s %-7d %s\n", r.ID, r.OverallScore, r.CreatedAt)
	}
	fmt.Fprintln(a.out)
	return nil
}

// ShowDocument prints the current document for a phase.
func (a *WorkflowAdapter) ShowDocument(ctx context.Context, projectID string, phase models.Phase) error {
	doc, err := a.service.GetDocument(ctx, projectID, phase)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "\n%s document (v%d, %s)\n\n", color.New(color.Bold).Sprint(doc.Phase), doc.Version, doc.Status)
	if doc.Content == "" {
		fmt.Fprintln(a.out, "(empty)")
	} else {
		fmt.Fprintln(a.out, doc.Content)
	}
	return nil
}

// UpdateDocument applies a content update to a phase document.
func (a *WorkflowAdapter) UpdateDocument(ctx context.Context, projectID string, phase models.Phase, content string, version int, userID string) error {
	doc, err := a.service.UpdateDocument(ctx, primary.UpdateDocumentRequest{
		ProjectID: projectID,
		Phase:     phase,
		Content:   content,
		Version:   version,
		UserID:    userID,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "✓ Updated %s document (now v%d)\n", phase, doc.Version)
	return nil
}

// ShowHistory lists a document's version snapshots.
func (a *WorkflowAdapter) ShowHistory(ctx context.Context, projectID string, phase models.Phase) error {
	versions, err := a.service.ListDocumentVersions(ctx, projectID, phase)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		fmt.Fprintln(a.out, "No version history")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-8s %-12s %s\n", "VERSION", "AUTHOR", "CREATED")
	for _, v := range versions {
		fmt.Fprintf(a.out, "v%-7d %-12s %s\n", v.Version, v.CreatedBy, v.CreatedAt)
	}
	fmt.Fprintln(a.out)
	return nil
}
