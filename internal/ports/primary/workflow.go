// Package primary defines the primary ports (driving interfaces) for the
// application, along with the data shapes exchanged at the boundary.
package primary

import (
	"context"

	"github.com/example/specmentor/internal/models"
)

// WorkflowService defines the primary port for phase-gated workflow operations.
type WorkflowService interface {
	// ValidatePhase runs the phase's completion validation. Read-only;
	// safe to call repeatedly for live progress display.
	ValidatePhase(ctx context.Context, projectID string, phase models.Phase) (*ValidationResult, error)

	// CanTransition reports whether a transition would be allowed,
	// without mutating anything.
	CanTransition(ctx context.Context, projectID string, target models.Phase, userID string) (*TransitionCheck, error)

	// TransitionPhase executes a phase transition and returns the fresh
	// workflow state.
	TransitionPhase(ctx context.Context, req TransitionRequest) (*WorkflowState, error)

	// GetDocument retrieves the current document for a (project, phase) pair.
	GetDocument(ctx context.Context, projectID string, phase models.Phase) (*Document, error)

	// UpdateDocument applies a content update to a phase document.
	UpdateDocument(ctx context.Context, req UpdateDocumentRequest) (*Document, error)

	// GetWorkflowState returns the (possibly cached) workflow state projection.
	GetWorkflowState(ctx context.Context, projectID string) (*WorkflowState, error)

	// ApprovePhase records a user's approval of a phase.
	ApprovePhase(ctx context.Context, req ApprovePhaseRequest) error

	// TriggerAIReview runs an AI review of the phase's document and
	// persists the result. Returns (nil, nil) when there is nothing to
	// review or the gateway is unavailable.
	TriggerAIReview(ctx context.Context, projectID string, phase models.Phase, userID string) (*AIReview, error)

	// GetPhaseAIValidation reports the AI-only view of a phase's validity.
	GetPhaseAIValidation(ctx context.Context, projectID string, phase models.Phase) (*AIValidation, error)

	// ListDocumentVersions retrieves a document's version history, newest first.
	ListDocumentVersions(ctx context.Context, projectID string, phase models.Phase) ([]*DocumentVersion, error)

	// ListAIReviews retrieves stored AI reviews for a phase document, newest first.
	ListAIReviews(ctx context.Context, projectID string, phase models.Phase) ([]*AIReview, error)
}

// TransitionRequest contains parameters for executing a phase transition.
type TransitionRequest struct {
	ProjectID       string
	TargetPhase     models.Phase
	UserID          string
	ApprovalComment string
}

// TransitionCheck is the outcome of a dry-run eligibility check.
type TransitionCheck struct {
	CanTransition bool
	Reason        string
}

// UpdateDocumentRequest contains parameters for a document content update.
// Version must echo the version the caller last read; a mismatch is
// rejected as a conflict.
type UpdateDocumentRequest struct {
	ProjectID string
	Phase     models.Phase
	Content   string
	Version   int
	UserID    string
}

// ApprovePhaseRequest contains parameters for recording an approval.
type ApprovePhaseRequest struct {
	ProjectID string
	Phase     models.Phase
	UserID    string
	Comment   string
}

// ValidationResult is the outcome of phase completion validation.
// It is computed fresh on every call and never cached independently.
type ValidationResult struct {
	IsValid              bool
	Errors               []string
	Warnings             []string
	CompletionPercentage int
	// AIReview and AIValidationScore are present only when the gateway
	// is configured and answered.
	AIReview          *AIReview
	AIValidationScore *int
}

// AIReview is a gateway review at the port boundary.
type AIReview struct {
	ID           string
	DocumentID   string
	OverallScore int
	Suggestions  []AISuggestion
	Completeness CompletenessCheck
	Quality      QualityMetrics
	Compliance   []ComplianceIssue
	CreatedAt    string
}

// AISuggestion is one improvement suggestion.
type AISuggestion struct {
	ID          string
	Type        string
	Severity    string
	Title       string
	Description string
}

// CompletenessCheck reports document completeness as judged by the gateway.
type CompletenessCheck struct {
	Score           int
	MissingElements []string
}

// QualityMetrics are per-dimension quality scores.
type QualityMetrics struct {
	Clarity      int
	Completeness int
	Consistency  int
}

// ComplianceIssue is one methodology compliance problem.
type ComplianceIssue struct {
	Severity    string
	Description string
	Requirement string
}

// AIValidation is the AI-only validity view for a phase.
type AIValidation struct {
	IsValid bool
	Score   int
	Issues  []string
}

// Document represents a phase document at the port boundary.
type Document struct {
	ID        string
	ProjectID string
	Phase     models.Phase
	Content   string
	Version   int
	Status    string
	UpdatedAt string
}

// DocumentVersion is one entry in a document's version history.
type DocumentVersion struct {
	Version   int
	Content   string
	CreatedBy string
	CreatedAt string
}

// WorkflowState is the derived, cacheable projection of a project's
// workflow position.
type WorkflowState struct {
	ProjectID        string                       `json:"projectId"`
	CurrentPhase     models.Phase                 `json:"currentPhase"`
	PhaseHistory     []PhaseTransition            `json:"phaseHistory"`
	DocumentStatuses map[models.Phase]string      `json:"documentStatuses"`
	Approvals        map[models.Phase][]Approval  `json:"approvals"`
	CanProgress      bool                         `json:"canProgress"`
	NextPhase        models.Phase                 `json:"nextPhase,omitempty"`
}

// PhaseTransition is a historical transition at the port boundary.
type PhaseTransition struct {
	FromPhase models.Phase `json:"fromPhase"`
	ToPhase   models.Phase `json:"toPhase"`
	UserID    string       `json:"userId"`
	Comment   string       `json:"comment,omitempty"`
	Timestamp string       `json:"timestamp"`
}

// Approval is a live phase approval at the port boundary.
type Approval struct {
	UserID    string `json:"userId"`
	Comment   string `json:"comment,omitempty"`
	Approved  bool   `json:"approved"`
	Timestamp string `json:"timestamp"`
}
