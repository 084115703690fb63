// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the application drives external systems.
package secondary

import (
	"context"
	"errors"
	"time"

	"github.com/example/specmentor/internal/models"
)

// ErrNotFound is returned (wrapped) by repositories when a record does
// not exist for the given key.
var ErrNotFound = errors.New("not found")

// ProjectRepository defines the secondary port for project persistence.
type ProjectRepository interface {
	// Create persists a new project.
	Create(ctx context.Context, project *ProjectRecord) error

	// GetByID retrieves a project with its team members.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)

	// GetNextID returns the next available project ID.
	GetNextID(ctx context.Context) (string, error)

	// AddMember adds or replaces a team membership.
	AddMember(ctx context.Context, projectID string, member models.TeamMember) error

	// SetMemberStatus updates a member's status.
	SetMemberStatus(ctx context.Context, projectID, userID, status string) error

	// RemoveMember removes a team membership.
	RemoveMember(ctx context.Context, projectID, userID string) error
}

// ProjectRecord represents a project as stored in persistence.
type ProjectRecord struct {
	ID           string
	Name         string
	OwnerID      string
	CurrentPhase models.Phase
	Members      []models.TeamMember
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DocumentRepository defines the secondary port for specification
// document persistence, keyed by the compound (projectID, phase).
type DocumentRepository interface {
	// Create persists a new document.
	Create(ctx context.Context, doc *DocumentRecord) error

	// GetByProjectPhase retrieves the document for a (project, phase) pair.
	GetByProjectPhase(ctx context.Context, projectID string, phase models.Phase) (*DocumentRecord, error)

	// Update overwrites content, version, status and the updated_at timestamp.
	Update(ctx context.Context, doc *DocumentRecord) error

	// SaveVersion durably appends a snapshot of a document's prior state.
	// Callers must invoke this before Update so that no content update
	// lands without a snapshot of what it replaced.
	SaveVersion(ctx context.Context, snapshot *DocumentVersionRecord) error

	// ListVersions retrieves a document's snapshots, newest first.
	ListVersions(ctx context.Context, documentID string) ([]*DocumentVersionRecord, error)
}

// DocumentRecord represents a specification document as stored in persistence.
type DocumentRecord struct {
	ID        string
	ProjectID string
	Phase     models.Phase
	Content   string
	Version   int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DocumentVersionRecord is one snapshot in a document's version history.
type DocumentVersionRecord struct {
	ID         string
	DocumentID string
	Version    int
	Content    string
	CreatedBy  string
	CreatedAt  time.Time
}

// TransitionStore defines the secondary port for phase transition
// execution and history.
type TransitionStore interface {
	// Apply executes the transition as one atomic unit: the project's
	// current phase moves to ToPhase, a transition record is appended,
	// the target phase's document resets to DRAFT, and an audit entry
	// is written. All four happen or none do.
	Apply(ctx context.Context, unit *TransitionUnit) error

	// ListByProject retrieves a project's transitions, oldest first.
	ListByProject(ctx context.Context, projectID string) ([]*models.PhaseTransition, error)
}

// TransitionUnit describes the atomic mutation for one phase transition.
type TransitionUnit struct {
	ID              string
	ProjectID       string
	FromPhase       models.Phase
	ToPhase         models.Phase
	UserID          string
	ApprovalComment string
	Audit           AuditEntry
}

// ApprovalRepository defines the secondary port for phase approvals.
type ApprovalRepository interface {
	// Upsert writes the single live approval for (project, phase, user),
	// overwriting any earlier record for the same triple.
	Upsert(ctx context.Context, approval *models.Approval) error

	// ListLive retrieves approvals for a phase created after the cutoff.
	ListLive(ctx context.Context, projectID string, phase models.Phase, cutoff time.Time) ([]*models.Approval, error)

	// ListLiveByProject retrieves all of a project's approvals created
	// after the cutoff, across phases.
	ListLiveByProject(ctx context.Context, projectID string, cutoff time.Time) ([]*models.Approval, error)
}

// ReviewRepository defines the secondary port for persisted AI reviews.
type ReviewRepository interface {
	// Create persists a completed AI review for a document.
	Create(ctx context.Context, review *ReviewRecord) error

	// ListByDocument retrieves a document's reviews, newest first.
	ListByDocument(ctx context.Context, documentID string) ([]*ReviewRecord, error)
}

// ReviewRecord represents a stored AI review linked to a document.
type ReviewRecord struct {
	ID           string
	DocumentID   string
	OverallScore int
	// Payload is the gateway response serialized as JSON.
	Payload   string
	CreatedAt time.Time
}
