package primary

import (
	"context"

	"github.com/example/specmentor/internal/models"
)

// ProjectService defines the primary port for project lifecycle operations.
type ProjectService interface {
	// CreateProject creates a project and its four phase documents.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*CreateProjectResponse, error)

	// GetProject retrieves a project with its team members.
	GetProject(ctx context.Context, projectID string) (*Project, error)

	// AddMember adds or replaces a team membership.
	AddMember(ctx context.Context, req AddMemberRequest) error

	// SetMemberStatus updates a member's status (ACTIVE or INACTIVE).
	SetMemberStatus(ctx context.Context, projectID, userID, status string) error

	// RemoveMember removes a team membership.
	RemoveMember(ctx context.Context, projectID, userID string) error

	// ListAuditEntries retrieves a project's recent audit entries.
	ListAuditEntries(ctx context.Context, projectID string, limit int) ([]*AuditEntry, error)
}

// CreateProjectRequest contains parameters for creating a project.
type CreateProjectRequest struct {
	Name    string
	OwnerID string
}

// CreateProjectResponse contains the result of creating a project.
type CreateProjectResponse struct {
	ProjectID string
	Project   *Project
}

// AddMemberRequest contains parameters for adding a team member.
type AddMemberRequest struct {
	ProjectID string
	UserID    string
	Role      string // LEAD or MEMBER
}

// Project represents a project at the port boundary.
type Project struct {
	ID           string
	Name         string
	OwnerID      string
	CurrentPhase models.Phase
	Members      []TeamMember
	CreatedAt    string
	UpdatedAt    string
}

// TeamMember represents a team membership at the port boundary.
type TeamMember struct {
	UserID string
	Role   string
	Status string
}

// AuditEntry is an audit record at the port boundary.
type AuditEntry struct {
	ActorID   string
	Action    string
	Details   string
	Success   bool
	CreatedAt string
}
