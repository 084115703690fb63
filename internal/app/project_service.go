package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/specmentor/internal/ctxutil"
	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/ports/primary"
	"github.com/example/specmentor/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	projectRepo secondary.ProjectRepository
	docRepo     secondary.DocumentRepository
	auditor     secondary.AuditLogger
	now         func() time.Time
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(
	projectRepo secondary.ProjectRepository,
	docRepo secondary.DocumentRepository,
	auditor secondary.AuditLogger,
) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		projectRepo: projectRepo,
		docRepo:     docRepo,
		auditor:     auditor,
		now:         time.Now,
	}
}

// CreateProject creates a project in REQUIREMENTS with one DRAFT
// document per phase, all at version 1 with empty content.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.CreateProjectResponse, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	if req.OwnerID == "" {
		return nil, fmt.Errorf("project owner is required")
	}

	nextID, err := s.projectRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project ID: %w", err)
	}

	record := &secondary.ProjectRecord{
		ID:           nextID,
		Name:         req.Name,
		OwnerID:      req.OwnerID,
		CurrentPhase: models.PhaseRequirements,
	}
	if err := s.projectRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	for _, ph := range models.AllPhases() {
		doc := &secondary.DocumentRecord{
			ID:        uuid.NewString(),
			ProjectID: nextID,
			Phase:     ph,
			Content:   "",
			Version:   1,
			Status:    models.DocumentStatusDraft,
		}
		if err := s.docRepo.Create(ctx, doc); err != nil {
			return nil, fmt.Errorf("failed to create %s document: %w", ph, err)
		}
	}

	s.audit(ctx, req.OwnerID, "project.create", nextID,
		map[string]any{"name": req.Name}, true)

	created, err := s.projectRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created project: %w", err)
	}

	return &primary.CreateProjectResponse{
		ProjectID: created.ID,
		Project:   recordToProject(created),
	}, nil
}

// GetProject retrieves a project with its team members.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID string) (*primary.Project, error) {
	record, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return nil, NewNotFound("project", projectID)
		}
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	return recordToProject(record), nil
}

// AddMember adds or replaces a team membership with ACTIVE status.
func (s *ProjectServiceImpl) AddMember(ctx context.Context, req primary.AddMemberRequest) error {
	if req.Role != models.RoleLead && req.Role != models.RoleMember {
		return fmt.Errorf("unknown role %q: must be %s or %s", req.Role, models.RoleLead, models.RoleMember)
	}
	if _, err := s.projectRepo.GetByID(ctx, req.ProjectID); err != nil {
		if errors.Is(err, secondary.ErrNotFound) {
			return NewNotFound("project", req.ProjectID)
		}
		return fmt.Errorf("failed to load project: %w", err)
	}

	member := models.TeamMember{
		UserID: req.UserID,
		Role:   req.Role,
		Status: models.MemberStatusActive,
	}
	if err := s.projectRepo.AddMember(ctx, req.ProjectID, member); err != nil {
		return fmt.Errorf("failed to add member: %w", err)
	}

	s.audit(ctx, "", "project.member.add", req.ProjectID,
		map[string]any{"userId": req.UserID, "role": req.Role}, true)
	return nil
}

// SetMemberStatus updates a member's status.
func (s *ProjectServiceImpl) SetMemberStatus(ctx context.Context, projectID, userID, status string) error {
	if status != models.MemberStatusActive && status != models.MemberStatusInactive {
		return fmt.Errorf("unknown status %q: must be %s or %s", status, models.MemberStatusActive, models.MemberStatusInactive)
	}
	if err := s.projectRepo.SetMemberStatus(ctx, projectID, userID, status); err != nil {
		return fmt.Errorf("failed to set member status: %w", err)
	}

	s.audit(ctx, "", "project.member.status", projectID,
		map[string]any{"userId": userID, "status": status}, true)
	return nil
}

// RemoveMember removes a team membership.
func (s *ProjectServiceImpl) RemoveMember(ctx context.Context, projectID, userID string) error {
	if err := s.projectRepo.RemoveMember(ctx, projectID, userID); err != nil {
		return fmt.Errorf("failed to remove member: %w", err)
	}

	s.audit(ctx, "", "project.member.remove", projectID,
		map[string]any{"userId": userID}, true)
	return nil
}

// ListAuditEntries retrieves a project's recent audit entries.
func (s *ProjectServiceImpl) ListAuditEntries(ctx context.Context, projectID string, limit int) ([]*primary.AuditEntry, error) {
	if s.auditor == nil {
		return nil, nil
	}
	records, err := s.auditor.ListByResource(ctx, "project", projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	entries := make([]*primary.AuditEntry, len(records))
	for i, e := range records {
		entries[i] = &primary.AuditEntry{
			ActorID:   e.ActorID,
			Action:    e.Action,
			Details:   e.Details,
			Success:   e.Success,
			CreatedAt: e.CreatedAt.Format(time.RFC3339),
		}
	}
	return entries, nil
}

// audit appends a best-effort audit entry for a project resource.
func (s *ProjectServiceImpl) audit(ctx context.Context, actorID, action, projectID string, details map[string]any, success bool) {
	if s.auditor == nil {
		return
	}
	if actorID == "" {
		actorID = ctxutil.ActorFromContext(ctx)
	}
	data, _ := json.Marshal(details)
	_ = s.auditor.Log(ctx, secondary.AuditEntry{
		ID:         uuid.NewString(),
		ActorID:    actorID,
		Action:     action,
		Resource:   "project",
		ResourceID: projectID,
		Details:    string(data),
		Success:    success,
		CreatedAt:  s.now(),
	})
}

func recordToProject(record *secondary.ProjectRecord) *primary.Project {
	p := &primary.Project{
		ID:           record.ID,
		Name:         record.Name,
		OwnerID:      record.OwnerID,
		CurrentPhase: record.CurrentPhase,
		CreatedAt:    record.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    record.UpdatedAt.Format(time.RFC3339),
	}
	for _, m := range record.Members {
		p.Members = append(p.Members, primary.TeamMember{
			UserID: m.UserID,
			Role:   m.Role,
			Status: m.Status,
		})
	}
	return p
}

// Ensure ProjectServiceImpl implements the interface
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
