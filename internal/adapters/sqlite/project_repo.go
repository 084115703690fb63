// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	phase := project.CurrentPhase
	if phase == "" {
		phase = models.PhaseRequirements
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, name, owner_id, current_phase) VALUES (?, ?, ?, ?)`,
		project.ID, project.Name, project.OwnerID, string(phase),
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project with its team members.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	var (
		phase     string
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.ProjectRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, owner_id, current_phase, created_at, updated_at FROM projects WHERE id = ?`,
		id,
	).Scan(&record.ID, &record.Name, &record.OwnerID, &phase, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("project %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	record.CurrentPhase = models.Phase(phase)
	record.CreatedAt = createdAt
	record.UpdatedAt = updatedAt

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_id, role, status FROM team_members WHERE project_id = ? ORDER BY created_at`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.TeamMember
		if err := rows.Scan(&m.UserID, &m.Role, &m.Status); err != nil {
			return nil, fmt.Errorf("failed to scan team member: %w", err)
		}
		record.Members = append(record.Members, m)
	}

	return record, rows.Err()
}

// GetNextID returns the next available project ID.
func (r *ProjectRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	prefixLen := len("PROJ-") + 1
	err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COALESCE(MAX(CAST(SUBSTR(id, %d) AS INTEGER)), 0) FROM projects", prefixLen),
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next project ID: %w", err)
	}

	return fmt.Sprintf("PROJ-%03d", maxID+1), nil
}

// AddMember adds or replaces a team membership.
func (r *ProjectRepository) AddMember(ctx context.Context, projectID string, member models.TeamMember) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO team_members (id, project_id, user_id, role, status) VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(project_id, user_id) DO UPDATE SET role = excluded.role, status = excluded.status`,
		uuid.NewString(), projectID, member.UserID, member.Role, member.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to add team member: %w", err)
	}
	return nil
}

// SetMemberStatus updates a member's status.
func (r *ProjectRepository) SetMemberStatus(ctx context.Context, projectID, userID, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE team_members SET status = ? WHERE project_id = ? AND user_id = ?`,
		status, projectID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set member status: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("member %s of project %s: %w", userID, projectID, secondary.ErrNotFound)
	}
	return nil
}

// RemoveMember removes a team membership.
func (r *ProjectRepository) RemoveMember(ctx context.Context, projectID, userID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM team_members WHERE project_id = ? AND user_id = ?`,
		projectID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("member %s of project %s: %w", userID, projectID, secondary.ErrNotFound)
	}
	return nil
}

// Ensure ProjectRepository implements the interface
var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
