package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/ports/secondary"
)

// ApprovalRepository implements secondary.ApprovalRepository with SQLite.
type ApprovalRepository struct {
	db *sql.DB
}

// NewApprovalRepository creates a new SQLite approval repository.
func NewApprovalRepository(db *sql.DB) *ApprovalRepository {
	return &ApprovalRepository{db: db}
}

// Upsert writes the single live approval for (project, phase, user).
// A later approval for the same triple overwrites the earlier one,
// including its timestamp, so liveness restarts.
func (r *ApprovalRepository) Upsert(ctx context.Context, approval *models.Approval) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO approvals (id, project_id, phase, user_id, comment, approved, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(project_id, phase, user_id) DO UPDATE SET
			comment = excluded.comment,
			approved = excluded.approved,
			created_at = excluded.created_at`,
		approval.ID, approval.ProjectID, string(approval.Phase), approval.UserID,
		approval.Comment, approval.Approved, approval.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert approval: %w", err)
	}
	return nil
}

// ListLive retrieves approvals for a phase created after the cutoff.
// Expired approvals are not deleted; they are simply excluded here.
func (r *ApprovalRepository) ListLive(ctx context.Context, projectID string, phase models.Phase, cutoff time.Time) ([]*models.Approval, error) {
	return r.list(ctx,
		`SELECT id, project_id, phase, user_id, COALESCE(comment, ''), approved, created_at
		 FROM approvals WHERE project_id = ? AND phase = ? AND approved = 1 AND created_at > ?
		 ORDER BY created_at ASC`,
		projectID, string(phase), cutoff,
	)
}

// ListLiveByProject retrieves all live approvals for a project.
func (r *ApprovalRepository) ListLiveByProject(ctx context.Context, projectID string, cutoff time.Time) ([]*models.Approval, error) {
	return r.list(ctx,
		`SELECT id, project_id, phase, user_id, COALESCE(comment, ''), approved, created_at
		 FROM approvals WHERE project_id = ? AND approved = 1 AND created_at > ?
		 ORDER BY created_at ASC`,
		projectID, cutoff,
	)
}

func (r *ApprovalRepository) list(ctx context.Context, query string, args ...any) ([]*models.Approval, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list approvals: %w", err)
	}
	defer rows.Close()

	var approvals []*models.Approval
	for rows.Next() {
		var (
			phase     string
			createdAt time.Time
		)
		a := &models.Approval{}
		if err := rows.Scan(&a.ID, &a.ProjectID, &phase, &a.UserID, &a.Comment, &a.Approved, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan approval: %w", err)
		}
		a.Phase = models.Phase(phase)
		a.CreatedAt = createdAt
		approvals = append(approvals, a)
	}

	return approvals, rows.Err()
}

// Ensure ApprovalRepository implements the interface
var _ secondary.ApprovalRepository = (*ApprovalRepository)(nil)
