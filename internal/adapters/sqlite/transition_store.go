package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/ports/secondary"
)

// TransitionStore implements secondary.TransitionStore with SQLite.
type TransitionStore struct {
	db *sql.DB
}

// NewTransitionStore creates a new SQLite transition store.
func NewTransitionStore(db *sql.DB) *TransitionStore {
	return &TransitionStore{db: db}
}

// Apply executes the four-part transition as one transaction: project
// phase update, transition record, target document reset to DRAFT, and
// the audit entry. A failure in any part rolls back all of them.
func (s *TransitionStore) Apply(ctx context.Context, unit *secondary.TransitionUnit) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transition: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE projects SET current_phase = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ? AND current_phase = ?`,
		string(unit.ToPhase), unit.ProjectID, string(unit.FromPhase),
	)
	if err != nil {
		return fmt.Errorf("failed to update project phase: %w", err)
	}
	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		// The project moved under us; the guarded UPDATE keeps the
		// transition from applying against a phase the caller never saw.
		return fmt.Errorf("project %s is no longer in phase %s", unit.ProjectID, unit.FromPhase)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO phase_transitions (id, project_id, from_phase, to_phase, user_id, approval_comment) VALUES (?, ?, ?, ?, ?, ?)`,
		unit.ID, unit.ProjectID, string(unit.FromPhase), string(unit.ToPhase), unit.UserID, unit.ApprovalComment,
	)
	if err != nil {
		return fmt.Errorf("failed to record transition: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE documents SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE project_id = ? AND phase = ?`,
		models.DocumentStatusDraft, unit.ProjectID, string(unit.ToPhase),
	)
	if err != nil {
		return fmt.Errorf("failed to reset target document: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO audit_log (id, actor_id, action, resource, resource_id, details, success) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		unit.Audit.ID, unit.Audit.ActorID, unit.Audit.Action, unit.Audit.Resource, unit.Audit.ResourceID, unit.Audit.Details, unit.Audit.Success,
	)
	if err != nil {
		return fmt.Errorf("failed to write transition audit entry: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transition: %w", err)
	}
	return nil
}

// ListByProject retrieves a project's transitions, oldest first.
func (s *TransitionStore) ListByProject(ctx context.Context, projectID string) ([]*models.PhaseTransition, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, project_id, from_phase, to_phase, user_id, COALESCE(approval_comment, ''), created_at
		 FROM phase_transitions WHERE project_id = ? ORDER BY created_at ASC`,
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transitions: %w", err)
	}
	defer rows.Close()

	var transitions []*models.PhaseTransition
	for rows.Next() {
		var (
			fromPhase string
			toPhase   string
			createdAt time.Time
		)
		t := &models.PhaseTransition{}
		if err := rows.Scan(&t.ID, &t.ProjectID, &fromPhase, &toPhase, &t.UserID, &t.ApprovalComment, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan transition: %w", err)
		}
		t.FromPhase = models.Phase(fromPhase)
		t.ToPhase = models.Phase(toPhase)
		t.CreatedAt = createdAt
		transitions = append(transitions, t)
	}

	return transitions, rows.Err()
}

// Ensure TransitionStore implements the interface
var _ secondary.TransitionStore = (*TransitionStore)(nil)
