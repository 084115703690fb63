package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/specmentor/internal/ports/secondary"
)

// AuditLogger implements secondary.AuditLogger with SQLite.
type AuditLogger struct {
	db *sql.DB
}

// NewAuditLogger creates a new SQLite audit logger.
func NewAuditLogger(db *sql.DB) *AuditLogger {
	return &AuditLogger{db: db}
}

// Log appends one audit entry.
func (l *AuditLogger) Log(ctx context.Context, entry secondary.AuditEntry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, actor_id, action, resource, resource_id, details, success) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.ActorID, entry.Action, entry.Resource, entry.ResourceID, entry.Details, entry.Success,
	)
	if err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}
	return nil
}

// ListByResource retrieves entries for a resource, newest first.
func (l *AuditLogger) ListByResource(ctx context.Context, resource, resourceID string, limit int) ([]*secondary.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, COALESCE(actor_id, ''), action, resource, resource_id, COALESCE(details, ''), success, created_at
		 FROM audit_log WHERE resource = ? AND resource_id = ? ORDER BY created_at DESC LIMIT ?`,
		resource, resourceID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*secondary.AuditEntry
	for rows.Next() {
		var createdAt time.Time
		entry := &secondary.AuditEntry{}
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entry.Resource, &entry.ResourceID, &entry.Details, &entry.Success, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}
		entry.CreatedAt = createdAt
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// Ensure AuditLogger implements the interface
var _ secondary.AuditLogger = (*AuditLogger)(nil)
