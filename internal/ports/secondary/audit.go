package secondary

import (
	"context"
	"time"
)

// AuditLogger defines the secondary port for append-only audit entries.
// Writes are best-effort: a failed audit write must never abort the
// primary operation it describes.
type AuditLogger interface {
	// Log appends one audit entry.
	Log(ctx context.Context, entry AuditEntry) error

	// ListByResource retrieves entries for a resource, newest first.
	ListByResource(ctx context.Context, resource, resourceID string, limit int) ([]*AuditEntry, error)
}

// AuditEntry is one append-only audit record.
type AuditEntry struct {
	ID         string
	ActorID    string
	Action     string
	Resource   string
	ResourceID string
	// Details is free-form JSON describing the operation.
	Details   string
	Success   bool
	CreatedAt time.Time
}
