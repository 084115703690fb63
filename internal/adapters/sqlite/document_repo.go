package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/ports/secondary"
)

// DocumentRepository implements secondary.DocumentRepository with SQLite.
type DocumentRepository struct {
	db *sql.DB
}

// NewDocumentRepository creates a new SQLite document repository.
func NewDocumentRepository(db *sql.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// Create persists a new document.
func (r *DocumentRepository) Create(ctx context.Context, doc *secondary.DocumentRecord) error {
	version := doc.Version
	if version == 0 {
		version = 1
	}
	status := doc.Status
	if status == "" {
		status = models.DocumentStatusDraft
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, project_id, phase, content, version, status) VALUES (?, ?, ?, ?, ?, ?)`,
		doc.ID, doc.ProjectID, string(doc.Phase), doc.Content, version, status,
	)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	return nil
}

// GetByProjectPhase retrieves the document for a (project, phase) pair.
func (r *DocumentRepository) GetByProjectPhase(ctx context.Context, projectID string, phase models.Phase) (*secondary.DocumentRecord, error) {
	var (
		phaseStr  string
		createdAt time.Time
		updatedAt time.Time
	)

	record := &secondary.DocumentRecord{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, project_id, phase, content, version, status, created_at, updated_at
		 FROM documents WHERE project_id = ? AND phase = ?`,
		projectID, string(phase),
	).Scan(&record.ID, &record.ProjectID, &phaseStr, &record.Content, &record.Version, &record.Status, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("document %s/%s: %w", projectID, phase, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	record.Phase = models.Phase(phaseStr)
	record.CreatedAt = createdAt
	record.UpdatedAt = updatedAt

	return record, nil
}

// Update overwrites content, version, status and the updated_at timestamp.
func (r *DocumentRepository) Update(ctx context.Context, doc *secondary.DocumentRecord) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE documents SET content = ?, version = ?, status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		doc.Content, doc.Version, doc.Status, doc.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update document: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fmt.Errorf("document %s: %w", doc.ID, secondary.ErrNotFound)
	}
	return nil
}

// SaveVersion durably appends a snapshot of a document's prior state.
func (r *DocumentRepository) SaveVersion(ctx context.Context, snapshot *secondary.DocumentVersionRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO document_versions (id, document_id, version, content, created_by) VALUES (?, ?, ?, ?, ?)`,
		snapshot.ID, snapshot.DocumentID, snapshot.Version, snapshot.Content, snapshot.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save document version: %w", err)
	}
	return nil
}

// ListVersions retrieves a document's snapshots, newest first.
func (r *DocumentRepository) ListVersions(ctx context.Context, documentID string) ([]*secondary.DocumentVersionRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, document_id, version, content, created_by, created_at
		 FROM document_versions WHERE document_id = ? ORDER BY version DESC`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list document versions: %w", err)
	}
	defer rows.Close()

	var versions []*secondary.DocumentVersionRecord
	for rows.Next() {
		var createdAt time.Time
		record := &secondary.DocumentVersionRecord{}
		if err := rows.Scan(&record.ID, &record.DocumentID, &record.Version, &record.Content, &record.CreatedBy, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan document version: %w", err)
		}
		record.CreatedAt = createdAt
		versions = append(versions, record)
	}

	return versions, rows.Err()
}

// Ensure DocumentRepository implements the interface
var _ secondary.DocumentRepository = (*DocumentRepository)(nil)
