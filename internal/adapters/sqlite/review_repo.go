package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/specmentor/internal/ports/secondary"
)

// ReviewRepository implements secondary.ReviewRepository with SQLite.
type ReviewRepository struct {
	db *sql.DB
}

// NewReviewRepository creates a new SQLite AI review repository.
func NewReviewRepository(db *sql.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create persists a completed AI review for a document.
func (r *ReviewRepository) Create(ctx context.Context, review *secondary.ReviewRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO ai_reviews (id, document_id, overall_score, payload) VALUES (?, ?, ?, ?)`,
		review.ID, review.DocumentID, review.OverallScore, review.Payload,
	)
	if err != nil {
		return fmt.Errorf("failed to create ai review: %w", err)
	}
	return nil
}

// ListByDocument retrieves a document's reviews, newest first.
func (r *ReviewRepository) ListByDocument(ctx context.Context, documentID string) ([]*secondary.ReviewRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, document_id, overall_score, payload, created_at
		 FROM ai_reviews WHERE document_id = ? ORDER BY created_at DESC`,
		documentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list ai reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*secondary.ReviewRecord
	for rows.Next() {
		var createdAt time.Time
		record := &secondary.ReviewRecord{}
		if err := rows.Scan(&record.ID, &record.DocumentID, &record.OverallScore, &record.Payload, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan ai review: %w", err)
		}
		record.CreatedAt = createdAt
		reviews = append(reviews, record)
	}

	return reviews, rows.Err()
}

// Ensure ReviewRepository implements the interface
var _ secondary.ReviewRepository = (*ReviewRepository)(nil)
