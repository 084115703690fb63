package models

import "time"

// SpecificationDocument is the document for one (project, phase) pair.
type SpecificationDocument struct {
	ID        string
	ProjectID string
	Phase     Phase
	Content   string
	Version   int
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document status constants
const (
	DocumentStatusDraft    = "DRAFT"
	DocumentStatusReview   = "REVIEW"
	DocumentStatusApproved = "APPROVED"
)
