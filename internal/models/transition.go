package models

import "time"

// PhaseTransition is an immutable record of a phase change.
// Records are append-only and ordered by timestamp ascending.
type PhaseTransition struct {
	ID              string
	ProjectID       string
	FromPhase       Phase
	ToPhase         Phase
	UserID          string
	ApprovalComment string
	CreatedAt       time.Time
}
