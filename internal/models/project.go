package models

import "time"

// Project represents a specification project.
// This is the domain type used within the models package.
// For persistence, use the repository interfaces in ports/secondary.
type Project struct {
	ID           string
	Name         string
	OwnerID      string
	CurrentPhase Phase
	Members      []TeamMember
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TeamMember represents a user's membership in a project.
type TeamMember struct {
	UserID string
	Role   string
	Status string
}

// Team member role constants
const (
	RoleLead   = "LEAD"
	RoleMember = "MEMBER"
)

// Team member status constants
const (
	MemberStatusActive   = "ACTIVE"
	MemberStatusInactive = "INACTIVE"
)
