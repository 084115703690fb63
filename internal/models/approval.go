package models

import "time"

// ApprovalLifetime is how long an approval counts toward a phase's quorum.
// Older approvals still exist for audit but are excluded from counting.
const ApprovalLifetime = 24 * time.Hour

// Approval is one user's sign-off on a phase. At most one live record
// exists per (project, phase, user); a later approval overwrites it.
type Approval struct {
	ID        string
	ProjectID string
	Phase     Phase
	UserID    string
	Comment   string
	Approved  bool
	CreatedAt time.Time
}

// Live reports whether the approval still counts toward quorum at now.
func (a Approval) Live(now time.Time) bool {
	return a.Approved && now.Sub(a.CreatedAt) < ApprovalLifetime
}
