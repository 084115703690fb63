// Package phase contains the pure business logic for phase gating.
// Guards are pure functions that evaluate preconditions without side effects.
package phase

import (
	"fmt"
	"time"

	"github.com/example/specmentor/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// RequiredApprovals returns the approval quorum that must be met before
// the given phase may be exited. IMPLEMENTATION is the terminal phase
// and requires none.
func RequiredApprovals(p models.Phase) int {
	if p == models.PhaseImplementation {
		return 0
	}
	return 1
}

// PermissionContext provides membership context for permission guards.
type PermissionContext struct {
	UserID  string
	OwnerID string
	Members []models.TeamMember
}

// CanInitiateTransition evaluates whether a user may request a phase transition.
// Rules:
// - The project owner always may
// - A team member may only with role LEAD and status ACTIVE
func CanInitiateTransition(ctx PermissionContext) GuardResult {
	if ctx.UserID == ctx.OwnerID {
		return GuardResult{Allowed: true}
	}
	for _, m := range ctx.Members {
		if m.UserID == ctx.UserID && m.Role == models.RoleLead && m.Status == models.MemberStatusActive {
			return GuardResult{Allowed: true}
		}
	}
	return GuardResult{
		Allowed: false,
		Reason:  "insufficient permissions: phase transitions require the project owner or an active lead",
	}
}

// CanUpdateDocument evaluates whether a user may edit phase documents.
// Rules:
// - The project owner always may
// - Any team member with status ACTIVE may, regardless of role
func CanUpdateDocument(ctx PermissionContext) GuardResult {
	if ctx.UserID == ctx.OwnerID {
		return GuardResult{Allowed: true}
	}
	for _, m := range ctx.Members {
		if m.UserID == ctx.UserID && m.Status == models.MemberStatusActive {
			return GuardResult{Allowed: true}
		}
	}
	return GuardResult{
		Allowed: false,
		Reason:  "insufficient permissions: document updates require the project owner or an active team member",
	}
}

// TransitionContext provides context for transition eligibility guards.
type TransitionContext struct {
	CurrentPhase  models.Phase
	TargetPhase   models.Phase
	HasPermission bool
	// ValidationPassed reports whether the current phase's completion
	// validation produced zero errors.
	ValidationPassed bool
	ValidationErrors []string
	LiveApprovals    int
}

// Cause identifies which condition blocked a transition.
type Cause string

// Blocking causes for a transition decision.
const (
	CauseNone       Cause = ""
	CauseSequence   Cause = "sequence"
	CausePermission Cause = "permission"
	CauseValidation Cause = "validation"
	CauseQuorum     Cause = "quorum"
)

// TransitionDecision is the outcome of a transition eligibility check.
type TransitionDecision struct {
	Allowed bool
	// NoOp is set when the target equals the current phase; the request
	// is trivially allowed and nothing should be mutated.
	NoOp   bool
	Cause  Cause
	Reason string
}

// EvaluateTransition evaluates whether a project may move to the target phase.
// Rules:
// - Target equal to current phase is an idempotent no-op success
// - Only the adjacent next phase is otherwise reachable
// - The requester must hold transition permission
// - The current phase's validation must pass
// - The current phase's live approval quorum must be met
func EvaluateTransition(ctx TransitionContext) TransitionDecision {
	if !ctx.TargetPhase.Valid() {
		return TransitionDecision{
			Allowed: false,
			Cause:   CauseSequence,
			Reason:  fmt.Sprintf("unknown phase %q", string(ctx.TargetPhase)),
		}
	}

	if ctx.TargetPhase == ctx.CurrentPhase {
		return TransitionDecision{Allowed: true, NoOp: true}
	}

	if ctx.TargetPhase.Index() != ctx.CurrentPhase.Index()+1 {
		return TransitionDecision{
			Allowed: false,
			Cause:   CauseSequence,
			Reason: fmt.Sprintf("phase transitions must be sequential: cannot move from %s to %s",
				ctx.CurrentPhase, ctx.TargetPhase),
		}
	}

	if !ctx.HasPermission {
		return TransitionDecision{
			Allowed: false,
			Cause:   CausePermission,
			Reason:  "insufficient permissions: phase transitions require the project owner or an active lead",
		}
	}

	if !ctx.ValidationPassed {
		reason := fmt.Sprintf("phase %s has not passed completion validation", ctx.CurrentPhase)
		if len(ctx.ValidationErrors) > 0 {
			reason = fmt.Sprintf("%s: %s", reason, ctx.ValidationErrors[0])
		}
		return TransitionDecision{Allowed: false, Cause: CauseValidation, Reason: reason}
	}

	if required := RequiredApprovals(ctx.CurrentPhase); ctx.LiveApprovals < required {
		return TransitionDecision{
			Allowed: false,
			Cause:   CauseQuorum,
			Reason: fmt.Sprintf("insufficient approvals for phase %s: have %d, need %d",
				ctx.CurrentPhase, ctx.LiveApprovals, required),
		}
	}

	return TransitionDecision{Allowed: true}
}

// CountLive returns how many of the given approvals still count toward
// quorum at the reference time.
func CountLive(approvals []models.Approval, now time.Time) int {
	count := 0
	for _, a := range approvals {
		if a.Live(now) {
			count++
		}
	}
	return count
}
