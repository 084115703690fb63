package phase

import (
	"strings"
	"testing"
	"time"

	"github.com/example/specmentor/internal/models"
)

// ============================================================================
// RequiredApprovals Tests
// ============================================================================

func TestRequiredApprovals(t *testing.T) {
	cases := []struct {
		phase models.Phase
		want  int
	}{
		{models.PhaseRequirements, 1},
		{models.PhaseDesign, 1},
		{models.PhaseTasks, 1},
		{models.PhaseImplementation, 0},
	}
	for _, c := range cases {
		if got := RequiredApprovals(c.phase); got != c.want {
			t.Errorf("RequiredApprovals(%s) = %d, want %d", c.phase, got, c.want)
		}
	}
}

// ============================================================================
// Permission Guard Tests
// ============================================================================

func TestCanInitiateTransition_Owner(t *testing.T) {
	res := CanInitiateTransition(PermissionContext{
		UserID:  "alice",
		OwnerID: "alice",
	})
	if !res.Allowed {
		t.Errorf("expected owner to be allowed, got reason %q", res.Reason)
	}
}

func TestCanInitiateTransition_ActiveLead(t *testing.T) {
	res := CanInitiateTransition(PermissionContext{
		UserID:  "bob",
		OwnerID: "alice",
		Members: []models.TeamMember{
			{UserID: "bob", Role: models.RoleLead, Status: models.MemberStatusActive},
		},
	})
	if !res.Allowed {
		t.Errorf("expected active lead to be allowed, got reason %q", res.Reason)
	}
}

func TestCanInitiateTransition_InactiveLead(t *testing.T) {
	res := CanInitiateTransition(PermissionContext{
		UserID:  "bob",
		OwnerID: "alice",
		Members: []models.TeamMember{
			{UserID: "bob", Role: models.RoleLead, Status: models.MemberStatusInactive},
		},
	})
	if res.Allowed {
		t.Error("expected inactive lead to be denied")
	}
	if res.Error() == nil {
		t.Error("expected Error() to be non-nil when denied")
	}
}

func TestCanInitiateTransition_ActiveMember(t *testing.T) {
	res := CanInitiateTransition(PermissionContext{
		UserID:  "carol",
		OwnerID: "alice",
		Members: []models.TeamMember{
			{UserID: "carol", Role: models.RoleMember, Status: models.MemberStatusActive},
		},
	})
	if res.Allowed {
		t.Error("expected non-lead member to be denied transition initiation")
	}
}

func TestCanInitiateTransition_Stranger(t *testing.T) {
	res := CanInitiateTransition(PermissionContext{
		UserID:  "mallory",
		OwnerID: "alice",
	})
	if res.Allowed {
		t.Error("expected non-member to be denied")
	}
}

func TestCanUpdateDocument_ActiveMember(t *testing.T) {
	res := CanUpdateDocument(PermissionContext{
		UserID:  "carol",
		OwnerID: "alice",
		Members: []models.TeamMember{
			{UserID: "carol", Role: models.RoleMember, Status: models.MemberStatusActive},
		},
	})
	if !res.Allowed {
		t.Errorf("expected active member to be allowed, got reason %q", res.Reason)
	}
}

func TestCanUpdateDocument_InactiveMember(t *testing.T) {
	res := CanUpdateDocument(PermissionContext{
		UserID:  "carol",
		OwnerID: "alice",
		Members: []models.TeamMember{
			{UserID: "carol", Role: models.RoleMember, Status: models.MemberStatusInactive},
		},
	})
	if res.Allowed {
		t.Error("expected inactive member to be denied document updates")
	}
}

// ============================================================================
// EvaluateTransition Tests
// ============================================================================

func readyContext() TransitionContext {
	return TransitionContext{
		CurrentPhase:     models.PhaseRequirements,
		TargetPhase:      models.PhaseDesign,
		HasPermission:    true,
		ValidationPassed: true,
		LiveApprovals:    1,
	}
}

func TestEvaluateTransition_AllGatesPass(t *testing.T) {
	dec := EvaluateTransition(readyContext())
	if !dec.Allowed {
		t.Fatalf("expected transition allowed, got reason %q", dec.Reason)
	}
	if dec.NoOp {
		t.Error("expected a real transition, not a no-op")
	}
	if dec.Cause != CauseNone {
		t.Errorf("expected no blocking cause, got %q", dec.Cause)
	}
}

func TestEvaluateTransition_SamePhaseNoOp(t *testing.T) {
	ctx := readyContext()
	ctx.TargetPhase = models.PhaseRequirements
	// A same-phase request must succeed without consulting any gate.
	ctx.HasPermission = false
	ctx.ValidationPassed = false
	ctx.LiveApprovals = 0

	dec := EvaluateTransition(ctx)
	if !dec.Allowed {
		t.Fatalf("expected same-phase request allowed, got reason %q", dec.Reason)
	}
	if !dec.NoOp {
		t.Error("expected same-phase request flagged as no-op")
	}
}

func TestEvaluateTransition_SkipAhead(t *testing.T) {
	ctx := readyContext()
	ctx.TargetPhase = models.PhaseTasks

	dec := EvaluateTransition(ctx)
	if dec.Allowed {
		t.Fatal("expected skip-ahead transition to be denied")
	}
	if dec.Cause != CauseSequence {
		t.Errorf("expected sequence cause, got %q", dec.Cause)
	}
	if !strings.Contains(dec.Reason, "sequential") {
		t.Errorf("expected sequential-order reason, got %q", dec.Reason)
	}
}

func TestEvaluateTransition_Backward(t *testing.T) {
	ctx := readyContext()
	ctx.CurrentPhase = models.PhaseDesign
	ctx.TargetPhase = models.PhaseRequirements

	dec := EvaluateTransition(ctx)
	if dec.Allowed {
		t.Fatal("expected backward transition to be denied")
	}
	if dec.Cause != CauseSequence {
		t.Errorf("expected sequence cause, got %q", dec.Cause)
	}
}

func TestEvaluateTransition_UnknownTarget(t *testing.T) {
	ctx := readyContext()
	ctx.TargetPhase = models.Phase("DEPLOYMENT")

	dec := EvaluateTransition(ctx)
	if dec.Allowed {
		t.Fatal("expected unknown target phase to be denied")
	}
	if dec.Cause != CauseSequence {
		t.Errorf("expected sequence cause, got %q", dec.Cause)
	}
}

func TestEvaluateTransition_NoPermission(t *testing.T) {
	ctx := readyContext()
	ctx.HasPermission = false

	dec := EvaluateTransition(ctx)
	if dec.Allowed {
		t.Fatal("expected denied without permission")
	}
	if dec.Cause != CausePermission {
		t.Errorf("expected permission cause, got %q", dec.Cause)
	}
}

func TestEvaluateTransition_ValidationFailed(t *testing.T) {
	ctx := readyContext()
	ctx.ValidationPassed = false
	ctx.ValidationErrors = []string{"missing required section: Introduction"}

	dec := EvaluateTransition(ctx)
	if dec.Allowed {
		t.Fatal("expected denied when validation failed")
	}
	if dec.Cause != CauseValidation {
		t.Errorf("expected validation cause, got %q", dec.Cause)
	}
	if !strings.Contains(dec.Reason, "missing required section: Introduction") {
		t.Errorf("expected first validation error in reason, got %q", dec.Reason)
	}
}

func TestEvaluateTransition_NoApprovals(t *testing.T) {
	ctx := readyContext()
	ctx.LiveApprovals = 0

	dec := EvaluateTransition(ctx)
	if dec.Allowed {
		t.Fatal("expected denied without approvals")
	}
	if dec.Cause != CauseQuorum {
		t.Errorf("expected quorum cause, got %q", dec.Cause)
	}
	if !strings.Contains(dec.Reason, "have 0, need 1") {
		t.Errorf("expected quorum counts in reason, got %q", dec.Reason)
	}
}

func TestEvaluateTransition_GateOrdering(t *testing.T) {
	// When both permission and validation would block, the permission
	// cause wins; sequence beats both.
	ctx := readyContext()
	ctx.HasPermission = false
	ctx.ValidationPassed = false
	ctx.LiveApprovals = 0

	if dec := EvaluateTransition(ctx); dec.Cause != CausePermission {
		t.Errorf("expected permission cause first, got %q", dec.Cause)
	}

	ctx.TargetPhase = models.PhaseImplementation
	if dec := EvaluateTransition(ctx); dec.Cause != CauseSequence {
		t.Errorf("expected sequence cause first, got %q", dec.Cause)
	}
}

// ============================================================================
// CountLive Tests
// ============================================================================

func TestCountLive(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	approvals := []models.Approval{
		{Approved: true, CreatedAt: now.Add(-1 * time.Hour)},
		{Approved: true, CreatedAt: now.Add(-23 * time.Hour)},
		{Approved: true, CreatedAt: now.Add(-25 * time.Hour)}, // expired
		{Approved: false, CreatedAt: now},                     // rejection
	}
	if got := CountLive(approvals, now); got != 2 {
		t.Errorf("CountLive = %d, want 2", got)
	}
}

func TestApprovalLive_ExactBoundary(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	a := models.Approval{Approved: true, CreatedAt: now.Add(-models.ApprovalLifetime)}
	if a.Live(now) {
		t.Error("approval exactly at lifetime boundary should no longer be live")
	}
}
