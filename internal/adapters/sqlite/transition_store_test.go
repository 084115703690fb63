package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/specmentor/internal/adapters/sqlite"
	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/ports/secondary"
)

func transitionUnit(from, to models.Phase) *secondary.TransitionUnit {
	return &secondary.TransitionUnit{
		ID:              "TRAN-001",
		ProjectID:       "PROJ-001",
		FromPhase:       from,
		ToPhase:         to,
		UserID:          "alice",
		ApprovalComment: "ready to design",
		Audit: secondary.AuditEntry{
			ID:         "AUDIT-001",
			ActorID:    "alice",
			Action:     "workflow.transition",
			Resource:   "project",
			ResourceID: "PROJ-001",
			Details:    `{"toPhase":"DESIGN"}`,
			Success:    true,
		},
	}
}

func TestTransitionStore_Apply(t *testing.T) {
	db := setupTestDB(t)
	store := sqlite.NewTransitionStore(db)
	ctx := context.Background()
	seedProject(t, db, "", "REQUIREMENTS")
	seedDocument(t, db, "DOC-DESIGN", "", "DESIGN")
	db.Exec("UPDATE documents SET status = 'APPROVED' WHERE id = 'DOC-DESIGN'")

	err := store.Apply(ctx, transitionUnit(models.PhaseRequirements, models.PhaseDesign))
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// All four effects of the unit must have landed.
	var phase string
	db.QueryRow("SELECT current_phase FROM projects WHERE id = 'PROJ-001'").Scan(&phase)
	if phase != "DESIGN" {
		t.Errorf("current_phase = %q, want DESIGN", phase)
	}

	var transitions int
	db.QueryRow("SELECT COUNT(*) FROM phase_transitions WHERE project_id = 'PROJ-001'").Scan(&transitions)
	if transitions != 1 {
		t.Errorf("expected one transition record, got %d", transitions)
	}

	var status string
	db.QueryRow("SELECT status FROM documents WHERE id = 'DOC-DESIGN'").Scan(&status)
	if status != "DRAFT" {
		t.Errorf("entered document status = %q, want DRAFT", status)
	}

	var audits int
	db.QueryRow("SELECT COUNT(*) FROM audit_log WHERE action = 'workflow.transition'").Scan(&audits)
	if audits != 1 {
		t.Errorf("expected one audit entry, got %d", audits)
	}
}

func TestTransitionStore_Apply_StalePhase(t *testing.T) {
	db := setupTestDB(t)
	store := sqlite.NewTransitionStore(db)
	ctx := context.Background()
	// Project already moved on; the unit was built against REQUIREMENTS.
	seedProject(t, db, "", "DESIGN")

	err := store.Apply(ctx, transitionUnit(models.PhaseRequirements, models.PhaseDesign))
	if err == nil {
		t.Fatal("expected stale-phase transition to fail")
	}

	// Nothing from the unit may have landed.
	var transitions, audits int
	db.QueryRow("SELECT COUNT(*) FROM phase_transitions").Scan(&transitions)
	db.QueryRow("SELECT COUNT(*) FROM audit_log").Scan(&audits)
	if transitions != 0 || audits != 0 {
		t.Errorf("expected full rollback, got %d transitions and %d audit entries", transitions, audits)
	}
}

func TestTransitionStore_ListByProject(t *testing.T) {
	db := setupTestDB(t)
	store := sqlite.NewTransitionStore(db)
	ctx := context.Background()
	seedProject(t, db, "", "REQUIREMENTS")

	db.Exec(`INSERT INTO phase_transitions (id, project_id, from_phase, to_phase, user_id, created_at)
		 VALUES ('TRAN-001', 'PROJ-001', 'REQUIREMENTS', 'DESIGN', 'alice', '2026-08-01 10:00:00')`)
	db.Exec(`INSERT INTO phase_transitions (id, project_id, from_phase, to_phase, user_id, created_at)
		 VALUES ('TRAN-002', 'PROJ-001', 'DESIGN', 'TASKS', 'alice', '2026-08-02 10:00:00')`)

	transitions, err := store.ListByProject(ctx, "PROJ-001")
	if err != nil {
		t.Fatalf("ListByProject failed: %v", err)
	}
	if len(transitions) != 2 {
		t.Fatalf("expected 2 transitions, got %d", len(transitions))
	}
	if transitions[0].ToPhase != models.PhaseDesign {
		t.Errorf("expected oldest first, got first entry to %s", transitions[0].ToPhase)
	}
	if transitions[1].FromPhase != models.PhaseDesign || transitions[1].ToPhase != models.PhaseTasks {
		t.Errorf("unexpected second entry: %s -> %s", transitions[1].FromPhase, transitions[1].ToPhase)
	}
}
