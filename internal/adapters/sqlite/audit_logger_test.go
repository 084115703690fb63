package sqlite_test

import (
	"context"
	"testing"

	"github.com/example/specmentor/internal/adapters/sqlite"
	"github.com/example/specmentor/internal/ports/secondary"
)

func TestAuditLogger_LogAndList(t *testing.T) {
	db := setupTestDB(t)
	logger := sqlite.NewAuditLogger(db)
	ctx := context.Background()

	entries := []secondary.AuditEntry{
		{ID: "AUDIT-001", ActorID: "alice", Action: "project.create", Resource: "project", ResourceID: "PROJ-001", Success: true},
		{ID: "AUDIT-002", ActorID: "bob", Action: "workflow.approve", Resource: "project", ResourceID: "PROJ-001", Success: true},
		{ID: "AUDIT-003", ActorID: "alice", Action: "project.create", Resource: "project", ResourceID: "PROJ-002", Success: true},
	}
	for _, e := range entries {
		if err := logger.Log(ctx, e); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	got, err := logger.ListByResource(ctx, "project", "PROJ-001", 10)
	if err != nil {
		t.Fatalf("ListByResource failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries for PROJ-001, got %d", len(got))
	}
	for _, e := range got {
		if e.ResourceID != "PROJ-001" {
			t.Errorf("unexpected resource ID %q", e.ResourceID)
		}
	}
}

func TestAuditLogger_FailureEntries(t *testing.T) {
	db := setupTestDB(t)
	logger := sqlite.NewAuditLogger(db)
	ctx := context.Background()

	err := logger.Log(ctx, secondary.AuditEntry{
		ID:         "AUDIT-001",
		ActorID:    "alice",
		Action:     "ai_review.trigger",
		Resource:   "document",
		ResourceID: "DOC-001",
		Details:    `{"error":"ai gateway timeout: slow"}`,
		Success:    false,
	})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	got, err := logger.ListByResource(ctx, "document", "DOC-001", 1)
	if err != nil {
		t.Fatalf("ListByResource failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected one entry, got %d", len(got))
	}
	if got[0].Success {
		t.Error("expected failure entry to round-trip Success = false")
	}
}

func TestAuditLogger_LimitDefaults(t *testing.T) {
	db := setupTestDB(t)
	logger := sqlite.NewAuditLogger(db)
	ctx := context.Background()

	// A non-positive limit falls back to the default instead of
	// returning nothing.
	_ = logger.Log(ctx, secondary.AuditEntry{
		ID: "AUDIT-001", Action: "project.create", Resource: "project", ResourceID: "PROJ-001", Success: true,
	})
	got, err := logger.ListByResource(ctx, "project", "PROJ-001", 0)
	if err != nil {
		t.Fatalf("ListByResource failed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected default limit to return the entry, got %d", len(got))
	}
}
