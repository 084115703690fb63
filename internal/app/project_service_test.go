package app

import (
	"context"
	"testing"
	"time"

	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/ports/primary"
	"github.com/example/specmentor/internal/ports/secondary"
)

// ============================================================================
// Test Helper
// ============================================================================

func newTestProjectService() (*ProjectServiceImpl, *mockProjectRepo, *mockDocumentRepo, *mockAuditLogger) {
	projects := newMockProjectRepo()
	docs := newMockDocumentRepo()
	auditor := &mockAuditLogger{}
	service := NewProjectService(projects, docs, auditor)
	service.now = func() time.Time { return fixedNow }
	return service, projects, docs, auditor
}

// ============================================================================
// CreateProject Tests
// ============================================================================

func TestCreateProject_Success(t *testing.T) {
	service, _, docs, auditor := newTestProjectService()

	resp, err := service.CreateProject(context.Background(), primary.CreateProjectRequest{
		Name:    "Payment Service",
		OwnerID: "alice",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.ProjectID != "PROJ-001" {
		t.Errorf("expected project ID 'PROJ-001', got '%s'", resp.ProjectID)
	}
	if resp.Project.CurrentPhase != models.PhaseRequirements {
		t.Errorf("expected new project in REQUIREMENTS, got %s", resp.Project.CurrentPhase)
	}
	if len(auditor.byAction("project.create")) != 1 {
		t.Error("expected a project.create audit entry")
	}

	// One DRAFT v1 document per phase.
	for _, ph := range models.AllPhases() {
		doc, ok := docs.docs[docKey("PROJ-001", ph)]
		if !ok {
			t.Fatalf("expected a %s document", ph)
		}
		if doc.Version != 1 || doc.Status != models.DocumentStatusDraft || doc.Content != "" {
			t.Errorf("%s document: expected empty DRAFT v1, got v%d %s %q", ph, doc.Version, doc.Status, doc.Content)
		}
	}
}

func TestCreateProject_MissingName(t *testing.T) {
	service, _, _, _ := newTestProjectService()

	_, err := service.CreateProject(context.Background(), primary.CreateProjectRequest{OwnerID: "alice"})
	if err == nil {
		t.Fatal("expected error for missing name, got nil")
	}
}

func TestCreateProject_MissingOwner(t *testing.T) {
	service, _, _, _ := newTestProjectService()

	_, err := service.CreateProject(context.Background(), primary.CreateProjectRequest{Name: "Unowned"})
	if err == nil {
		t.Fatal("expected error for missing owner, got nil")
	}
}

// ============================================================================
// GetProject Tests
// ============================================================================

func TestGetProject_Found(t *testing.T) {
	service, projects, _, _ := newTestProjectService()
	projects.projects["PROJ-001"] = &secondary.ProjectRecord{
		ID:           "PROJ-001",
		Name:         "Payment Service",
		OwnerID:      "alice",
		CurrentPhase: models.PhaseDesign,
		Members: []models.TeamMember{
			{UserID: "bob", Role: models.RoleLead, Status: models.MemberStatusActive},
		},
	}

	p, err := service.GetProject(context.Background(), "PROJ-001")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if p.Name != "Payment Service" {
		t.Errorf("expected name 'Payment Service', got '%s'", p.Name)
	}
	if len(p.Members) != 1 || p.Members[0].UserID != "bob" {
		t.Errorf("expected bob on the team, got %+v", p.Members)
	}
}

func TestGetProject_NotFound(t *testing.T) {
	service, _, _, _ := newTestProjectService()

	_, err := service.GetProject(context.Background(), "PROJ-404")
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

// ============================================================================
// Membership Tests
// ============================================================================

func TestAddMember_Success(t *testing.T) {
	service, projects, _, _ := newTestProjectService()
	projects.projects["PROJ-001"] = &secondary.ProjectRecord{ID: "PROJ-001", OwnerID: "alice"}

	err := service.AddMember(context.Background(), primary.AddMemberRequest{
		ProjectID: "PROJ-001",
		UserID:    "bob",
		Role:      models.RoleLead,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	members := projects.projects["PROJ-001"].Members
	if len(members) != 1 {
		t.Fatalf("expected one member, got %d", len(members))
	}
	if members[0].Status != models.MemberStatusActive {
		t.Errorf("expected new member ACTIVE, got %s", members[0].Status)
	}
}

func TestAddMember_UnknownRole(t *testing.T) {
	service, projects, _, _ := newTestProjectService()
	projects.projects["PROJ-001"] = &secondary.ProjectRecord{ID: "PROJ-001", OwnerID: "alice"}

	err := service.AddMember(context.Background(), primary.AddMemberRequest{
		ProjectID: "PROJ-001",
		UserID:    "bob",
		Role:      "MANAGER",
	})
	if err == nil {
		t.Fatal("expected error for unknown role, got nil")
	}
}

func TestAddMember_ProjectNotFound(t *testing.T) {
	service, _, _, _ := newTestProjectService()

	err := service.AddMember(context.Background(), primary.AddMemberRequest{
		ProjectID: "PROJ-404",
		UserID:    "bob",
		Role:      models.RoleMember,
	})
	if !IsKind(err, KindNotFound) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestSetMemberStatus_Success(t *testing.T) {
	service, projects, _, _ := newTestProjectService()
	projects.projects["PROJ-001"] = &secondary.ProjectRecord{
		ID:      "PROJ-001",
		OwnerID: "alice",
		Members: []models.TeamMember{
			{UserID: "bob", Role: models.RoleLead, Status: models.MemberStatusActive},
		},
	}

	err := service.SetMemberStatus(context.Background(), "PROJ-001", "bob", models.MemberStatusInactive)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got := projects.projects["PROJ-001"].Members[0].Status; got != models.MemberStatusInactive {
		t.Errorf("expected INACTIVE, got %s", got)
	}
}

func TestSetMemberStatus_UnknownStatus(t *testing.T) {
	service, _, _, _ := newTestProjectService()

	err := service.SetMemberStatus(context.Background(), "PROJ-001", "bob", "PAUSED")
	if err == nil {
		t.Fatal("expected error for unknown status, got nil")
	}
}

func TestRemoveMember_Success(t *testing.T) {
	service, projects, _, _ := newTestProjectService()
	projects.projects["PROJ-001"] = &secondary.ProjectRecord{
		ID:      "PROJ-001",
		OwnerID: "alice",
		Members: []models.TeamMember{
			{UserID: "bob", Role: models.RoleMember, Status: models.MemberStatusActive},
		},
	}

	err := service.RemoveMember(context.Background(), "PROJ-001", "bob")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(projects.projects["PROJ-001"].Members) != 0 {
		t.Error("expected member removed")
	}
}

// ============================================================================
// Audit Tests
// ============================================================================

func TestListAuditEntries(t *testing.T) {
	service, _, _, auditor := newTestProjectService()
	auditor.entries = []secondary.AuditEntry{
		{Resource: "project", ResourceID: "PROJ-001", Action: "project.create", ActorID: "alice", Success: true, CreatedAt: fixedNow},
		{Resource: "project", ResourceID: "PROJ-002", Action: "project.create", ActorID: "bob", Success: true, CreatedAt: fixedNow},
	}

	entries, err := service.ListAuditEntries(context.Background(), "PROJ-001", 10)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one entry for PROJ-001, got %d", len(entries))
	}
	if entries[0].ActorID != "alice" {
		t.Errorf("expected actor alice, got %s", entries[0].ActorID)
	}
}
