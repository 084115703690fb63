package sqlite_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/specmentor/internal/adapters/sqlite"
	"github.com/example/specmentor/internal/models"
	"github.com/example/specmentor/internal/ports/secondary"
)

func TestProjectRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	err := repo.Create(ctx, &secondary.ProjectRecord{
		ID:      "PROJ-001",
		Name:    "Payment Service",
		OwnerID: "alice",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := repo.GetByID(ctx, "PROJ-001")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Payment Service" {
		t.Errorf("Name = %q, want %q", got.Name, "Payment Service")
	}
	if got.CurrentPhase != models.PhaseRequirements {
		t.Errorf("CurrentPhase = %s, want REQUIREMENTS", got.CurrentPhase)
	}
	if got.CreatedAt.IsZero() {
		t.Error("expected created_at to be populated")
	}
}

func TestProjectRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)

	_, err := repo.GetByID(context.Background(), "PROJ-404")
	if !errors.Is(err, secondary.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestProjectRepository_GetNextID(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "PROJ-001" {
		t.Errorf("first ID = %q, want PROJ-001", id)
	}

	seedProject(t, db, "PROJ-007", "")

	id, err = repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	if id != "PROJ-008" {
		t.Errorf("next ID = %q, want PROJ-008", id)
	}
}

func TestProjectRepository_Members(t *testing.T) {
	db := setupTestDB(t)
	repo := sqlite.NewProjectRepository(db)
	ctx := context.Background()
	seedProject(t, db, "", "")

	err := repo.AddMember(ctx, "PROJ-001", models.TeamMember{
		UserID: "bob",
		Role:   models.RoleLead,
		Status: models.MemberStatusActive,
	})
	if err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	t.Run("re-adding replaces role", func(t *testing.T) {
		err := repo.AddMember(ctx, "PROJ-001", models.TeamMember{
			UserID: "bob",
			Role:   models.RoleMember,
			Status: models.MemberStatusActive,
		})
		if err != nil {
			t.Fatalf("AddMember upsert failed: %v", err)
		}

		got, err := repo.GetByID(ctx, "PROJ-001")
		if err != nil {
			t.Fatalf("GetByID failed: %v", err)
		}
		if len(got.Members) != 1 {
			t.Fatalf("expected one membership row, got %d", len(got.Members))
		}
		if got.Members[0].Role != models.RoleMember {
			t.Errorf("Role = %q, want MEMBER", got.Members[0].Role)
		}
	})

	t.Run("set status", func(t *testing.T) {
		if err := repo.SetMemberStatus(ctx, "PROJ-001", "bob", models.MemberStatusInactive); err != nil {
			t.Fatalf("SetMemberStatus failed: %v", err)
		}
		got, _ := repo.GetByID(ctx, "PROJ-001")
		if got.Members[0].Status != models.MemberStatusInactive {
			t.Errorf("Status = %q, want INACTIVE", got.Members[0].Status)
		}
	})

	t.Run("set status of unknown member", func(t *testing.T) {
		err := repo.SetMemberStatus(ctx, "PROJ-001", "nobody", models.MemberStatusActive)
		if !errors.Is(err, secondary.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("remove member", func(t *testing.T) {
		if err := repo.RemoveMember(ctx, "PROJ-001", "bob"); err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		got, _ := repo.GetByID(ctx, "PROJ-001")
		if len(got.Members) != 0 {
			t.Errorf("expected no members, got %d", len(got.Members))
		}

		err := repo.RemoveMember(ctx, "PROJ-001", "bob")
		if !errors.Is(err, secondary.ErrNotFound) {
			t.Fatalf("expected ErrNotFound for second removal, got %v", err)
		}
	})
}
