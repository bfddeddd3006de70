package usecase

import (
	"errors"
	"testing"
	"time"
)

func TestProfileServiceEnsure(t *testing.T) {
	f := newTestFixture(t)
	svc := NewProfileService(f.userRepo, testLogger())

	firstNow := time.Date(2026, 7, 1, 8, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return firstNow }

	if err := svc.Ensure(t.Context(), "user-1", "Rocketeer"); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}

	profile, exists, err := f.userRepo.GetByID(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if !exists {
		t.Fatal("expected profile to exist")
	}
	if profile.DisplayName != "Rocketeer" {
		t.Fatalf("unexpected display name: %q", profile.DisplayName)
	}
	if !profile.CreatedAt.Equal(firstNow) {
		t.Fatalf("unexpected created at: %v", profile.CreatedAt)
	}

	// Renaming keeps the original creation time.
	secondNow := firstNow.Add(time.Hour)
	svc.now = func() time.Time { return secondNow }
	if err := svc.Ensure(t.Context(), "user-1", "Rocketeer 2"); err != nil {
		t.Fatalf("rename failed: %v", err)
	}

	renamed, _, err := f.userRepo.GetByID(t.Context(), "user-1")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if renamed.DisplayName != "Rocketeer 2" {
		t.Fatalf("unexpected display name: %q", renamed.DisplayName)
	}
	if !renamed.CreatedAt.Equal(firstNow) {
		t.Fatalf("created at should not move on rename: %v", renamed.CreatedAt)
	}
	if !renamed.UpdatedAt.Equal(secondNow) {
		t.Fatalf("updated at should move on rename: %v", renamed.UpdatedAt)
	}
}

func TestProfileServiceEnsureDefaultsAndValidation(t *testing.T) {
	f := newTestFixture(t)
	svc := NewProfileService(f.userRepo, testLogger())

	if err := svc.Ensure(t.Context(), "user-2", "  "); err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	profile, _, err := f.userRepo.GetByID(t.Context(), "user-2")
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.DisplayName != "user-2" {
		t.Fatalf("expected user id fallback, got %q", profile.DisplayName)
	}

	if err := svc.Ensure(t.Context(), "  ", "Name"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for blank user id, got %v", err)
	}
}
