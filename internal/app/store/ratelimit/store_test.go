package ratelimit

import (
	"testing"
	"time"

	"github.com/sciengasummits/confadmin/internal/testutil"
)

func TestAllowedWithNoHistory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	allowed, remaining, lockedUntil := store.CheckAllowed(ctx, "admin")
	if !allowed || remaining != 5 || lockedUntil != nil {
		t.Fatalf("CheckAllowed = %v, %d, %v", allowed, remaining, lockedUntil)
	}
}

func TestLockoutAfterMaxFailures(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 3, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	var lockedOut bool
	for i := 0; i < 3; i++ {
		lockedOut, _ = store.RecordFailure(ctx, "admin")
	}
	if !lockedOut {
		t.Fatal("expected third failure to trigger lockout")
	}

	allowed, remaining, lockedUntil := store.CheckAllowed(ctx, "admin")
	if allowed || remaining != -1 || lockedUntil == nil {
		t.Fatalf("CheckAllowed after lockout = %v, %d, %v", allowed, remaining, lockedUntil)
	}
	if !lockedUntil.After(time.Now()) {
		t.Fatalf("lockedUntil %v is not in the future", lockedUntil)
	}
}

func TestRemainingCountsDown(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 5, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.RecordFailure(ctx, "admin")
	store.RecordFailure(ctx, "admin")

	allowed, remaining, _ := store.CheckAllowed(ctx, "admin")
	if !allowed || remaining != 3 {
		t.Fatalf("CheckAllowed = %v, %d; want true, 3", allowed, remaining)
	}
}

func TestClearOnSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 3, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.RecordFailure(ctx, "admin")
	store.RecordFailure(ctx, "admin")

	if err := store.ClearOnSuccess(ctx, "admin"); err != nil {
		t.Fatalf("ClearOnSuccess: %v", err)
	}

	allowed, remaining, _ := store.CheckAllowed(ctx, "admin")
	if !allowed || remaining != 3 {
		t.Fatalf("CheckAllowed after clear = %v, %d; want true, 3", allowed, remaining)
	}
}

func TestUsernamesAreIndependent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 2, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.RecordFailure(ctx, "alice")
	store.RecordFailure(ctx, "alice")

	if allowed, _, _ := store.CheckAllowed(ctx, "alice"); allowed {
		t.Fatal("expected alice locked out")
	}
	if allowed, _, _ := store.CheckAllowed(ctx, "bob"); !allowed {
		t.Fatal("expected bob unaffected")
	}
}

func TestUsernameNormalized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 2, 15*time.Minute, 30*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	store.RecordFailure(ctx, "Admin")
	store.RecordFailure(ctx, "  ADMIN  ")

	if allowed, _, _ := store.CheckAllowed(ctx, "admin"); allowed {
		t.Fatal("expected normalized username to share one counter")
	}
}
