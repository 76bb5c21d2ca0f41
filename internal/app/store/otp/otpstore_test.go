package otpstore

import (
	"testing"
	"time"

	"github.com/sciengasummits/confadmin/internal/testutil"
)

func TestCreateAndVerify(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 10*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	code, err := store.Create(ctx, "admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(code) != 6 {
		t.Fatalf("code = %q, want 6 digits", code)
	}

	if err := store.Verify(ctx, "admin", code); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestCodeIsSingleUse(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 10*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	code, err := store.Create(ctx, "admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Verify(ctx, "admin", code); err != nil {
		t.Fatalf("first Verify: %v", err)
	}
	if err := store.Verify(ctx, "admin", code); err != ErrInvalidCode {
		t.Fatalf("second Verify: err = %v, want ErrInvalidCode", err)
	}
}

func TestWrongCodeRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 10*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.Create(ctx, "admin"); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Verify(ctx, "admin", "000000"); err != ErrInvalidCode {
		t.Fatalf("Verify wrong code: err = %v, want ErrInvalidCode", err)
	}
	if err := store.Verify(ctx, "nobody", "123456"); err != ErrInvalidCode {
		t.Fatalf("Verify unknown user: err = %v, want ErrInvalidCode", err)
	}
}

func TestNewCodeSupersedesOld(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 10*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	first, err := store.Create(ctx, "admin")
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := store.Create(ctx, "admin")
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	if err := store.Verify(ctx, "admin", first); err != ErrInvalidCode {
		t.Fatalf("superseded code: err = %v, want ErrInvalidCode", err)
	}
	if err := store.Verify(ctx, "admin", second); err != nil {
		t.Fatalf("Verify second: %v", err)
	}
}

func TestExpiredCodeRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, -time.Minute) // already expired on creation
	ctx, cancel := testutil.TestContext()
	defer cancel()

	code, err := store.Create(ctx, "admin")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Verify(ctx, "admin", code); err != ErrInvalidCode {
		t.Fatalf("expired code: err = %v, want ErrInvalidCode", err)
	}
}

func TestUsernameNormalized(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db, 10*time.Minute)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	code, err := store.Create(ctx, "  Admin  ")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := store.Verify(ctx, "admin", code); err != nil {
		t.Fatalf("Verify with normalized username: %v", err)
	}
}

func TestDeleteExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	expired := New(db, -time.Minute)
	if _, err := expired.Create(ctx, "stale"); err != nil {
		t.Fatalf("Create stale: %v", err)
	}

	live := New(db, 10*time.Minute)
	liveCode, err := live.Create(ctx, "fresh")
	if err != nil {
		t.Fatalf("Create fresh: %v", err)
	}

	deleted, err := live.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if deleted == 0 {
		t.Fatal("expected at least one stale challenge deleted")
	}
	if err := live.Verify(ctx, "fresh", liveCode); err != nil {
		t.Fatalf("live code should survive cleanup: %v", err)
	}
}
