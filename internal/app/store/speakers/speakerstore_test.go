package speakerstore

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sciengasummits/confadmin/internal/domain/models"
	"github.com/sciengasummits/confadmin/internal/testutil"
)

func seedSpeaker(t *testing.T, store *Store, conference, name, category string, visible bool) models.Speaker {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sp, err := store.Create(ctx, models.Speaker{
		Conference: conference,
		Name:       name,
		Category:   category,
		Visible:    visible,
	})
	if err != nil {
		t.Fatalf("Create %s: %v", name, err)
	}
	return sp
}

func TestCreateAssignsOrderWithinCategory(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)

	a := seedSpeaker(t, store, models.ConferenceLiutex, "Alice", models.SpeakerCategoryKeynote, true)
	b := seedSpeaker(t, store, models.ConferenceLiutex, "Bob", models.SpeakerCategoryKeynote, true)
	c := seedSpeaker(t, store, models.ConferenceLiutex, "Carol", models.SpeakerCategoryInvited, true)

	if a.Order != 1 || b.Order != 2 {
		t.Fatalf("keynote orders = %d, %d; want 1, 2", a.Order, b.Order)
	}
	if c.Order != 1 {
		t.Fatalf("invited order = %d; want 1", c.Order)
	}
}

func TestListVsListVisible(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seedSpeaker(t, store, models.ConferenceLiutex, "Shown", models.SpeakerCategoryKeynote, true)
	seedSpeaker(t, store, models.ConferenceLiutex, "Hidden", models.SpeakerCategoryKeynote, false)
	seedSpeaker(t, store, models.ConferenceFluid, "Other", models.SpeakerCategoryKeynote, true)

	all, err := store.List(ctx, models.ConferenceLiutex)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("List returned %d speakers, want 2", len(all))
	}

	visible, err := store.ListVisible(ctx, models.ConferenceLiutex, "")
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if len(visible) != 1 || visible[0].Name != "Shown" {
		t.Fatalf("ListVisible = %+v", visible)
	}
}

func TestListVisibleCategoryFilter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	seedSpeaker(t, store, models.ConferenceLiutex, "Key", models.SpeakerCategoryKeynote, true)
	seedSpeaker(t, store, models.ConferenceLiutex, "Inv", models.SpeakerCategoryInvited, true)

	keynotes, err := store.ListVisible(ctx, models.ConferenceLiutex, models.SpeakerCategoryKeynote)
	if err != nil {
		t.Fatalf("ListVisible: %v", err)
	}
	if len(keynotes) != 1 || keynotes[0].Name != "Key" {
		t.Fatalf("keynotes = %+v", keynotes)
	}
}

func TestUpdateScopedToConference(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sp := seedSpeaker(t, store, models.ConferenceLiutex, "Alice", models.SpeakerCategoryKeynote, true)

	sp.Affiliation = "Example University"
	updated, err := store.Update(ctx, models.ConferenceLiutex, sp.ID, sp)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Affiliation != "Example University" {
		t.Fatalf("affiliation = %q", updated.Affiliation)
	}

	// Another conference's scope cannot reach this row.
	if _, err := store.Update(ctx, models.ConferenceFluid, sp.ID, sp); err != mongo.ErrNoDocuments {
		t.Fatalf("cross-conference update: err = %v, want ErrNoDocuments", err)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	sp := seedSpeaker(t, store, models.ConferenceLiutex, "Alice", models.SpeakerCategoryRegular, true)

	if err := store.Delete(ctx, models.ConferenceFluid, sp.ID); err != mongo.ErrNoDocuments {
		t.Fatalf("cross-conference delete: err = %v, want ErrNoDocuments", err)
	}
	if err := store.Delete(ctx, models.ConferenceLiutex, sp.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := store.Delete(ctx, models.ConferenceLiutex, sp.ID); err != mongo.ErrNoDocuments {
		t.Fatalf("second delete: err = %v, want ErrNoDocuments", err)
	}
}

func TestReorder(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	a := seedSpeaker(t, store, models.ConferenceLiutex, "A", models.SpeakerCategoryKeynote, true)
	b := seedSpeaker(t, store, models.ConferenceLiutex, "B", models.SpeakerCategoryKeynote, true)
	c := seedSpeaker(t, store, models.ConferenceLiutex, "C", models.SpeakerCategoryKeynote, true)

	if err := store.Reorder(ctx, models.ConferenceLiutex, []primitive.ObjectID{c.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("Reorder: %v", err)
	}

	got, err := store.List(ctx, models.ConferenceLiutex)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	names := []string{got[0].Name, got[1].Name, got[2].Name}
	if names[0] != "C" || names[1] != "A" || names[2] != "B" {
		t.Fatalf("order after Reorder = %v", names)
	}
}
