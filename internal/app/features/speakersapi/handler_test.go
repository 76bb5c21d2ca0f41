package speakersapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	speakerstore "github.com/sciengasummits/confadmin/internal/app/store/speakers"
	"github.com/sciengasummits/confadmin/internal/domain/models"
	"github.com/sciengasummits/confadmin/internal/testutil"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(speakerstore.New(db), zap.NewNop())
}

// serve exercises the handlers through a chi router without the auth
// middleware; auth behavior is covered in the auth package tests.
func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/speakers", h.ListHandler)
	r.Get("/api/speakers/all", h.ListAllHandler)
	r.Post("/api/speakers", h.CreateHandler)
	r.Put("/api/speakers/reorder", h.ReorderHandler)
	r.Put("/api/speakers/{id}", h.UpdateHandler)
	r.Delete("/api/speakers/{id}", h.DeleteHandler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createSpeaker(t *testing.T, h *Handler, conference, name, category string, visible bool) models.Speaker {
	t.Helper()
	req := testutil.NewRequest(t, http.MethodPost, "/api/speakers", conference, map[string]any{
		"name":     name,
		"category": category,
		"visible":  visible,
	})
	rec := serve(h, req)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	var sp models.Speaker
	testutil.DecodeJSON(t, rec, &sp)
	return sp
}

func TestCreateAndListAll(t *testing.T) {
	h := newHandler(t)

	createSpeaker(t, h, models.ConferenceLiutex, "Prof. Alice", models.SpeakerCategoryKeynote, true)
	createSpeaker(t, h, models.ConferenceLiutex, "Dr. Bob", models.SpeakerCategoryInvited, false)

	rec := serve(h, testutil.NewRequest(t, http.MethodGet, "/api/speakers/all", models.ConferenceLiutex, nil))
	testutil.AssertStatus(t, rec, http.StatusOK)

	var all []models.Speaker
	testutil.DecodeJSON(t, rec, &all)
	if len(all) != 2 {
		t.Fatalf("all = %d speakers, want 2", len(all))
	}
}

func TestPublicListFiltersHiddenAndCategory(t *testing.T) {
	h := newHandler(t)

	createSpeaker(t, h, models.ConferenceLiutex, "Shown Keynote", models.SpeakerCategoryKeynote, true)
	createSpeaker(t, h, models.ConferenceLiutex, "Hidden Keynote", models.SpeakerCategoryKeynote, false)
	createSpeaker(t, h, models.ConferenceLiutex, "Shown Invited", models.SpeakerCategoryInvited, true)

	rec := serve(h, testutil.NewRequest(t, http.MethodGet, "/api/speakers", models.ConferenceLiutex, nil))
	var visible []models.Speaker
	testutil.DecodeJSON(t, rec, &visible)
	if len(visible) != 2 {
		t.Fatalf("visible = %d speakers, want 2", len(visible))
	}

	rec = serve(h, testutil.NewRequest(t, http.MethodGet, "/api/speakers?category=keynote", models.ConferenceLiutex, nil))
	var keynotes []models.Speaker
	testutil.DecodeJSON(t, rec, &keynotes)
	if len(keynotes) != 1 || keynotes[0].Name != "Shown Keynote" {
		t.Fatalf("keynotes = %+v", keynotes)
	}

	rec = serve(h, testutil.NewRequest(t, http.MethodGet, "/api/speakers?category=plenary", models.ConferenceLiutex, nil))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestCreateValidation(t *testing.T) {
	h := newHandler(t)

	t.Run("missing name", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPost, "/api/speakers", models.ConferenceLiutex,
			map[string]any{"category": models.SpeakerCategoryKeynote})
		testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)
	})

	t.Run("bad category", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPost, "/api/speakers", models.ConferenceLiutex,
			map[string]any{"name": "X", "category": "headliner"})
		testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)
	})

	t.Run("bad image url", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodPost, "/api/speakers", models.ConferenceLiutex,
			map[string]any{"name": "X", "category": models.SpeakerCategoryKeynote, "imageUrl": "not a url"})
		testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)
	})
}

func TestUpdateAndDelete(t *testing.T) {
	h := newHandler(t)

	sp := createSpeaker(t, h, models.ConferenceLiutex, "Prof. Alice", models.SpeakerCategoryKeynote, true)

	req := testutil.NewRequest(t, http.MethodPut, "/api/speakers/"+sp.ID.Hex(), models.ConferenceLiutex,
		map[string]any{"name": "Prof. Alice Smith", "category": models.SpeakerCategoryKeynote, "visible": false})
	rec := serve(h, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var updated models.Speaker
	testutil.DecodeJSON(t, rec, &updated)
	if updated.Name != "Prof. Alice Smith" || updated.Visible {
		t.Fatalf("updated = %+v", updated)
	}

	// Update scoped to another conference misses.
	req = testutil.NewRequest(t, http.MethodPut, "/api/speakers/"+sp.ID.Hex(), models.ConferenceFluid,
		map[string]any{"name": "Hijack", "category": models.SpeakerCategoryKeynote})
	testutil.AssertStatus(t, serve(h, req), http.StatusNotFound)

	req = testutil.NewRequest(t, http.MethodDelete, "/api/speakers/"+sp.ID.Hex(), models.ConferenceLiutex, nil)
	testutil.AssertStatus(t, serve(h, req), http.StatusNoContent)

	req = testutil.NewRequest(t, http.MethodDelete, "/api/speakers/"+sp.ID.Hex(), models.ConferenceLiutex, nil)
	testutil.AssertStatus(t, serve(h, req), http.StatusNotFound)
}

func TestReorder(t *testing.T) {
	h := newHandler(t)

	a := createSpeaker(t, h, models.ConferenceLiutex, "A", models.SpeakerCategoryKeynote, true)
	b := createSpeaker(t, h, models.ConferenceLiutex, "B", models.SpeakerCategoryKeynote, true)
	c := createSpeaker(t, h, models.ConferenceLiutex, "C", models.SpeakerCategoryKeynote, true)

	req := testutil.NewRequest(t, http.MethodPut, "/api/speakers/reorder", models.ConferenceLiutex,
		map[string]any{"ids": []string{c.ID.Hex(), a.ID.Hex(), b.ID.Hex()}})
	rec := serve(h, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var after []models.Speaker
	testutil.DecodeJSON(t, rec, &after)
	if len(after) != 3 || after[0].Name != "C" || after[1].Name != "A" || after[2].Name != "B" {
		t.Fatalf("order after reorder = %+v", after)
	}
}

func TestReorderValidation(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewRequest(t, http.MethodPut, "/api/speakers/reorder", models.ConferenceLiutex,
		map[string]any{"ids": []string{}})
	testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)

	req = testutil.NewRequest(t, http.MethodPut, "/api/speakers/reorder", models.ConferenceLiutex,
		map[string]any{"ids": []string{"not-an-object-id"}})
	testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)
}
