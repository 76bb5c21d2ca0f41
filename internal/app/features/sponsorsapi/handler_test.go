package sponsorsapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	sponsorstore "github.com/sciengasummits/confadmin/internal/app/store/sponsors"
	"github.com/sciengasummits/confadmin/internal/domain/models"
	"github.com/sciengasummits/confadmin/internal/testutil"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(sponsorstore.New(db), zap.NewNop())
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/sponsors", h.ListHandler)
	r.Get("/api/sponsors/all", h.ListAllHandler)
	r.Post("/api/sponsors", h.CreateHandler)
	r.Put("/api/sponsors/reorder", h.ReorderHandler)
	r.Put("/api/sponsors/{id}", h.UpdateHandler)
	r.Delete("/api/sponsors/{id}", h.DeleteHandler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createSponsor(t *testing.T, h *Handler, conference, name, sponsorType string, visible bool) models.Sponsor {
	t.Helper()
	req := testutil.NewRequest(t, http.MethodPost, "/api/sponsors", conference, map[string]any{
		"type":    sponsorType,
		"name":    name,
		"visible": visible,
	})
	rec := serve(h, req)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	var sp models.Sponsor
	testutil.DecodeJSON(t, rec, &sp)
	return sp
}

func TestTypeParameterSelectsList(t *testing.T) {
	h := newHandler(t)

	createSponsor(t, h, models.ConferenceLiutex, "Acme Corp", models.SponsorTypeSponsor, true)
	createSponsor(t, h, models.ConferenceLiutex, "Science Daily", models.SponsorTypeMedia, true)

	rec := serve(h, testutil.NewRequest(t, http.MethodGet, "/api/sponsors?type=media", models.ConferenceLiutex, nil))
	testutil.AssertStatus(t, rec, http.StatusOK)
	var media []models.Sponsor
	testutil.DecodeJSON(t, rec, &media)
	if len(media) != 1 || media[0].Name != "Science Daily" {
		t.Fatalf("media = %+v", media)
	}

	// Default type is sponsor.
	rec = serve(h, testutil.NewRequest(t, http.MethodGet, "/api/sponsors", models.ConferenceLiutex, nil))
	var sponsors []models.Sponsor
	testutil.DecodeJSON(t, rec, &sponsors)
	if len(sponsors) != 1 || sponsors[0].Name != "Acme Corp" {
		t.Fatalf("sponsors = %+v", sponsors)
	}

	rec = serve(h, testutil.NewRequest(t, http.MethodGet, "/api/sponsors?type=vendor", models.ConferenceLiutex, nil))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}

func TestPublicListHidesHidden(t *testing.T) {
	h := newHandler(t)

	createSponsor(t, h, models.ConferenceLiutex, "Shown", models.SponsorTypeSponsor, true)
	createSponsor(t, h, models.ConferenceLiutex, "Hidden", models.SponsorTypeSponsor, false)

	rec := serve(h, testutil.NewRequest(t, http.MethodGet, "/api/sponsors", models.ConferenceLiutex, nil))
	var visible []models.Sponsor
	testutil.DecodeJSON(t, rec, &visible)
	if len(visible) != 1 || visible[0].Name != "Shown" {
		t.Fatalf("visible = %+v", visible)
	}

	rec = serve(h, testutil.NewRequest(t, http.MethodGet, "/api/sponsors/all", models.ConferenceLiutex, nil))
	var all []models.Sponsor
	testutil.DecodeJSON(t, rec, &all)
	if len(all) != 2 {
		t.Fatalf("all = %d records, want 2", len(all))
	}
}

func TestCreateValidation(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewRequest(t, http.MethodPost, "/api/sponsors", models.ConferenceLiutex,
		map[string]any{"type": "vendor", "name": "X"})
	testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)

	req = testutil.NewRequest(t, http.MethodPost, "/api/sponsors", models.ConferenceLiutex,
		map[string]any{"type": models.SponsorTypeSponsor})
	testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)

	req = testutil.NewRequest(t, http.MethodPost, "/api/sponsors", models.ConferenceLiutex,
		map[string]any{"type": models.SponsorTypeSponsor, "name": "X", "website": "nope"})
	testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)
}

func TestUpdateAndDelete(t *testing.T) {
	h := newHandler(t)

	sp := createSponsor(t, h, models.ConferenceFluid, "Acme", models.SponsorTypeSponsor, true)

	req := testutil.NewRequest(t, http.MethodPut, "/api/sponsors/"+sp.ID.Hex(), models.ConferenceFluid,
		map[string]any{"type": models.SponsorTypeSponsor, "name": "Acme Industries", "website": "https://acme.example"})
	rec := serve(h, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var updated models.Sponsor
	testutil.DecodeJSON(t, rec, &updated)
	if updated.Name != "Acme Industries" || updated.Website != "https://acme.example" {
		t.Fatalf("updated = %+v", updated)
	}

	req = testutil.NewRequest(t, http.MethodDelete, "/api/sponsors/"+sp.ID.Hex(), models.ConferenceLiutex, nil)
	testutil.AssertStatus(t, serve(h, req), http.StatusNotFound)

	req = testutil.NewRequest(t, http.MethodDelete, "/api/sponsors/"+sp.ID.Hex(), models.ConferenceFluid, nil)
	testutil.AssertStatus(t, serve(h, req), http.StatusNoContent)
}

func TestReorder(t *testing.T) {
	h := newHandler(t)

	a := createSponsor(t, h, models.ConferenceLiutex, "A", models.SponsorTypeSponsor, true)
	b := createSponsor(t, h, models.ConferenceLiutex, "B", models.SponsorTypeSponsor, true)

	req := testutil.NewRequest(t, http.MethodPut, "/api/sponsors/reorder", models.ConferenceLiutex,
		map[string]any{"ids": []string{b.ID.Hex(), a.ID.Hex()}})
	testutil.AssertStatus(t, serve(h, req), http.StatusOK)

	rec := serve(h, testutil.NewRequest(t, http.MethodGet, "/api/sponsors/all", models.ConferenceLiutex, nil))
	var all []models.Sponsor
	testutil.DecodeJSON(t, rec, &all)
	if all[0].Name != "B" || all[1].Name != "A" {
		t.Fatalf("order = %+v", all)
	}
}
