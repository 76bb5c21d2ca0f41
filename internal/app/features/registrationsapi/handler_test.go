package registrationsapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	registrationstore "github.com/sciengasummits/confadmin/internal/app/store/registrations"
	"github.com/sciengasummits/confadmin/internal/domain/models"
	"github.com/sciengasummits/confadmin/internal/testutil"
)

func newHandler(t *testing.T) *Handler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewHandler(registrationstore.New(db), zap.NewNop())
}

func serve(h *Handler, req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Post("/api/registrations", h.CreateHandler)
	r.Get("/api/registrations", h.ListHandler)
	r.Get("/api/registrations/counts", h.CountsHandler)
	r.Put("/api/registrations/{id}/status", h.UpdateStatusHandler)
	r.Delete("/api/registrations/{id}", h.DeleteHandler)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, h *Handler, conference, name string) models.Registration {
	t.Helper()
	req := testutil.NewRequest(t, http.MethodPost, "/api/registrations", conference, map[string]any{
		"name":     name,
		"email":    "attendee@example.edu",
		"category": "student",
		"amount":   150.0,
		"currency": "USD",
	})
	rec := serve(h, req)
	testutil.AssertStatus(t, rec, http.StatusCreated)

	var reg models.Registration
	testutil.DecodeJSON(t, rec, &reg)
	return reg
}

func TestRegisterStartsPending(t *testing.T) {
	h := newHandler(t)

	reg := register(t, h, models.ConferenceFoodAgri, "Jamie Attendee")
	if reg.Status != models.RegistrationStatusPending {
		t.Fatalf("status = %q, want Pending", reg.Status)
	}
	if reg.Conference != models.ConferenceFoodAgri {
		t.Fatalf("conference = %q", reg.Conference)
	}
}

func TestRegisterValidation(t *testing.T) {
	h := newHandler(t)

	req := testutil.NewRequest(t, http.MethodPost, "/api/registrations", models.ConferenceLiutex,
		map[string]any{"email": "attendee@example.edu"})
	testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)

	req = testutil.NewRequest(t, http.MethodPost, "/api/registrations", models.ConferenceLiutex,
		map[string]any{"name": "X", "email": "nope", "currency": "USD"})
	testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)

	req = testutil.NewRequest(t, http.MethodPost, "/api/registrations", models.ConferenceLiutex,
		map[string]any{"name": "X", "email": "a@b.co", "currency": "DOLLARS"})
	testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)
}

func TestStatusUpdateTaxonomy(t *testing.T) {
	h := newHandler(t)

	reg := register(t, h, models.ConferenceLiutex, "Jamie")

	req := testutil.NewRequest(t, http.MethodPut, "/api/registrations/"+reg.ID.Hex()+"/status",
		models.ConferenceLiutex, map[string]any{"status": models.RegistrationStatusPaid})
	rec := serve(h, req)
	testutil.AssertStatus(t, rec, http.StatusOK)

	var updated models.Registration
	testutil.DecodeJSON(t, rec, &updated)
	if updated.Status != models.RegistrationStatusPaid {
		t.Fatalf("status = %q", updated.Status)
	}

	// Statuses outside the taxonomy are rejected.
	req = testutil.NewRequest(t, http.MethodPut, "/api/registrations/"+reg.ID.Hex()+"/status",
		models.ConferenceLiutex, map[string]any{"status": "Refunded"})
	testutil.AssertStatus(t, serve(h, req), http.StatusBadRequest)
}

func TestListAndCounts(t *testing.T) {
	h := newHandler(t)

	register(t, h, models.ConferenceLiutex, "A")
	register(t, h, models.ConferenceLiutex, "B")
	register(t, h, models.ConferenceFluid, "Other")

	rec := serve(h, testutil.NewRequest(t, http.MethodGet, "/api/registrations",
		models.ConferenceLiutex, nil))
	var body struct {
		Registrations []models.Registration `json:"registrations"`
		Total         int64                 `json:"total"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if body.Total != 2 {
		t.Fatalf("total = %d, want 2", body.Total)
	}

	rec = serve(h, testutil.NewRequest(t, http.MethodGet, "/api/registrations/counts",
		models.ConferenceLiutex, nil))
	var counts map[string]int64
	testutil.DecodeJSON(t, rec, &counts)
	if counts[models.RegistrationStatusPending] != 2 {
		t.Fatalf("counts = %v", counts)
	}
}

func TestDeleteScoped(t *testing.T) {
	h := newHandler(t)

	reg := register(t, h, models.ConferenceLiutex, "Jamie")

	req := testutil.NewRequest(t, http.MethodDelete, "/api/registrations/"+reg.ID.Hex(),
		models.ConferenceFluid, nil)
	testutil.AssertStatus(t, serve(h, req), http.StatusNotFound)

	req = testutil.NewRequest(t, http.MethodDelete, "/api/registrations/"+reg.ID.Hex(),
		models.ConferenceLiutex, nil)
	testutil.AssertStatus(t, serve(h, req), http.StatusNoContent)
}
