// Package registrationsapi manages attendee registrations and their
// payment status.
//
// Endpoints (mounted at /api/registrations):
//   - POST /api/registrations             - register (public, from the conference site)
//   - GET  /api/registrations             - paginated list, ?status= filter (bearer token)
//   - GET  /api/registrations/counts      - per-status totals (bearer token)
//   - PUT  /api/registrations/{id}/status - status change (bearer token)
//   - DELETE /api/registrations/{id}      - delete (bearer token)
package registrationsapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	registrationstore "github.com/sciengasummits/confadmin/internal/app/store/registrations"
	"github.com/sciengasummits/confadmin/internal/app/store/storeutil"
	"github.com/sciengasummits/confadmin/internal/app/system/jsonutil"
	"github.com/sciengasummits/confadmin/internal/app/system/normalize"
	"github.com/sciengasummits/confadmin/internal/app/system/tenant"
	"github.com/sciengasummits/confadmin/internal/domain/models"
)

type registrationInput struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Email       string  `json:"email" validate:"required,email"`
	Affiliation string  `json:"affiliation" validate:"max=300"`
	Country     string  `json:"country" validate:"max=100"`
	Category    string  `json:"category" validate:"max=100"`
	Amount      float64 `json:"amount" validate:"min=0"`
	Currency    string  `json:"currency" validate:"omitempty,len=3"`
}

// Handler handles registration requests.
type Handler struct {
	store    *registrationstore.Store
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a new registrationsapi handler.
func NewHandler(store *registrationstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateHandler handles POST /api/registrations.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	var in registrationInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		jsonutil.BadRequest(w, "invalid registration: "+err.Error())
		return
	}

	reg, err := h.store.Create(r.Context(), models.Registration{
		Conference:  conference,
		Name:        in.Name,
		Email:       normalize.Email(in.Email),
		Affiliation: in.Affiliation,
		Country:     in.Country,
		Category:    in.Category,
		Amount:      in.Amount,
		Currency:    in.Currency,
	})
	if err != nil {
		h.logger.Error("failed to create registration", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to register")
		return
	}

	jsonutil.Created(w, reg)
}

// ListHandler handles GET /api/registrations.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	status := normalize.QueryParam(r.URL.Query().Get("status"))
	if status != "" && !models.IsValidRegistrationStatus(status) {
		jsonutil.BadRequest(w, "unknown registration status")
		return
	}

	limit, page := pagination(r)
	regs, total, err := h.store.List(r.Context(), conference, status, limit, page)
	if err != nil {
		h.logger.Error("failed to list registrations", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to list registrations")
		return
	}

	jsonutil.OK(w, map[string]any{
		"registrations": regs,
		"total":         total,
		"page":          page,
		"limit":         limit,
		"totalPages":    storeutil.TotalPages(total, limit),
	})
}

// CountsHandler handles GET /api/registrations/counts.
func (h *Handler) CountsHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	counts, err := h.store.CountByStatus(r.Context(), conference)
	if err != nil {
		h.logger.Error("failed to count registrations", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to count registrations")
		return
	}
	jsonutil.OK(w, counts)
}

// UpdateStatusHandler handles PUT /api/registrations/{id}/status.
func (h *Handler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid registration id")
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if !models.IsValidRegistrationStatus(in.Status) {
		jsonutil.BadRequest(w, "unknown registration status")
		return
	}

	reg, err := h.store.UpdateStatus(r.Context(), conference, id, in.Status)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "registration not found")
			return
		}
		h.logger.Error("failed to update registration status", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to update registration status")
		return
	}

	jsonutil.OK(w, reg)
}

// DeleteHandler handles DELETE /api/registrations/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid registration id")
		return
	}

	if err := h.store.Delete(r.Context(), conference, id); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "registration not found")
			return
		}
		h.logger.Error("failed to delete registration", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete registration")
		return
	}

	jsonutil.NoContent(w)
}

func pagination(r *http.Request) (limit, page int64) {
	limit, _ = strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)
	page, _ = strconv.ParseInt(r.URL.Query().Get("page"), 10, 64)
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	return limit, page
}
