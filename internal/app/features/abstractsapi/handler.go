// Package abstractsapi manages submitted paper abstracts and their
// review lifecycle.
//
// Endpoints (mounted at /api/abstracts):
//   - POST /api/abstracts             - submit (public, from the conference site)
//   - GET  /api/abstracts             - paginated list, ?status= filter (bearer token)
//   - GET  /api/abstracts/counts      - per-status totals (bearer token)
//   - PUT  /api/abstracts/{id}/status - review decision (bearer token)
//   - DELETE /api/abstracts/{id}      - delete (bearer token)
package abstractsapi

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	abstractstore "github.com/sciengasummits/confadmin/internal/app/store/abstracts"
	"github.com/sciengasummits/confadmin/internal/app/store/storeutil"
	"github.com/sciengasummits/confadmin/internal/app/system/jsonutil"
	"github.com/sciengasummits/confadmin/internal/app/system/normalize"
	"github.com/sciengasummits/confadmin/internal/app/system/tenant"
	"github.com/sciengasummits/confadmin/internal/domain/models"
)

type abstractInput struct {
	Title   string `json:"title" validate:"required,max=500"`
	Authors string `json:"authors" validate:"required,max=1000"`
	Email   string `json:"email" validate:"required,email"`
	Topic   string `json:"topic" validate:"max=300"`
	FileURL string `json:"fileUrl" validate:"omitempty,url"`
}

// Handler handles abstract submission and review requests.
type Handler struct {
	store    *abstractstore.Store
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a new abstractsapi handler.
func NewHandler(store *abstractstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// CreateHandler handles POST /api/abstracts.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	var in abstractInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		jsonutil.BadRequest(w, "invalid abstract: "+err.Error())
		return
	}

	a, err := h.store.Create(r.Context(), models.Abstract{
		Conference: conference,
		Title:      in.Title,
		Authors:    in.Authors,
		Email:      normalize.Email(in.Email),
		Topic:      in.Topic,
		FileURL:    in.FileURL,
	})
	if err != nil {
		h.logger.Error("failed to create abstract", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to submit abstract")
		return
	}

	jsonutil.Created(w, a)
}

// ListHandler handles GET /api/abstracts.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	status := normalize.QueryParam(r.URL.Query().Get("status"))
	if status != "" && !models.IsValidAbstractStatus(status) {
		jsonutil.BadRequest(w, "unknown abstract status")
		return
	}

	limit, page := pagination(r)
	abstracts, total, err := h.store.List(r.Context(), conference, status, limit, page)
	if err != nil {
		h.logger.Error("failed to list abstracts", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to list abstracts")
		return
	}

	jsonutil.OK(w, map[string]any{
		"abstracts":  abstracts,
		"total":      total,
		"page":       page,
		"limit":      limit,
		"totalPages": storeutil.TotalPages(total, limit),
	})
}

// CountsHandler handles GET /api/abstracts/counts.
func (h *Handler) CountsHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	counts, err := h.store.CountByStatus(r.Context(), conference)
	if err != nil {
		h.logger.Error("failed to count abstracts", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to count abstracts")
		return
	}
	jsonutil.OK(w, counts)
}

// UpdateStatusHandler handles PUT /api/abstracts/{id}/status.
func (h *Handler) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid abstract id")
		return
	}

	var in struct {
		Status string `json:"status"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if !models.IsValidAbstractStatus(in.Status) {
		jsonutil.BadRequest(w, "unknown abstract status")
		return
	}

	a, err := h.store.UpdateStatus(r.Context(), conference, id, in.Status)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "abstract not found")
			return
		}
		h.logger.Error("failed to update abstract status", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to update abstract status")
		return
	}

	jsonutil.OK(w, a)
}

// DeleteHandler handles DELETE /api/abstracts/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid abstract id")
		return
	}

	if err := h.store.Delete(r.Context(), conference, id); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "abstract not found")
			return
		}
		h.logger.Error("failed to delete abstract", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete abstract")
		return
	}

	jsonutil.NoContent(w)
}

// pagination reads limit/page query parameters with the store defaults.
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
