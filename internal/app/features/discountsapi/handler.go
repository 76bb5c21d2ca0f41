// Package discountsapi manages registration discount codes.
//
// Endpoints (mounted at /api/discounts):
//   - GET    /api/discounts                - list codes (bearer token)
//   - POST   /api/discounts                - create (bearer token)
//   - PUT    /api/discounts/{id}/active    - toggle (bearer token)
//   - DELETE /api/discounts/{id}           - delete (bearer token)
//   - GET    /api/discounts/validate?code= - check a code (public)
//
// The list endpoint still accepts the legacy ?conference= parameter the
// old dashboard sent. It must agree with the request's tenant scope;
// a mismatch is rejected rather than silently switching tenants.
package discountsapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	discountstore "github.com/sciengasummits/confadmin/internal/app/store/discounts"
	"github.com/sciengasummits/confadmin/internal/app/system/jsonutil"
	"github.com/sciengasummits/confadmin/internal/app/system/normalize"
	"github.com/sciengasummits/confadmin/internal/app/system/tenant"
	"github.com/sciengasummits/confadmin/internal/domain/models"
)

type discountInput struct {
	Code       string     `json:"code" validate:"required,max=50"`
	Percent    int        `json:"percent" validate:"required,min=1,max=100"`
	ValidUntil *time.Time `json:"valid_until"`
	Active     *bool      `json:"active"`
}

// Handler handles discount code requests.
type Handler struct {
	store    *discountstore.Store
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a new discountsapi handler.
func NewHandler(store *discountstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// ListHandler handles GET /api/discounts.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	if legacy := normalize.QueryParam(r.URL.Query().Get("conference")); legacy != "" {
		if !models.IsValidConference(legacy) {
			jsonutil.BadRequest(w, "unknown conference id")
			return
		}
		if legacy != conference {
			jsonutil.Forbidden(w, "conference parameter does not match request scope")
			return
		}
	}

	discounts, err := h.store.List(r.Context(), conference)
	if err != nil {
		h.logger.Error("failed to list discounts", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to list discounts")
		return
	}
	jsonutil.OK(w, discounts)
}

// CreateHandler handles POST /api/discounts.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	var in discountInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		jsonutil.BadRequest(w, "invalid discount: "+err.Error())
		return
	}

	active := true
	if in.Active != nil {
		active = *in.Active
	}

	d, err := h.store.Create(r.Context(), models.Discount{
		Conference: conference,
		Code:       normalize.DiscountCode(in.Code),
		Percent:    in.Percent,
		ValidUntil: in.ValidUntil,
		Active:     active,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			jsonutil.BadRequest(w, "discount code already exists")
			return
		}
		h.logger.Error("failed to create discount", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to create discount")
		return
	}

	jsonutil.Created(w, d)
}

// SetActiveHandler handles PUT /api/discounts/{id}/active.
func (h *Handler) SetActiveHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid discount id")
		return
	}

	var in struct {
		Active *bool `json:"active"`
	}
	if err := jsonutil.Decode(r, &in); err != nil || in.Active == nil {
		jsonutil.BadRequest(w, "active flag is required")
		return
	}

	if err := h.store.SetActive(r.Context(), conference, id, *in.Active); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "discount not found")
			return
		}
		h.logger.Error("failed to toggle discount", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to toggle discount")
		return
	}

	jsonutil.OK(w, map[string]any{"success": true})
}

// DeleteHandler handles DELETE /api/discounts/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid discount id")
		return
	}

	if err := h.store.Delete(r.Context(), conference, id); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "discount not found")
			return
		}
		h.logger.Error("failed to delete discount", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete discount")
		return
	}

	jsonutil.NoContent(w)
}

// ValidateHandler handles GET /api/discounts/validate?code=X, the public
// check the registration form runs before applying a code.
func (h *Handler) ValidateHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	code := normalize.DiscountCode(r.URL.Query().Get("code"))
	if code == "" {
		jsonutil.BadRequest(w, "code is required")
		return
	}

	d, err := h.store.GetByCode(r.Context(), conference, code)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.OK(w, map[string]any{"valid": false})
			return
		}
		h.logger.Error("failed to look up discount", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to validate discount")
		return
	}

	valid := d.Active && (d.ValidUntil == nil || d.ValidUntil.After(time.Now()))
	if !valid {
		jsonutil.OK(w, map[string]any{"valid": false})
		return
	}

	jsonutil.OK(w, map[string]any{"valid": true, "percent": d.Percent})
}
