// Package sponsorsapi manages sponsors and media partners. The two
// share one collection and one API; the type query parameter (or the
// record's own type on writes) picks the list.
//
// Endpoints (mounted at /api/sponsors):
//   - GET    /api/sponsors?type=sponsor|media      - visible records (public)
//   - GET    /api/sponsors/all?type=sponsor|media  - every record (bearer token)
//   - POST   /api/sponsors                         - create (bearer token)
//   - PUT    /api/sponsors/reorder                 - persist order (bearer token)
//   - PUT    /api/sponsors/{id}                    - update (bearer token)
//   - DELETE /api/sponsors/{id}                    - delete (bearer token)
package sponsorsapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	sponsorstore "github.com/sciengasummits/confadmin/internal/app/store/sponsors"
	"github.com/sciengasummits/confadmin/internal/app/system/jsonutil"
	"github.com/sciengasummits/confadmin/internal/app/system/normalize"
	"github.com/sciengasummits/confadmin/internal/app/system/tenant"
	"github.com/sciengasummits/confadmin/internal/domain/models"
)

type sponsorInput struct {
	Type        string `json:"type" validate:"required"`
	Name        string `json:"name" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Website     string `json:"website" validate:"omitempty,url"`
	LogoURL     string `json:"logoUrl" validate:"omitempty,url"`
	Visible     *bool  `json:"visible"`
	Order       int    `json:"order" validate:"min=0"`
}

type reorderInput struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,required"`
}

// Handler handles sponsor requests.
type Handler struct {
	store    *sponsorstore.Store
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a new sponsorsapi handler.
func NewHandler(store *sponsorstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// listType resolves the ?type= parameter, defaulting to sponsor.
func listType(r *http.Request) (string, bool) {
	t := normalize.QueryParam(r.URL.Query().Get("type"))
	if t == "" {
		t = models.SponsorTypeSponsor
	}
	return t, models.IsValidSponsorType(t)
}

// ListHandler handles GET /api/sponsors, the public view.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	sponsorType, ok := listType(r)
	if !ok {
		jsonutil.BadRequest(w, "unknown sponsor type")
		return
	}

	sponsors, err := h.store.ListVisible(r.Context(), conference, sponsorType)
	if err != nil {
		h.logger.Error("failed to list sponsors", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to list sponsors")
		return
	}
	jsonutil.OK(w, sponsors)
}

// ListAllHandler handles GET /api/sponsors/all, the admin view.
func (h *Handler) ListAllHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	sponsorType, ok := listType(r)
	if !ok {
		jsonutil.BadRequest(w, "unknown sponsor type")
		return
	}

	sponsors, err := h.store.List(r.Context(), conference, sponsorType)
	if err != nil {
		h.logger.Error("failed to list sponsors", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to list sponsors")
		return
	}
	jsonutil.OK(w, sponsors)
}

// CreateHandler handles POST /api/sponsors.
func (h *Handler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}

	sp, err := h.store.Create(r.Context(), models.Sponsor{
		Conference:  conference,
		Type:        in.Type,
		Name:        in.Name,
		Description: in.Description,
		Website:     in.Website,
		LogoURL:     in.LogoURL,
		Visible:     visible,
		Order:       in.Order,
	})
	if err != nil {
		h.logger.Error("failed to create sponsor", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to create sponsor")
		return
	}

	jsonutil.Created(w, sp)
}

// UpdateHandler handles PUT /api/sponsors/{id}.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid sponsor id")
		return
	}

	in, ok := h.decodeInput(w, r)
	if !ok {
		return
	}

	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}

	sp, err := h.store.Update(r.Context(), conference, id, models.Sponsor{
		Name:        in.Name,
		Description: in.Description,
		Website:     in.Website,
		LogoURL:     in.LogoURL,
		Visible:     visible,
		Order:       in.Order,
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "sponsor not found")
			return
		}
		h.logger.Error("failed to update sponsor", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to update sponsor")
		return
	}

	jsonutil.OK(w, sp)
}

// DeleteHandler handles DELETE /api/sponsors/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid sponsor id")
		return
	}

	if err := h.store.Delete(r.Context(), conference, id); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "sponsor not found")
			return
		}
		h.logger.Error("failed to delete sponsor", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete sponsor")
		return
	}

	jsonutil.NoContent(w)
}

// ReorderHandler handles PUT /api/sponsors/reorder.
func (h *Handler) ReorderHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	var in reorderInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if err := h.validate.Struct(in); err != nil {
		jsonutil.BadRequest(w, "ids are required")
		return
	}

	ids := make([]primitive.ObjectID, 0, len(in.IDs))
	for _, raw := range in.IDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			jsonutil.BadRequest(w, "invalid sponsor id: "+raw)
			return
		}
		ids = append(ids, id)
	}

	if err := h.store.Reorder(r.Context(), conference, ids); err != nil {
		h.logger.Error("failed to reorder sponsors", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to reorder sponsors")
		return
	}

	jsonutil.OK(w, map[string]any{"success": true})
}

func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request) (sponsorInput, bool) {
	var in sponsorInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return in, false
	}
	if err := h.validate.Struct(in); err != nil {
		jsonutil.BadRequest(w, "invalid sponsor: "+err.Error())
		return in, false
	}
	if !models.IsValidSponsorType(in.Type) {
		jsonutil.BadRequest(w, "unknown sponsor type")
		return in, false
	}
	return in, true
}
