// Package speakersapi manages the speaker listings for each conference.
//
// Endpoints (mounted at /api/speakers):
//   - GET    /api/speakers            - visible speakers, optional ?category= (public)
//   - GET    /api/speakers/all        - every speaker including hidden (bearer token)
//   - POST   /api/speakers            - create (bearer token)
//   - PUT    /api/speakers/reorder    - persist drag-and-drop order (bearer token)
//   - PUT    /api/speakers/{id}       - update (bearer token)
//   - DELETE /api/speakers/{id}       - delete (bearer token)
package speakersapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	speakerstore "github.com/sciengasummits/confadmin/internal/app/store/speakers"
	"github.com/sciengasummits/confadmin/internal/app/system/jsonutil"
	"github.com/sciengasummits/confadmin/internal/app/system/normalize"
	"github.com/sciengasummits/confadmin/internal/app/system/tenant"
	"github.com/sciengasummits/confadmin/internal/domain/models"
)

// Handler handles speaker requests.
type Handler struct {
	store    *speakerstore.Store
	validate *validator.Validate
	logger   *zap.Logger
}

// NewHandler creates a new speakersapi handler.
func NewHandler(store *speakerstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		store:    store,
		validate: validator.New(),
		logger:   logger,
	}
}

// ListHandler handles GET /api/speakers, the public filtered view.
func (h *Handler) ListHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())
	category := normalize.QueryParam(r.URL.Query().Get("category"))
	if category != "" && !models.IsValidSpeakerCategory(category) {
		jsonutil.BadRequest(w, "unknown speaker category")
		return
	}

	speakers, err := h.store.ListVisible(r.Context(), conference, category)
	if err != nil {
		h.logger.Error("failed to list speakers", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to list speakers")
		return
	}
	jsonutil.OK(w, speakers)
}

// ListAllHandler handles GET /api/speakers/all, the admin view.
func (h *Handler) ListAllHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	speakers, err := h.store.List(r.Context(), conference)
	if err != nil {
		h.logger.Error("failed to list speakers", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to list speakers")
		return
	}
	jsonutil.OK(w, speakers)
}

// CreateHandler handles POST /api/speakers.
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

	sp, err := h.store.Create(r.Context(), models.Speaker{
		Conference:  conference,
		Name:        in.Name,
		Affiliation: in.Affiliation,
		Country:     in.Country,
		Bio:         in.Bio,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Visible:     visible,
		Order:       in.Order,
	})
	if err != nil {
		h.logger.Error("failed to create speaker", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to create speaker")
		return
	}

	jsonutil.Created(w, sp)
}

// UpdateHandler handles PUT /api/speakers/{id}.
func (h *Handler) UpdateHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid speaker id")
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

	sp, err := h.store.Update(r.Context(), conference, id, models.Speaker{
		Name:        in.Name,
		Affiliation: in.Affiliation,
		Country:     in.Country,
		Bio:         in.Bio,
		ImageURL:    in.ImageURL,
		Category:    in.Category,
		Visible:     visible,
		Order:       in.Order,
	})
	if err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "speaker not found")
			return
		}
		h.logger.Error("failed to update speaker", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to update speaker")
		return
	}

	jsonutil.OK(w, sp)
}

// DeleteHandler handles DELETE /api/speakers/{id}.
func (h *Handler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	conference := tenant.FromContext(r.Context())

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.BadRequest(w, "invalid speaker id")
		return
	}

	if err := h.store.Delete(r.Context(), conference, id); err != nil {
		if err == mongo.ErrNoDocuments {
			jsonutil.NotFound(w, "speaker not found")
			return
		}
		h.logger.Error("failed to delete speaker", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to delete speaker")
		return
	}

	jsonutil.NoContent(w)
}

// ReorderHandler handles PUT /api/speakers/reorder.
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
			jsonutil.BadRequest(w, "invalid speaker id: "+raw)
			return
		}
		ids = append(ids, id)
	}

	if err := h.store.Reorder(r.Context(), conference, ids); err != nil {
		h.logger.Error("failed to reorder speakers", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to reorder speakers")
		return
	}

	speakers, err := h.store.List(r.Context(), conference)
	if err != nil {
		h.logger.Error("failed to list speakers after reorder", zap.String("conference", conference), zap.Error(err))
		jsonutil.InternalError(w, "failed to list speakers")
		return
	}
	jsonutil.OK(w, speakers)
}

func (h *Handler) decodeInput(w http.ResponseWriter, r *http.Request) (speakerInput, bool) {
	var in speakerInput
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return in, false
	}
	if err := h.validate.Struct(in); err != nil {
		jsonutil.BadRequest(w, "invalid speaker: "+err.Error())
		return in, false
	}
	if !models.IsValidSpeakerCategory(in.Category) {
		jsonutil.BadRequest(w, "unknown speaker category")
		return in, false
	}
	return in, true
}
