// Package contentapi serves the keyed content documents behind every
// editable section of the conference sites.
//
// Endpoints (mounted at /api/content):
//   - GET  /api/content/{key} - fetch a content slot (public)
//   - PUT  /api/content/{key} - replace a content slot (bearer token)
//
// A slot that has never been written reads as {} rather than 404: the
// dashboard and the public site both treat "nothing saved yet" as an
// ordinary starting state. PUT replaces the payload entirely; a caller
// that wants to keep existing fields must read, merge, and write.
package contentapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	contentstore "github.com/sciengasummits/confadmin/internal/app/store/content"
	"github.com/sciengasummits/confadmin/internal/app/system/htmlsanitize"
	"github.com/sciengasummits/confadmin/internal/app/system/jsonutil"
	"github.com/sciengasummits/confadmin/internal/app/system/tenant"
	"github.com/sciengasummits/confadmin/internal/domain/models"
)

// Handler handles content document requests.
type Handler struct {
	store  *contentstore.Store
	logger *zap.Logger
}

// NewHandler creates a new contentapi handler.
func NewHandler(store *contentstore.Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// GetHandler handles GET /api/content/{key}.
func (h *Handler) GetHandler(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	conference := tenant.FromContext(r.Context())

	payload, err := h.store.Get(r.Context(), conference, key)
	if err != nil {
		h.logger.Error("failed to load content",
			zap.String("conference", conference),
			zap.String("key", key),
			zap.Error(err))
		jsonutil.InternalError(w, "failed to load content")
		return
	}

	jsonutil.OK(w, payload)
}

// PutHandler handles PUT /api/content/{key}. The stored payload is
// echoed back so the dashboard can reconcile its local state.
func (h *Handler) PutHandler(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	conference := tenant.FromContext(r.Context())

	var payload map[string]any
	if err := jsonutil.Decode(r, &payload); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	if payload == nil {
		payload = map[string]any{}
	}

	if models.IsHTMLContentKey(key) {
		payload = htmlsanitize.SanitizePayload(payload)
	}

	if err := h.store.Replace(r.Context(), conference, key, bson.M(payload)); err != nil {
		h.logger.Error("failed to store content",
			zap.String("conference", conference),
			zap.String("key", key),
			zap.Error(err))
		jsonutil.InternalError(w, "failed to store content")
		return
	}

	h.logger.Info("content updated",
		zap.String("conference", conference),
		zap.String("key", key))

	jsonutil.OK(w, payload)
}
