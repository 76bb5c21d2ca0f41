package discountsapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sciengasummits/confadmin/internal/app/system/auth"
)

// Routes returns a router with the discount endpoints.
func Routes(h *Handler, tokens *auth.TokenManager, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/validate", h.ValidateHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(auth.Middleware(tokens, logger))
		gr.Get("/", h.ListHandler)
		gr.Post("/", h.CreateHandler)
		gr.Put("/{id}/active", h.SetActiveHandler)
		gr.Delete("/{id}", h.DeleteHandler)
	})

	return r
}
