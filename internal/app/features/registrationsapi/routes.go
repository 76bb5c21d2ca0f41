package registrationsapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sciengasummits/confadmin/internal/app/system/auth"
)

// Routes returns a router with the registration endpoints.
func Routes(h *Handler, tokens *auth.TokenManager, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Post("/", h.CreateHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(auth.Middleware(tokens, logger))
		gr.Get("/", h.ListHandler)
		gr.Get("/counts", h.CountsHandler)
		gr.Put("/{id}/status", h.UpdateStatusHandler)
		gr.Delete("/{id}", h.DeleteHandler)
	})

	return r
}
