package sponsorsapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sciengasummits/confadmin/internal/app/system/auth"
)

// Routes returns a router with the sponsor endpoints.
func Routes(h *Handler, tokens *auth.TokenManager, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.ListHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(auth.Middleware(tokens, logger))
		gr.Get("/all", h.ListAllHandler)
		gr.Post("/", h.CreateHandler)
		gr.Put("/reorder", h.ReorderHandler)
		gr.Put("/{id}", h.UpdateHandler)
		gr.Delete("/{id}", h.DeleteHandler)
	})

	return r
}
