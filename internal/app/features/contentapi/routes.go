package contentapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sciengasummits/confadmin/internal/app/system/auth"
)

// Routes returns a router with the content document endpoints.
//
// When mounted at /api/content:
//   - GET /api/content/{key} - public read
//   - PUT /api/content/{key} - bearer-token write
func Routes(h *Handler, tokens *auth.TokenManager, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Get("/{key}", h.GetHandler)

	r.Group(func(gr chi.Router) {
		gr.Use(auth.Middleware(tokens, logger))
		gr.Put("/{key}", h.PutHandler)
	})

	return r
}
