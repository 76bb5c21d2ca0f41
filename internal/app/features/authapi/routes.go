package authapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns a router with the OTP login endpoints.
//
// When mounted at /api/auth:
//   - POST /api/auth/generate-otp
//   - POST /api/auth/login
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/generate-otp", h.GenerateOTPHandler)
	r.Post("/login", h.LoginHandler)

	return r
}
