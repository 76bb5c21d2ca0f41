// internal/app/system/tenant/middleware.go
package tenant

import (
	"net/http"

	"github.com/sciengasummits/confadmin/internal/app/system/jsonutil"
	"github.com/sciengasummits/confadmin/internal/domain/models"
	"go.uber.org/zap"
)

// Middleware resolves the conference scope for each request from the
// X-Conference-ID header.
//
// A missing header falls back to the default tenant (the legacy client
// never sent one). A header naming an unknown tenant fails closed with
// 400: silently routing one conference's admin traffic into another's
// data is the one outcome this layer exists to prevent.
func Middleware(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(HeaderName)
			if id == "" {
				id = models.DefaultConferenceID
			} else if !models.IsValidConference(id) {
				logger.Warn("request named unknown conference",
					zap.String("conference", id),
					zap.String("path", r.URL.Path),
				)
				jsonutil.BadRequest(w, "unknown conference id")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithConference(r.Context(), id)))
		})
	}
}
