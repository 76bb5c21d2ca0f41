package auth

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/sciengasummits/confadmin/internal/app/system/jsonutil"
	"github.com/sciengasummits/confadmin/internal/app/system/tenant"
)

type ctxKey struct{}

// WithClaims returns a context carrying the given claims. Exported for
// handler tests that bypass the middleware.
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// CurrentClaims returns the claims set by Middleware, if any.
func CurrentClaims(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(ctxKey{}).(Claims)
	return c, ok
}

// Middleware requires a valid "Authorization: Bearer <token>" header and
// rejects tokens whose conference does not match the request's tenant
// scope. An organizer's token is only good for the conference they
// logged into.
func Middleware(m *TokenManager, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				jsonutil.Unauthorized(w, "missing bearer token")
				return
			}

			claims, err := m.Verify(raw)
			if err != nil {
				jsonutil.Unauthorized(w, "invalid or expired token")
				return
			}

			if conf := tenant.FromContext(r.Context()); conf != claims.Conference {
				logger.Warn("token conference mismatch",
					zap.String("token_conference", claims.Conference),
					zap.String("request_conference", conf),
					zap.String("username", claims.Username))
				jsonutil.Forbidden(w, "token not valid for this conference")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
