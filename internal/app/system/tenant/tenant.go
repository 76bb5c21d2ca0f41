// Package tenant carries the active conference scope through a request.
//
// Every store query and content write is filtered by the conference id
// resolved here. The id travels explicitly in the request context rather
// than in package-level state, so tests and handlers can pin a scope
// without touching globals.
package tenant

import (
	"context"

	"github.com/sciengasummits/confadmin/internal/domain/models"
)

// HeaderName is the request header clients use to name their conference.
// The admin client sets it on every call from the tenant id asserted at
// login.
const HeaderName = "X-Conference-ID"

type ctxKey struct{}

// WithConference returns a context scoped to the given conference id.
func WithConference(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the conference id for this request. Requests that
// never passed through scoping resolve to the default tenant instead of
// failing; callers can rely on always getting a usable id. This mirrors
// how the admin pages have always behaved before login, so it stays.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok && id != "" {
		return id
	}
	return models.DefaultConferenceID
}
