// internal/domain/models/conference.go
package models

// Conference describes one conference tenant hosted by this service.
// The set of tenants is closed: every stored document is scoped to one of
// the identifiers below, and requests naming anything else are rejected.
type Conference struct {
	ID           string `json:"id"`            // Tenant identifier used in scoping ("liutex")
	Name         string `json:"name"`          // Full display name
	ShortName    string `json:"short_name"`    // Abbreviation used in email subjects and UI chrome
	PrimaryColor string `json:"primary_color"` // Brand color (hex)
	AccentColor  string `json:"accent_color"`  // Secondary brand color (hex)
	LogoPath     string `json:"logo_path"`     // Static logo asset path
}

// Conference tenant identifiers.
const (
	ConferenceLiutex   = "liutex"
	ConferenceFoodAgri = "foodagri"
	ConferenceFluid    = "fluid"
)

// DefaultConferenceID is the fallback tenant used when a request carries no
// conference scope. Unscoped requests are routed here rather than failing;
// see tenant.FromContext.
const DefaultConferenceID = ConferenceLiutex

// conferences is the static tenant registry, keyed by identifier.
var conferences = map[string]Conference{
	ConferenceLiutex: {
		ID:           ConferenceLiutex,
		Name:         "International Conference on Liutex and Third Generation of Vortex Definition",
		ShortName:    "LIUTEX",
		PrimaryColor: "#1a3c6e",
		AccentColor:  "#e8b23a",
		LogoPath:     "/assets/logos/liutex.png",
	},
	ConferenceFoodAgri: {
		ID:           ConferenceFoodAgri,
		Name:         "Global Summit on Food Science and Agricultural Technology",
		ShortName:    "FoodAgri",
		PrimaryColor: "#2e7d32",
		AccentColor:  "#ff8f00",
		LogoPath:     "/assets/logos/foodagri.png",
	},
	ConferenceFluid: {
		ID:           ConferenceFluid,
		Name:         "International Symposium on Fluid Dynamics and Turbulence",
		ShortName:    "Fluid",
		PrimaryColor: "#00497a",
		AccentColor:  "#6ec6ff",
		LogoPath:     "/assets/logos/fluid.png",
	},
}

// AllConferenceIDs returns the tenant identifiers in a stable order.
func AllConferenceIDs() []string {
	return []string{ConferenceLiutex, ConferenceFoodAgri, ConferenceFluid}
}

// IsValidConference reports whether id names a known tenant.
func IsValidConference(id string) bool {
	_, ok := conferences[id]
	return ok
}

// ConferenceByID returns the display profile for a tenant identifier.
func ConferenceByID(id string) (Conference, bool) {
	c, ok := conferences[id]
	return c, ok
}
