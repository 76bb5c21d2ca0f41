// internal/domain/models/content.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ContentDocument is one named content slot for one conference tenant.
// The payload is a loosely-typed bag of fields: several admin pages may
// edit disjoint fields of the same slot (the "sessions" slot carries a
// canonical days array, a legacy schedule map, and a flat topics list at
// the same time), so the payload is stored and returned as-is.
//
// A PUT to a slot replaces the whole payload. Writers that own only part
// of a slot must read, merge, and write back the union; the server never
// merges on their behalf.
type ContentDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Conference string             `bson:"conference" json:"conference"`
	Key        string             `bson:"key" json:"key"`
	Payload    bson.M             `bson:"payload" json:"payload"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// Well-known content slot keys. The set is open ended: slots are created
// implicitly on first write, and these constants only name the ones the
// admin pages use today.
const (
	ContentKeyHero           = "hero"
	ContentKeyAbout          = "about"
	ContentKeySessions       = "sessions"
	ContentKeyImportantDates = "importantDates"
	ContentKeyContact        = "contact"
	ContentKeyStats          = "stats"
	ContentKeyPricing        = "pricing"
	ContentKeyMarquee        = "marquee"
	ContentKeyVenueContent   = "venueContent"
	ContentKeyAboutContent   = "aboutContent"
	ContentKeyAccommodation  = "accommodation"
)

// htmlContentKeys lists the slots whose payloads carry rich-text HTML
// produced by the admin editors. Their string fields are sanitized on
// write before storage.
var htmlContentKeys = map[string]bool{
	ContentKeyAbout:         true,
	ContentKeyVenueContent:  true,
	ContentKeyAboutContent:  true,
	ContentKeyAccommodation: true,
}

// IsHTMLContentKey reports whether the slot holds editor-produced HTML.
func IsHTMLContentKey(key string) bool {
	return htmlContentKeys[key]
}
