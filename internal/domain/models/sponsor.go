// internal/domain/models/sponsor.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Sponsor is a sponsor or media partner record. The two share one
// collection and are told apart by the Type discriminator, mirroring the
// speakers contract otherwise.
type Sponsor struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Conference  string             `bson:"conference" json:"conference"`
	Type        string             `bson:"type" json:"type"` // "sponsor" or "media"
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Website     string             `bson:"website,omitempty" json:"website,omitempty"`
	LogoURL     string             `bson:"logo_url,omitempty" json:"logoUrl,omitempty"`
	Visible     bool               `bson:"visible" json:"visible"`
	Order       int                `bson:"order" json:"order"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Sponsor type discriminators.
const (
	SponsorTypeSponsor = "sponsor"
	SponsorTypeMedia   = "media"
)

// IsValidSponsorType checks the discriminator against the closed set.
func IsValidSponsorType(t string) bool {
	return t == SponsorTypeSponsor || t == SponsorTypeMedia
}
