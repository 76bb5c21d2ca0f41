// internal/domain/models/speaker.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Speaker is a conference speaker shown on the public site and managed
// from the admin dashboard.
type Speaker struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Conference  string             `bson:"conference" json:"conference"`
	Name        string             `bson:"name" json:"name"`
	Affiliation string             `bson:"affiliation,omitempty" json:"affiliation,omitempty"`
	Country     string             `bson:"country,omitempty" json:"country,omitempty"`
	Bio         string             `bson:"bio,omitempty" json:"bio,omitempty"`
	ImageURL    string             `bson:"image_url,omitempty" json:"imageUrl,omitempty"`
	Category    string             `bson:"category" json:"category"`
	Visible     bool               `bson:"visible" json:"visible"`
	Order       int                `bson:"order" json:"order"` // Display position within the category
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Speaker categories used to filter list views.
const (
	SpeakerCategoryKeynote = "keynote"
	SpeakerCategoryInvited = "invited"
	SpeakerCategoryRegular = "regular"
)

// AllSpeakerCategories returns the valid category tags.
func AllSpeakerCategories() []string {
	return []string{SpeakerCategoryKeynote, SpeakerCategoryInvited, SpeakerCategoryRegular}
}

// IsValidSpeakerCategory checks a category tag against the closed set.
func IsValidSpeakerCategory(c string) bool {
	switch c {
	case SpeakerCategoryKeynote, SpeakerCategoryInvited, SpeakerCategoryRegular:
		return true
	}
	return false
}
