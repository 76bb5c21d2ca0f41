// internal/domain/models/registration.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Registration is an attendee registration for one conference.
type Registration struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Conference  string             `bson:"conference" json:"conference"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Affiliation string             `bson:"affiliation,omitempty" json:"affiliation,omitempty"`
	Country     string             `bson:"country,omitempty" json:"country,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"` // Ticket category (student, regular, ...)
	Amount      float64            `bson:"amount,omitempty" json:"amount,omitempty"`
	Currency    string             `bson:"currency,omitempty" json:"currency,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Registration statuses.
const (
	RegistrationStatusPending   = "Pending"
	RegistrationStatusConfirmed = "Confirmed"
	RegistrationStatusPaid      = "Paid"
	RegistrationStatusCancelled = "Cancelled"
)

// IsValidRegistrationStatus checks a status against the taxonomy.
func IsValidRegistrationStatus(s string) bool {
	switch s {
	case RegistrationStatusPending, RegistrationStatusConfirmed, RegistrationStatusPaid, RegistrationStatusCancelled:
		return true
	}
	return false
}
