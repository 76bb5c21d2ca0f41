// internal/domain/models/adminuser.go
package models

// Terminology: User Identifiers
//   - Username: the human-readable string organizers type to log in
//   - UserID: the MongoDB ObjectID (_id) of the admin record

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUser is a conference organizer account. Authentication is
// OTP-by-email only: there is no stored password, just the email the
// one-time code is delivered to. Each account is bound to exactly one
// conference tenant, asserted at login and scoping every later call.
type AdminUser struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username    string             `bson:"username" json:"username"`
	Email       string             `bson:"email" json:"email"`
	Conference  string             `bson:"conference" json:"conferenceId"`
	DisplayName string             `bson:"display_name" json:"displayName"`
	Disabled    bool               `bson:"disabled,omitempty" json:"disabled,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
