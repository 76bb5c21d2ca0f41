// internal/domain/models/discount.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Discount is a registration discount code for one conference.
type Discount struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Conference string             `bson:"conference" json:"conference"`
	Code       string             `bson:"code" json:"code"`
	Percent    int                `bson:"percent" json:"percent"` // 1..100
	ValidUntil *time.Time         `bson:"valid_until,omitempty" json:"valid_until,omitempty"`
	Active     bool               `bson:"active" json:"active"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
}
