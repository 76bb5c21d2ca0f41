// internal/domain/models/abstract.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Abstract is a submitted paper abstract awaiting review.
type Abstract struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Conference  string             `bson:"conference" json:"conference"`
	Title       string             `bson:"title" json:"title"`
	Authors     string             `bson:"authors" json:"authors"`
	Email       string             `bson:"email" json:"email"`
	Topic       string             `bson:"topic,omitempty" json:"topic,omitempty"`
	FileURL     string             `bson:"file_url,omitempty" json:"fileUrl,omitempty"`
	Status      string             `bson:"status" json:"status"`
	SubmittedAt time.Time          `bson:"submitted_at" json:"submitted_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// Abstract review statuses.
const (
	AbstractStatusPending  = "Pending"
	AbstractStatusAccepted = "Accepted"
	AbstractStatusRevision = "Revision"
	AbstractStatusRejected = "Rejected"
)

// IsValidAbstractStatus checks a status against the review taxonomy.
func IsValidAbstractStatus(s string) bool {
	switch s {
	case AbstractStatusPending, AbstractStatusAccepted, AbstractStatusRevision, AbstractStatusRejected:
		return true
	}
	return false
}
