// internal/app/store/discounts/discountstore.go
package discountstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sciengasummits/confadmin/internal/domain/models"
)

// Store provides access to the discounts collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new discount store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("discounts")}
}

// List returns all discount codes for a conference, newest first.
func (s *Store) List(ctx context.Context, conference string) ([]models.Discount, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"conference": conference}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	discounts := []models.Discount{}
	if err := cur.All(ctx, &discounts); err != nil {
		return nil, err
	}
	return discounts, nil
}

// GetByCode returns a discount by its code within a conference.
func (s *Store) GetByCode(ctx context.Context, conference, code string) (models.Discount, error) {
	var d models.Discount
	err := s.c.FindOne(ctx, bson.M{"conference": conference, "code": code}).Decode(&d)
	if err != nil {
		return models.Discount{}, err
	}
	return d, nil
}

// Create inserts a new discount code. The unique (conference, code)
// index rejects duplicates.
func (s *Store) Create(ctx context.Context, d models.Discount) (models.Discount, error) {
	d.ID = primitive.NewObjectID()
	d.CreatedAt = time.Now().UTC()

	if _, err := s.c.InsertOne(ctx, d); err != nil {
		return models.Discount{}, err
	}
	return d, nil
}

// SetActive toggles a discount on or off.
func (s *Store) SetActive(ctx context.Context, conference string, id primitive.ObjectID, active bool) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "conference": conference},
		bson.M{"$set": bson.M{"active": active}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes a discount code.
func (s *Store) Delete(ctx context.Context, conference string, id primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "conference": conference})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
