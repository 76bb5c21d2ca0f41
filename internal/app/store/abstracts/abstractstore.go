// internal/app/store/abstracts/abstractstore.go
package abstractstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sciengasummits/confadmin/internal/app/store/storeutil"
	"github.com/sciengasummits/confadmin/internal/domain/models"
)

// Store provides access to the abstracts collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new abstract store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("abstracts")}
}

// List returns a page of abstracts for a conference, newest first,
// optionally filtered by review status. total is the count across all
// pages of the same filter.
func (s *Store) List(ctx context.Context, conference, status string, limit, page int64) ([]models.Abstract, int64, error) {
	filter := bson.M{"conference": conference}
	if status != "" {
		filter["status"] = status
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := storeutil.Paginate(limit, page).SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	abstracts := []models.Abstract{}
	if err := cur.All(ctx, &abstracts); err != nil {
		return nil, 0, err
	}
	return abstracts, total, nil
}

// GetByID returns one abstract scoped to a conference.
func (s *Store) GetByID(ctx context.Context, conference string, id primitive.ObjectID) (models.Abstract, error) {
	var a models.Abstract
	err := s.c.FindOne(ctx, bson.M{"_id": id, "conference": conference}).Decode(&a)
	if err != nil {
		return models.Abstract{}, err
	}
	return a, nil
}

// Create inserts a new submission. New abstracts always start Pending
// regardless of what the caller supplied.
func (s *Store) Create(ctx context.Context, a models.Abstract) (models.Abstract, error) {
	now := time.Now().UTC()
	a.ID = primitive.NewObjectID()
	a.Status = models.AbstractStatusPending
	a.SubmittedAt = now
	a.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		return models.Abstract{}, err
	}
	return a, nil
}

// UpdateStatus moves an abstract through the review taxonomy and
// returns the updated record.
func (s *Store) UpdateStatus(ctx context.Context, conference string, id primitive.ObjectID, status string) (models.Abstract, error) {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Abstract
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id, "conference": conference}, update, opts).Decode(&out)
	if err != nil {
		return models.Abstract{}, err
	}
	return out, nil
}

// Delete removes a submission.
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

// CountByStatus returns submission counts keyed by review status, for
// the dashboard's summary cards.
func (s *Store) CountByStatus(ctx context.Context, conference string) (map[string]int64, error) {
	cur, err := s.c.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"conference": conference}}},
		{{Key: "$group", Value: bson.M{"_id": "$status", "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	counts := map[string]int64{}
	for cur.Next(ctx) {
		var row struct {
			Status string `bson:"_id"`
			Count  int64  `bson:"count"`
		}
		if err := cur.Decode(&row); err != nil {
			return nil, err
		}
		counts[row.Status] = row.Count
	}
	return counts, cur.Err()
}
