// internal/app/store/registrations/registrationstore.go
package registrationstore

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

// Store provides access to the registrations collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new registration store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("registrations")}
}

// List returns a page of registrations for a conference, newest first,
// optionally filtered by payment status.
func (s *Store) List(ctx context.Context, conference, status string, limit, page int64) ([]models.Registration, int64, error) {
	filter := bson.M{"conference": conference}
	if status != "" {
		filter["status"] = status
	}

	total, err := s.c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := storeutil.Paginate(limit, page).SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	regs := []models.Registration{}
	if err := cur.All(ctx, &regs); err != nil {
		return nil, 0, err
	}
	return regs, total, nil
}

// GetByID returns one registration scoped to a conference.
func (s *Store) GetByID(ctx context.Context, conference string, id primitive.ObjectID) (models.Registration, error) {
	var r models.Registration
	err := s.c.FindOne(ctx, bson.M{"_id": id, "conference": conference}).Decode(&r)
	if err != nil {
		return models.Registration{}, err
	}
	return r, nil
}

// Create inserts a new registration. New rows always start Pending.
func (s *Store) Create(ctx context.Context, r models.Registration) (models.Registration, error) {
	now := time.Now().UTC()
	r.ID = primitive.NewObjectID()
	r.Status = models.RegistrationStatusPending
	r.CreatedAt = now
	r.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, r); err != nil {
		return models.Registration{}, err
	}
	return r, nil
}

// UpdateStatus moves a registration through the payment taxonomy and
// returns the updated record.
func (s *Store) UpdateStatus(ctx context.Context, conference string, id primitive.ObjectID, status string) (models.Registration, error) {
	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Registration
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id, "conference": conference}, update, opts).Decode(&out)
	if err != nil {
		return models.Registration{}, err
	}
	return out, nil
}

// Delete removes a registration.
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

// CountByStatus returns registration counts keyed by status.
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
