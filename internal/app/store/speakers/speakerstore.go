// internal/app/store/speakers/speakerstore.go
package speakerstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sciengasummits/confadmin/internal/domain/models"
)

// Store provides access to the speakers collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new speaker store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("speakers")}
}

// List returns all speakers for a conference, visible or not, ordered
// by category then display position. This is the admin view.
func (s *Store) List(ctx context.Context, conference string) ([]models.Speaker, error) {
	return s.find(ctx, bson.M{"conference": conference})
}

// ListVisible returns only visible speakers, optionally filtered by
// category. This is the public-site view.
func (s *Store) ListVisible(ctx context.Context, conference, category string) ([]models.Speaker, error) {
	filter := bson.M{"conference": conference, "visible": true}
	if category != "" {
		filter["category"] = category
	}
	return s.find(ctx, filter)
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Speaker, error) {
	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "order", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	speakers := []models.Speaker{}
	if err := cur.All(ctx, &speakers); err != nil {
		return nil, err
	}
	return speakers, nil
}

// GetByID returns one speaker scoped to a conference.
func (s *Store) GetByID(ctx context.Context, conference string, id primitive.ObjectID) (models.Speaker, error) {
	var sp models.Speaker
	err := s.c.FindOne(ctx, bson.M{"_id": id, "conference": conference}).Decode(&sp)
	if err != nil {
		return models.Speaker{}, err
	}
	return sp, nil
}

// Create inserts a new speaker and returns it with ID and timestamps set.
// A new speaker is placed at the end of its category.
func (s *Store) Create(ctx context.Context, sp models.Speaker) (models.Speaker, error) {
	now := time.Now().UTC()
	sp.ID = primitive.NewObjectID()
	sp.CreatedAt = now
	sp.UpdatedAt = now

	if sp.Order == 0 {
		count, err := s.c.CountDocuments(ctx, bson.M{
			"conference": sp.Conference,
			"category":   sp.Category,
		})
		if err != nil {
			return models.Speaker{}, err
		}
		sp.Order = int(count) + 1
	}

	if _, err := s.c.InsertOne(ctx, sp); err != nil {
		return models.Speaker{}, err
	}
	return sp, nil
}

// Update replaces the mutable fields of a speaker. The conference in
// the filter keeps a token for one tenant from touching another's rows.
func (s *Store) Update(ctx context.Context, conference string, id primitive.ObjectID, sp models.Speaker) (models.Speaker, error) {
	update := bson.M{"$set": bson.M{
		"name":        sp.Name,
		"affiliation": sp.Affiliation,
		"country":     sp.Country,
		"bio":         sp.Bio,
		"image_url":   sp.ImageURL,
		"category":    sp.Category,
		"visible":     sp.Visible,
		"order":       sp.Order,
		"updated_at":  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Speaker
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id, "conference": conference}, update, opts).Decode(&out)
	if err != nil {
		return models.Speaker{}, err
	}
	return out, nil
}

// Delete removes a speaker.
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

// Reorder rewrites the display positions for a conference. ids holds
// the speaker IDs in their new order; each gets order = position+1.
// IDs belonging to other conferences are silently skipped by the
// filter, so a stray ID cannot reorder another tenant's list.
func (s *Store) Reorder(ctx context.Context, conference string, ids []primitive.ObjectID) error {
	now := time.Now().UTC()
	for i, id := range ids {
		_, err := s.c.UpdateOne(ctx,
			bson.M{"_id": id, "conference": conference},
			bson.M{"$set": bson.M{"order": i + 1, "updated_at": now}},
		)
		if err != nil {
			return err
		}
	}
	return nil
}
