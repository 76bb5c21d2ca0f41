// internal/app/store/sponsors/sponsorstore.go
package sponsorstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sciengasummits/confadmin/internal/domain/models"
)

// Store provides access to the sponsors collection. Sponsors and media
// partners share the collection and are told apart by the type field.
type Store struct {
	c *mongo.Collection
}

// New creates a new sponsor store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("sponsors")}
}

// List returns all records of one type for a conference, the admin view.
func (s *Store) List(ctx context.Context, conference, sponsorType string) ([]models.Sponsor, error) {
	return s.find(ctx, bson.M{"conference": conference, "type": sponsorType})
}

// ListVisible returns only visible records of one type, the public view.
func (s *Store) ListVisible(ctx context.Context, conference, sponsorType string) ([]models.Sponsor, error) {
	return s.find(ctx, bson.M{"conference": conference, "type": sponsorType, "visible": true})
}

func (s *Store) find(ctx context.Context, filter bson.M) ([]models.Sponsor, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	sponsors := []models.Sponsor{}
	if err := cur.All(ctx, &sponsors); err != nil {
		return nil, err
	}
	return sponsors, nil
}

// Create inserts a new sponsor at the end of its type's list.
func (s *Store) Create(ctx context.Context, sp models.Sponsor) (models.Sponsor, error) {
	now := time.Now().UTC()
	sp.ID = primitive.NewObjectID()
	sp.CreatedAt = now
	sp.UpdatedAt = now

	if sp.Order == 0 {
		count, err := s.c.CountDocuments(ctx, bson.M{
			"conference": sp.Conference,
			"type":       sp.Type,
		})
		if err != nil {
			return models.Sponsor{}, err
		}
		sp.Order = int(count) + 1
	}

	if _, err := s.c.InsertOne(ctx, sp); err != nil {
		return models.Sponsor{}, err
	}
	return sp, nil
}

// Update replaces the mutable fields of a sponsor. The type field is
// immutable; moving a record between sponsor and media is a delete plus
// create from the dashboard's point of view.
func (s *Store) Update(ctx context.Context, conference string, id primitive.ObjectID, sp models.Sponsor) (models.Sponsor, error) {
	update := bson.M{"$set": bson.M{
		"name":        sp.Name,
		"description": sp.Description,
		"website":     sp.Website,
		"logo_url":    sp.LogoURL,
		"visible":     sp.Visible,
		"order":       sp.Order,
		"updated_at":  time.Now().UTC(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var out models.Sponsor
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id, "conference": conference}, update, opts).Decode(&out)
	if err != nil {
		return models.Sponsor{}, err
	}
	return out, nil
}

// Delete removes a sponsor.
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

// Reorder rewrites display positions for one type within a conference.
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
