// internal/app/store/content/contentstore.go
package contentstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sciengasummits/confadmin/internal/domain/models"
)

// Store provides access to the content collection. Each document is one
// content slot for one conference, keyed by (conference, key).
type Store struct {
	c *mongo.Collection
}

// New creates a new content store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("content")}
}

// Get returns the payload stored under the given conference and key.
// A slot that has never been written returns an empty map, not an
// error: the dashboard treats "no content yet" as an ordinary state.
func (s *Store) Get(ctx context.Context, conference, key string) (bson.M, error) {
	var doc models.ContentDocument
	err := s.c.FindOne(ctx, bson.M{"conference": conference, "key": key}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return bson.M{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Payload == nil {
		return bson.M{}, nil
	}
	return doc.Payload, nil
}

// Replace stores the payload under (conference, key), overwriting any
// previous payload entirely. There is no server-side merge; callers
// that want to preserve existing fields must read, merge, and write.
func (s *Store) Replace(ctx context.Context, conference, key string, payload bson.M) error {
	now := time.Now().UTC()

	filter := bson.M{"conference": conference, "key": key}
	update := bson.M{
		"$set": bson.M{
			"payload":    payload,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"conference": conference,
			"key":        key,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, filter, update, opts)
	return err
}

// Keys returns the keys that have been written for a conference.
func (s *Store) Keys(ctx context.Context, conference string) ([]string, error) {
	cur, err := s.c.Find(ctx, bson.M{"conference": conference},
		options.Find().SetProjection(bson.M{"key": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var keys []string
	for cur.Next(ctx) {
		var doc struct {
			Key string `bson:"key"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		keys = append(keys, doc.Key)
	}
	return keys, cur.Err()
}

// Delete removes a content slot. Used by seeding and tests.
func (s *Store) Delete(ctx context.Context, conference, key string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"conference": conference, "key": key})
	return err
}
