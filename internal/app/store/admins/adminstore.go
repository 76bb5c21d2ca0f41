// internal/app/store/admins/adminstore.go
package adminstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sciengasummits/confadmin/internal/app/system/normalize"
	"github.com/sciengasummits/confadmin/internal/domain/models"
)

// Store provides access to the admin_users collection.
type Store struct {
	c *mongo.Collection
}

// New creates a new admin user store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admin_users")}
}

// GetByUsername returns an admin account by its normalized username.
func (s *Store) GetByUsername(ctx context.Context, username string) (models.AdminUser, error) {
	var u models.AdminUser
	err := s.c.FindOne(ctx, bson.M{"username": normalize.Username(username)}).Decode(&u)
	if err != nil {
		return models.AdminUser{}, err
	}
	return u, nil
}

// Create inserts a new admin account. Username and email are
// normalized before storage; the unique username index rejects
// duplicates.
func (s *Store) Create(ctx context.Context, u models.AdminUser) (models.AdminUser, error) {
	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.Username = normalize.Username(u.Username)
	u.Email = normalize.Email(u.Email)
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		return models.AdminUser{}, err
	}
	return u, nil
}

// List returns all admin accounts for a conference.
func (s *Store) List(ctx context.Context, conference string) ([]models.AdminUser, error) {
	cur, err := s.c.Find(ctx, bson.M{"conference": conference})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.AdminUser{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// SetDisabled toggles whether an account may log in.
func (s *Store) SetDisabled(ctx context.Context, id primitive.ObjectID, disabled bool) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"disabled": disabled, "updated_at": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
