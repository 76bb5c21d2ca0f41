// internal/app/store/otp/otpstore.go
package otpstore

import (
	"context"
	"crypto/rand"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/sciengasummits/confadmin/internal/app/system/normalize"
)

// Challenge is one outstanding login code. The code itself is stored
// only as a bcrypt hash; the plaintext exists in the email and nowhere
// else.
type Challenge struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Username  string             `bson:"username"`
	CodeHash  []byte             `bson:"code_hash"`
	Used      bool               `bson:"used"`
	ExpiresAt time.Time          `bson:"expires_at"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Store provides access to the login_codes collection.
type Store struct {
	c      *mongo.Collection
	expiry time.Duration
}

// ErrInvalidCode is returned when no live challenge matches the
// submitted code. Callers should not distinguish wrong, expired, and
// already-used codes to the client.
var ErrInvalidCode = errors.New("invalid or expired code")

// New creates a new login code store.
func New(db *mongo.Database, expiry time.Duration) *Store {
	return &Store{
		c:      db.Collection("login_codes"),
		expiry: expiry,
	}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create mints a new six-digit code for the user, invalidating any
// earlier outstanding codes, and returns the plaintext for delivery.
func (s *Store) Create(ctx context.Context, username string) (string, error) {
	username = normalize.Username(username)

	code, err := generateCode(6)
	if err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	// One live code per user: requesting a new code supersedes the old.
	if _, err := s.c.UpdateMany(ctx,
		bson.M{"username": username, "used": false},
		bson.M{"$set": bson.M{"used": true}},
	); err != nil {
		return "", err
	}

	now := time.Now()
	ch := Challenge{
		ID:        primitive.NewObjectID(),
		Username:  username,
		CodeHash:  hash,
		Used:      false,
		ExpiresAt: now.Add(s.expiry),
		CreatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, ch); err != nil {
		return "", err
	}

	return code, nil
}

// Verify checks a submitted code against the user's live challenge and
// consumes it. A code verifies at most once.
func (s *Store) Verify(ctx context.Context, username, code string) error {
	username = normalize.Username(username)
	code = normalize.Code(code)

	var ch Challenge
	filter := bson.M{
		"username":   username,
		"used":       false,
		"expires_at": bson.M{"$gt": time.Now()},
	}
	if err := s.c.FindOne(ctx, filter).Decode(&ch); err != nil {
		if err == mongo.ErrNoDocuments {
			return ErrInvalidCode
		}
		return err
	}

	if bcrypt.CompareHashAndPassword(ch.CodeHash, []byte(code)) != nil {
		return ErrInvalidCode
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": ch.ID, "used": false},
		bson.M{"$set": bson.M{"used": true}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		// A concurrent login consumed it first.
		return ErrInvalidCode
	}
	return nil
}

// DeleteExpired removes stale challenges. The TTL index does this on
// its own; the periodic task keeps test and DocumentDB deployments
// tidy where TTL sweeps lag.
func (s *Store) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"$or": []bson.M{
			{"expires_at": bson.M{"$lt": time.Now()}},
			{"used": true},
		},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// generateCode generates a random numeric code of the specified length.
func generateCode(length int) (string, error) {
	const digits = "0123456789"
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = digits[b[i]%10]
	}
	return string(b), nil
}
