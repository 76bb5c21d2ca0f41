// internal/app/store/ratelimit/store.go
package ratelimit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sciengasummits/confadmin/internal/app/system/normalize"
)

// Attempt tracks failed OTP login attempts for one username. Both
// generate-otp requests and wrong codes count against the window, so a
// caller cannot grind codes by alternating the two.
type Attempt struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	AttemptCount int                `bson:"attempt_count"`
	WindowStart  time.Time          `bson:"window_start"`
	LockedUntil  *time.Time         `bson:"locked_until"`
	LastAttempt  time.Time          `bson:"last_attempt"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

// Store manages rate limit tracking for login attempts.
type Store struct {
	c               *mongo.Collection
	maxAttempts     int
	windowDuration  time.Duration
	lockoutDuration time.Duration
}

// New creates a new rate limit Store with the given configuration.
func New(db *mongo.Database, maxAttempts int, window, lockout time.Duration) *Store {
	return &Store{
		c:               db.Collection("rate_limits"),
		maxAttempts:     maxAttempts,
		windowDuration:  window,
		lockoutDuration: lockout,
	}
}

// EnsureIndexes creates necessary indexes for the collection.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_ratelimit_username"),
		},
		// Records self-expire a day after the last attempt.
		{
			Keys:    bson.D{{Key: "last_attempt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(86400).SetName("idx_ratelimit_ttl"),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// CheckAllowed reports whether the username may attempt a login.
// remaining is attempts left before lockout (-1 if locked);
// lockedUntil is the lockout expiry (nil if not locked).
// Store errors fail open: availability wins over strictness here.
func (s *Store) CheckAllowed(ctx context.Context, username string) (allowed bool, remaining int, lockedUntil *time.Time) {
	username = normalize.Username(username)
	now := time.Now()

	var attempt Attempt
	err := s.c.FindOne(ctx, bson.M{"username": username}).Decode(&attempt)
	if err != nil {
		return true, s.maxAttempts, nil
	}

	if attempt.LockedUntil != nil && now.Before(*attempt.LockedUntil) {
		return false, -1, attempt.LockedUntil
	}

	if now.After(attempt.WindowStart.Add(s.windowDuration)) {
		return true, s.maxAttempts, nil
	}

	remaining = s.maxAttempts - attempt.AttemptCount
	if remaining <= 0 {
		return false, 0, nil
	}
	return true, remaining, nil
}

// RecordFailure records a failed attempt. lockedOut is true when this
// failure triggered a lockout; lockedUntil is its expiry.
func (s *Store) RecordFailure(ctx context.Context, username string) (lockedOut bool, lockedUntil *time.Time) {
	username = normalize.Username(username)
	now := time.Now()

	var attempt Attempt
	err := s.c.FindOne(ctx, bson.M{"username": username}).Decode(&attempt)

	if err == mongo.ErrNoDocuments {
		attempt = Attempt{
			ID:           primitive.NewObjectID(),
			Username:     username,
			AttemptCount: 1,
			WindowStart:  now,
			LastAttempt:  now,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if attempt.AttemptCount >= s.maxAttempts {
			lockoutTime := now.Add(s.lockoutDuration)
			attempt.LockedUntil = &lockoutTime
			lockedOut = true
			lockedUntil = &lockoutTime
		}
		_, _ = s.c.InsertOne(ctx, attempt)
		return lockedOut, lockedUntil
	}
	if err != nil {
		// Fail open on store errors.
		return false, nil
	}

	if now.After(attempt.WindowStart.Add(s.windowDuration)) {
		attempt.AttemptCount = 1
		attempt.WindowStart = now
		attempt.LockedUntil = nil
	} else {
		attempt.AttemptCount++
	}

	attempt.LastAttempt = now
	attempt.UpdatedAt = now

	if attempt.AttemptCount >= s.maxAttempts {
		lockoutTime := now.Add(s.lockoutDuration)
		attempt.LockedUntil = &lockoutTime
		lockedOut = true
		lockedUntil = &lockoutTime
	}

	_, _ = s.c.UpdateOne(ctx,
		bson.M{"_id": attempt.ID},
		bson.M{"$set": bson.M{
			"attempt_count": attempt.AttemptCount,
			"window_start":  attempt.WindowStart,
			"locked_until":  attempt.LockedUntil,
			"last_attempt":  attempt.LastAttempt,
			"updated_at":    attempt.UpdatedAt,
		}},
	)

	return lockedOut, lockedUntil
}

// ClearOnSuccess removes the record for a username after a successful
// login, resetting the counter.
func (s *Store) ClearOnSuccess(ctx context.Context, username string) error {
	_, err := s.c.DeleteOne(ctx, bson.M{"username": normalize.Username(username)})
	return err
}

// DeleteStale removes records whose last attempt predates the cutoff.
// The TTL index covers production; the periodic task covers stores
// where TTL sweeps lag.
func (s *Store) DeleteStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{
		"last_attempt": bson.M{"$lt": time.Now().Add(-olderThan)},
	})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
