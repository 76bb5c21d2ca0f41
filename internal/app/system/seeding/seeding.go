// internal/app/system/seeding/seeding.go
package seeding

import (
	"context"
	"fmt"

	adminstore "github.com/sciengasummits/confadmin/internal/app/store/admins"
	"github.com/sciengasummits/confadmin/internal/app/system/normalize"
	"github.com/sciengasummits/confadmin/internal/domain/models"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// SeedAdmin ensures an organizer account exists for the given conference.
// If the username is already taken the existing account is left untouched,
// whatever conference it belongs to.
func SeedAdmin(ctx context.Context, db *mongo.Database, username, email, conference, displayName string, logger *zap.Logger) error {
	if !models.IsValidConference(conference) {
		return fmt.Errorf("seed admin: unknown conference %q", conference)
	}

	store := adminstore.New(db)

	existing, err := store.GetByUsername(ctx, username)
	if err == nil {
		logger.Debug("admin account already exists",
			zap.String("username", existing.Username),
			zap.String("conference", existing.Conference))
		return nil
	}
	if err != mongo.ErrNoDocuments {
		return err
	}

	if displayName == "" {
		displayName = "Organizer"
	}

	created, err := store.Create(ctx, models.AdminUser{
		Username:    username,
		Email:       email,
		Conference:  conference,
		DisplayName: displayName,
	})
	if err != nil {
		// A concurrent instance may have won the race on the unique index.
		if mongo.IsDuplicateKeyError(err) {
			logger.Debug("admin account created concurrently",
				zap.String("username", normalize.Username(username)))
			return nil
		}
		return err
	}

	logger.Info("seeded admin account",
		zap.String("username", created.Username),
		zap.String("conference", created.Conference))
	return nil
}
