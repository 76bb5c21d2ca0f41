// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureContent(ctx, db); err != nil {
		problems = append(problems, "content: "+err.Error())
	}
	if err := ensureSpeakers(ctx, db); err != nil {
		problems = append(problems, "speakers: "+err.Error())
	}
	if err := ensureSponsors(ctx, db); err != nil {
		problems = append(problems, "sponsors: "+err.Error())
	}
	if err := ensureDiscounts(ctx, db); err != nil {
		problems = append(problems, "discounts: "+err.Error())
	}
	if err := ensureAbstracts(ctx, db); err != nil {
		problems = append(problems, "abstracts: "+err.Error())
	}
	if err := ensureRegistrations(ctx, db); err != nil {
		problems = append(problems, "registrations: "+err.Error())
	}
	if err := ensureAdminUsers(ctx, db); err != nil {
		problems = append(problems, "admin_users: "+err.Error())
	}
	if err := ensureLoginCodes(ctx, db); err != nil {
		problems = append(problems, "login_codes: "+err.Error())
	}
	if err := ensureRateLimits(ctx, db); err != nil {
		problems = append(problems, "rate_limits: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// ensureIndexSet creates each desired index, reusing any existing index
// with the same name. IndexOptionsConflict means an index with these
// keys already exists under another name; we log and keep going rather
// than fight deployments that predate the naming convention.
func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	for _, m := range models {
		name := ""
		if m.Options != nil && m.Options.Name != nil {
			name = *m.Options.Name
		}

		start := time.Now()
		_, err := coll.Indexes().CreateOne(ctx, m)
		if err != nil {
			if strings.Contains(err.Error(), "IndexOptionsConflict") ||
				strings.Contains(err.Error(), "already exists") {
				zap.L().Warn("index exists with different options, leaving as-is",
					zap.String("collection", coll.Name()),
					zap.String("name", name),
					zap.Error(err))
				continue
			}
			errs = append(errs, name+": "+err.Error())
			continue
		}

		zap.L().Info("ensured index",
			zap.String("collection", coll.Name()),
			zap.String("name", name),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureContent(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("content"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conference", Value: 1}, {Key: "key", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_content_conference_key"),
		},
	})
}

func ensureSpeakers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("speakers"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conference", Value: 1}, {Key: "category", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetName("idx_speakers_conference_category_order"),
		},
		{
			Keys:    bson.D{{Key: "conference", Value: 1}, {Key: "visible", Value: 1}},
			Options: options.Index().SetName("idx_speakers_conference_visible"),
		},
	})
}

func ensureSponsors(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("sponsors"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conference", Value: 1}, {Key: "type", Value: 1}, {Key: "order", Value: 1}},
			Options: options.Index().SetName("idx_sponsors_conference_type_order"),
		},
	})
}

func ensureDiscounts(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("discounts"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conference", Value: 1}, {Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_discounts_conference_code"),
		},
	})
}

func ensureAbstracts(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("abstracts"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conference", Value: 1}, {Key: "status", Value: 1}, {Key: "submitted_at", Value: -1}},
			Options: options.Index().SetName("idx_abstracts_conference_status_submitted"),
		},
	})
}

func ensureRegistrations(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("registrations"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "conference", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_registrations_conference_status_created"),
		},
		{
			Keys:    bson.D{{Key: "conference", Value: 1}, {Key: "email", Value: 1}},
			Options: options.Index().SetName("idx_registrations_conference_email"),
		},
	})
}

func ensureAdminUsers(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("admin_users"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_admin_users_username"),
		},
		{
			Keys:    bson.D{{Key: "conference", Value: 1}},
			Options: options.Index().SetName("idx_admin_users_conference"),
		},
	})
}

func ensureLoginCodes(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("login_codes"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetName("idx_login_codes_username"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_login_codes_ttl"),
		},
	})
}

func ensureRateLimits(ctx context.Context, db *mongo.Database) error {
	return ensureIndexSet(ctx, db.Collection("rate_limits"), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("idx_ratelimit_username"),
		},
		{
			Keys:    bson.D{{Key: "last_attempt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(86400).SetName("idx_ratelimit_ttl"),
		},
	})
}
