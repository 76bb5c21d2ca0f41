// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/waffle/config"
	otpstore "github.com/sciengasummits/confadmin/internal/app/store/otp"
	"github.com/sciengasummits/confadmin/internal/app/store/ratelimit"
	"github.com/sciengasummits/confadmin/internal/app/system/seeding"
	"github.com/sciengasummits/confadmin/internal/app/system/tasks"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Startup runs once after DB connections and schema setup are complete,
// but before the HTTP handler is built and requests are served. It seeds
// the configured organizer account and starts the background task
// runner.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SeedAdminUsername != "" {
		err := seeding.SeedAdmin(ctx, deps.MongoDatabase,
			appCfg.SeedAdminUsername,
			appCfg.SeedAdminEmail,
			appCfg.SeedAdminConference,
			appCfg.SeedAdminDisplayName,
			logger)
		if err != nil {
			logger.Error("failed to seed admin account", zap.Error(err))
			return err
		}
	}

	startTaskRunner(deps.MongoDatabase, appCfg, logger)

	return nil
}

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

func startTaskRunner(db *mongo.Database, appCfg AppConfig, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	codes := otpstore.New(db, appCfg.OTPExpiry)
	taskRunner.Register(tasks.LoginCodeCleanupJob(codes, logger))

	limits := ratelimit.New(db,
		appCfg.RateLimitLoginAttempts,
		appCfg.RateLimitLoginWindow,
		appCfg.RateLimitLoginLockout)
	taskRunner.Register(tasks.RateLimitCleanupJob(limits, logger))

	taskRunner.Start()
}
