// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"github.com/sciengasummits/confadmin/internal/app/store/otp"
	"github.com/sciengasummits/confadmin/internal/app/store/ratelimit"
	"go.uber.org/zap"
)

// LoginCodeCleanupJob removes expired and consumed login codes. The TTL
// index on the collection does the same eventually; this keeps the
// window tighter than Mongo's background sweep.
func LoginCodeCleanupJob(codes *otpstore.Store, logger *zap.Logger) Job {
	return Job{
		Name:     "login-code-cleanup",
		Interval: 1 * time.Hour,
		Run: func(ctx context.Context) error {
			deleted, err := codes.DeleteExpired(ctx)
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("cleaned up expired login codes",
					zap.Int64("deleted", deleted))
			}
			return nil
		},
	}
}

// RateLimitCleanupJob removes login attempt records that have been idle
// long enough that they no longer affect any lockout decision.
func RateLimitCleanupJob(limits *ratelimit.Store, logger *zap.Logger) Job {
	return Job{
		Name:     "rate-limit-cleanup",
		Interval: 6 * time.Hour,
		Run: func(ctx context.Context) error {
			deleted, err := limits.DeleteStale(ctx, 24*time.Hour)
			if err != nil {
				return err
			}
			if deleted > 0 {
				logger.Info("cleaned up stale login attempt records",
					zap.Int64("deleted", deleted))
			}
			return nil
		},
	}
}
