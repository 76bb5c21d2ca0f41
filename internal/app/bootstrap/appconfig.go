// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig handles framework-level settings (HTTP ports, TLS,
// logging, CORS, body limits). AppConfig is everything specific to this
// application: database connection strings, token and OTP settings, file
// storage, SMTP, and admin seeding.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string
	MongoDatabase    string
	MongoMaxPoolSize uint64
	MongoMinPoolSize uint64

	// Bearer token configuration
	TokenKey string        // Secret key for encoding API tokens (32+ chars in production)
	TokenTTL time.Duration // How long an issued token stays valid (default: 24h)

	// OTP login configuration
	OTPExpiry time.Duration // How long a login code stays valid (default: 10m)

	// Rate limiting configuration for login attempts
	RateLimitLoginAttempts int           // Max failed attempts before lockout (default: 5)
	RateLimitLoginWindow   time.Duration // Window for counting failed attempts (default: 15m)
	RateLimitLoginLockout  time.Duration // Lockout duration after exceeding limit (default: 30m)

	// File storage configuration
	StorageType      string // "local" or "s3"
	StorageLocalPath string // Local storage path (e.g., "./uploads")
	StorageLocalURL  string // URL prefix for serving local files (e.g., "/files")

	// S3/CloudFront configuration (only used if StorageType is "s3")
	StorageS3Region    string
	StorageS3Bucket    string
	StorageS3Prefix    string
	StorageCFURL       string
	StorageCFKeyPairID string
	StorageCFKeyPath   string

	// Email/SMTP configuration
	MailSMTPHost string
	MailSMTPPort int
	MailSMTPUser string
	MailSMTPPass string
	MailFrom     string
	MailFromName string

	// Admin seeding configuration. When SeedAdminUsername is set, an
	// organizer account is created on startup if it does not exist.
	SeedAdminUsername    string
	SeedAdminEmail       string
	SeedAdminConference  string
	SeedAdminDisplayName string
}
