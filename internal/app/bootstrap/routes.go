// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/fileserver"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	abstractsfeature "github.com/sciengasummits/confadmin/internal/app/features/abstractsapi"
	authfeature "github.com/sciengasummits/confadmin/internal/app/features/authapi"
	contentfeature "github.com/sciengasummits/confadmin/internal/app/features/contentapi"
	discountsfeature "github.com/sciengasummits/confadmin/internal/app/features/discountsapi"
	healthfeature "github.com/sciengasummits/confadmin/internal/app/features/health"
	registrationsfeature "github.com/sciengasummits/confadmin/internal/app/features/registrationsapi"
	speakersfeature "github.com/sciengasummits/confadmin/internal/app/features/speakersapi"
	sponsorsfeature "github.com/sciengasummits/confadmin/internal/app/features/sponsorsapi"
	uploadfeature "github.com/sciengasummits/confadmin/internal/app/features/uploadapi"
	abstractstore "github.com/sciengasummits/confadmin/internal/app/store/abstracts"
	adminstore "github.com/sciengasummits/confadmin/internal/app/store/admins"
	contentstore "github.com/sciengasummits/confadmin/internal/app/store/content"
	discountstore "github.com/sciengasummits/confadmin/internal/app/store/discounts"
	otpstore "github.com/sciengasummits/confadmin/internal/app/store/otp"
	"github.com/sciengasummits/confadmin/internal/app/store/ratelimit"
	registrationstore "github.com/sciengasummits/confadmin/internal/app/store/registrations"
	speakerstore "github.com/sciengasummits/confadmin/internal/app/store/speakers"
	sponsorstore "github.com/sciengasummits/confadmin/internal/app/store/sponsors"
	"github.com/sciengasummits/confadmin/internal/app/system/apicors"
	"github.com/sciengasummits/confadmin/internal/app/system/auth"
	"github.com/sciengasummits/confadmin/internal/app/system/tenant"
)

// BuildHandler constructs the root HTTP handler for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup,
// and the Startup hook have completed. All API routes live under /api
// and are tenant-scoped: the tenant middleware resolves the conference
// from the X-Conference-ID header before any feature handler runs.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokenManager(appCfg.TokenKey, appCfg.TokenTTL)
	if err != nil {
		logger.Error("token manager init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORSFromConfig(coreCfg))
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Health check endpoints for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded files (local storage only). S3 uploads are served from
	// CloudFront directly.
	if appCfg.StorageType == "local" || appCfg.StorageType == "" {
		r.Handle(appCfg.StorageLocalURL+"/*", fileserver.Handler(appCfg.StorageLocalURL, appCfg.StorageLocalPath))
	}

	// Tenant-scoped API. The admin dashboard is a separate SPA served
	// from its own origin, so these routes get the permissive API CORS
	// policy on top of the configured one.
	r.Route("/api", func(r chi.Router) {
		r.Use(apicors.Middleware())
		r.Use(tenant.Middleware(logger))

		// Authentication: OTP generation and login
		limiter := ratelimit.New(db,
			appCfg.RateLimitLoginAttempts,
			appCfg.RateLimitLoginWindow,
			appCfg.RateLimitLoginLockout)
		authHandler := authfeature.NewHandler(
			adminstore.New(db),
			otpstore.New(db, appCfg.OTPExpiry),
			limiter,
			tokens,
			deps.Mailer,
			appCfg.OTPExpiry,
			logger,
		)
		r.Mount("/auth", authfeature.Routes(authHandler))

		// Content slots: public reads, authenticated writes
		contentHandler := contentfeature.NewHandler(contentstore.New(db), logger)
		r.Mount("/content", contentfeature.Routes(contentHandler, tokens, logger))

		// Speakers and sponsors
		speakersHandler := speakersfeature.NewHandler(speakerstore.New(db), logger)
		r.Mount("/speakers", speakersfeature.Routes(speakersHandler, tokens, logger))

		sponsorsHandler := sponsorsfeature.NewHandler(sponsorstore.New(db), logger)
		r.Mount("/sponsors", sponsorsfeature.Routes(sponsorsHandler, tokens, logger))

		// Image uploads for speaker photos and sponsor logos
		uploadHandler := uploadfeature.NewHandler(deps.FileStorage, logger)
		r.Mount("/upload", uploadfeature.Routes(uploadHandler, tokens, logger))

		// Discount codes
		discountsHandler := discountsfeature.NewHandler(discountstore.New(db), logger)
		r.Mount("/discounts", discountsfeature.Routes(discountsHandler, tokens, logger))

		// Abstract submissions and registrations
		abstractsHandler := abstractsfeature.NewHandler(abstractstore.New(db), logger)
		r.Mount("/abstracts", abstractsfeature.Routes(abstractsHandler, tokens, logger))

		registrationsHandler := registrationsfeature.NewHandler(registrationstore.New(db), logger)
		r.Mount("/registrations", registrationsfeature.Routes(registrationsHandler, tokens, logger))
	})

	return r, nil
}
