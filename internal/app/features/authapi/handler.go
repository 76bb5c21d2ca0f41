// Package authapi implements OTP login for conference organizers.
//
// Endpoints (mounted at /api/auth):
//   - POST /api/auth/generate-otp - email a one-time login code
//   - POST /api/auth/login        - redeem a code for a bearer token
//
// generate-otp never reveals whether a username exists; its response is
// the same either way. Failed logins count against a per-username rate
// limit window and eventually lock the account out for a while.
package authapi

import (
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	adminstore "github.com/sciengasummits/confadmin/internal/app/store/admins"
	otpstore "github.com/sciengasummits/confadmin/internal/app/store/otp"
	"github.com/sciengasummits/confadmin/internal/app/store/ratelimit"
	"github.com/sciengasummits/confadmin/internal/app/system/auth"
	"github.com/sciengasummits/confadmin/internal/app/system/jsonutil"
	"github.com/sciengasummits/confadmin/internal/app/system/mailer"
	"github.com/sciengasummits/confadmin/internal/app/system/normalize"
	"github.com/sciengasummits/confadmin/internal/domain/models"
)

// Handler handles OTP login requests.
type Handler struct {
	admins    *adminstore.Store
	codes     *otpstore.Store
	limiter   *ratelimit.Store
	tokens    *auth.TokenManager
	mail      mailer.Sender
	otpExpiry time.Duration
	logger    *zap.Logger
}

// NewHandler creates a new authapi handler.
func NewHandler(
	admins *adminstore.Store,
	codes *otpstore.Store,
	limiter *ratelimit.Store,
	tokens *auth.TokenManager,
	mail mailer.Sender,
	otpExpiry time.Duration,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		admins:    admins,
		codes:     codes,
		limiter:   limiter,
		tokens:    tokens,
		mail:      mail,
		otpExpiry: otpExpiry,
		logger:    logger,
	}
}

// neutralMessage is the generate-otp response for known and unknown
// usernames alike.
const neutralMessage = "If the account exists, a login code has been sent."

// GenerateOTPHandler handles POST /api/auth/generate-otp.
func (h *Handler) GenerateOTPHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	username := normalize.Username(in.Username)
	if username == "" {
		jsonutil.BadRequest(w, "username is required")
		return
	}

	allowed, _, lockedUntil := h.limiter.CheckAllowed(r.Context(), username)
	if !allowed {
		h.logger.Warn("otp request while locked out", zap.String("username", username))
		jsonutil.Failure(w, http.StatusTooManyRequests, lockoutMessage(lockedUntil))
		return
	}

	admin, err := h.admins.GetByUsername(r.Context(), username)
	if err != nil || admin.Disabled {
		// Unknown or disabled account: same response, and the request
		// still counts against the window so usernames cannot be
		// enumerated by grinding this endpoint.
		h.limiter.RecordFailure(r.Context(), username)
		jsonutil.Success(w, neutralMessage)
		return
	}

	code, err := h.codes.Create(r.Context(), username)
	if err != nil {
		h.logger.Error("failed to create login code", zap.String("username", username), zap.Error(err))
		jsonutil.InternalError(w, "failed to generate login code")
		return
	}

	conferenceName := admin.Conference
	if conf, ok := models.ConferenceByID(admin.Conference); ok {
		conferenceName = conf.Name
	}
	text, html := mailer.LoginCodeEmail(mailer.LoginCodeEmailData{
		ConferenceName: conferenceName,
		Code:           code,
		ExpiryMin:      int(h.otpExpiry.Minutes()),
	})

	if err := h.mail.Send(mailer.Email{
		To:       admin.Email,
		Subject:  fmt.Sprintf("%s admin login code", conferenceName),
		TextBody: text,
		HTMLBody: html,
	}); err != nil {
		h.logger.Error("failed to send login code email",
			zap.String("username", username),
			zap.Error(err))
		jsonutil.InternalError(w, "failed to send login code")
		return
	}

	h.logger.Info("login code sent", zap.String("username", username))
	jsonutil.Success(w, neutralMessage)
}

// LoginHandler handles POST /api/auth/login.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		OTP      string `json:"otp"`
	}
	if err := jsonutil.Decode(r, &in); err != nil {
		jsonutil.BadRequest(w, "invalid JSON payload")
		return
	}
	username := normalize.Username(in.Username)
	code := normalize.Code(in.OTP)
	if username == "" || code == "" {
		jsonutil.BadRequest(w, "username and otp are required")
		return
	}

	allowed, _, lockedUntil := h.limiter.CheckAllowed(r.Context(), username)
	if !allowed {
		h.logger.Warn("login attempt while locked out", zap.String("username", username))
		jsonutil.Failure(w, http.StatusTooManyRequests, lockoutMessage(lockedUntil))
		return
	}

	if err := h.codes.Verify(r.Context(), username, code); err != nil {
		if err == otpstore.ErrInvalidCode {
			lockedOut, until := h.limiter.RecordFailure(r.Context(), username)
			if lockedOut {
				jsonutil.Failure(w, http.StatusTooManyRequests, lockoutMessage(until))
				return
			}
			jsonutil.Failure(w, http.StatusUnauthorized, "invalid or expired code")
			return
		}
		h.logger.Error("failed to verify login code", zap.String("username", username), zap.Error(err))
		jsonutil.InternalError(w, "failed to verify login code")
		return
	}

	admin, err := h.admins.GetByUsername(r.Context(), username)
	if err != nil || admin.Disabled {
		// The code verified but the account is gone or disabled.
		jsonutil.Failure(w, http.StatusUnauthorized, "account is not available")
		return
	}

	token, err := h.tokens.Issue(auth.Claims{
		Username:    admin.Username,
		Conference:  admin.Conference,
		DisplayName: admin.DisplayName,
	})
	if err != nil {
		h.logger.Error("failed to issue token", zap.String("username", username), zap.Error(err))
		jsonutil.InternalError(w, "failed to issue token")
		return
	}

	if err := h.limiter.ClearOnSuccess(r.Context(), username); err != nil {
		h.logger.Warn("failed to clear rate limit", zap.String("username", username), zap.Error(err))
	}

	h.logger.Info("login succeeded",
		zap.String("username", admin.Username),
		zap.String("conference", admin.Conference))

	jsonutil.OK(w, map[string]any{
		"success":      true,
		"token":        token,
		"username":     admin.Username,
		"conferenceId": admin.Conference,
		"displayName":  admin.DisplayName,
	})
}

func lockoutMessage(until *time.Time) string {
	if until == nil {
		return "too many failed attempts, try again later"
	}
	wait := time.Until(*until).Round(time.Minute)
	if wait < time.Minute {
		wait = time.Minute
	}
	return fmt.Sprintf("too many failed attempts, try again in %s", wait)
}
