package authapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	adminstore "github.com/sciengasummits/confadmin/internal/app/store/admins"
	otpstore "github.com/sciengasummits/confadmin/internal/app/store/otp"
	"github.com/sciengasummits/confadmin/internal/app/store/ratelimit"
	"github.com/sciengasummits/confadmin/internal/app/system/auth"
	"github.com/sciengasummits/confadmin/internal/app/system/mailer"
	"github.com/sciengasummits/confadmin/internal/domain/models"
	"github.com/sciengasummits/confadmin/internal/testutil"
)

// fakeSender captures outgoing mail instead of talking SMTP.
type fakeSender struct {
	sent []mailer.Email
	fail bool
}

func (f *fakeSender) Send(email mailer.Email) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.sent = append(f.sent, email)
	return nil
}

var codePattern = regexp.MustCompile(`\b(\d{6})\b`)

func (f *fakeSender) lastCode(t *testing.T) string {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatal("no email was sent")
	}
	m := codePattern.FindStringSubmatch(f.sent[len(f.sent)-1].TextBody)
	if m == nil {
		t.Fatalf("no code in email body: %q", f.sent[len(f.sent)-1].TextBody)
	}
	return m[1]
}

type fixture struct {
	handler *Handler
	sender  *fakeSender
	admins  *adminstore.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.SetupTestDB(t)

	tokens, err := auth.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	sender := &fakeSender{}
	admins := adminstore.New(db)
	h := NewHandler(
		admins,
		otpstore.New(db, 10*time.Minute),
		ratelimit.New(db, 5, 15*time.Minute, 30*time.Minute),
		tokens,
		sender,
		10*time.Minute,
		zap.NewNop(),
	)
	return &fixture{handler: h, sender: sender, admins: admins}
}

func (f *fixture) seedAdmin(t *testing.T, username, conference string) models.AdminUser {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := f.admins.Create(ctx, models.AdminUser{
		Username:    username,
		Email:       username + "@example.org",
		Conference:  conference,
		DisplayName: "Dr. " + username,
	})
	if err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	return u
}

func (f *fixture) serve(req *http.Request) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Mount("/api/auth", Routes(f.handler))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGenerateOTPKnownUser(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, "organizer", models.ConferenceLiutex)

	req := testutil.NewRequest(t, http.MethodPost, "/api/auth/generate-otp", "",
		map[string]string{"username": "organizer"})
	rec := f.serve(req)

	testutil.AssertStatus(t, rec, http.StatusOK)
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if !body.Success {
		t.Fatalf("body = %+v", body)
	}
	if len(f.sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(f.sender.sent))
	}
	if f.sender.sent[0].To != "organizer@example.org" {
		t.Fatalf("email to %q", f.sender.sent[0].To)
	}
}

func TestGenerateOTPUnknownUserSameResponse(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, "organizer", models.ConferenceLiutex)

	known := f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/generate-otp", "",
		map[string]string{"username": "organizer"}))
	unknown := f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/generate-otp", "",
		map[string]string{"username": "nobody"}))

	testutil.AssertStatus(t, known, http.StatusOK)
	testutil.AssertStatus(t, unknown, http.StatusOK)
	if known.Body.String() != unknown.Body.String() {
		t.Fatalf("responses differ:\nknown:   %s\nunknown: %s", known.Body.String(), unknown.Body.String())
	}
	if len(f.sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1 (none for unknown user)", len(f.sender.sent))
	}
}

func TestGenerateOTPMailFailure(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, "organizer", models.ConferenceLiutex)
	f.sender.fail = true

	rec := f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/generate-otp", "",
		map[string]string{"username": "organizer"}))

	testutil.AssertStatus(t, rec, http.StatusInternalServerError)
	testutil.AssertErrorBody(t, rec, "failed to send")
}

func TestLoginFlow(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, "organizer", models.ConferenceFoodAgri)

	f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/generate-otp", "",
		map[string]string{"username": "organizer"}))
	code := f.sender.lastCode(t)

	rec := f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "organizer", "otp": code}))

	testutil.AssertStatus(t, rec, http.StatusOK)
	var body struct {
		Success      bool   `json:"success"`
		Token        string `json:"token"`
		Username     string `json:"username"`
		ConferenceID string `json:"conferenceId"`
		DisplayName  string `json:"displayName"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if !body.Success || body.Token == "" {
		t.Fatalf("body = %+v", body)
	}
	if body.Username != "organizer" || body.ConferenceID != models.ConferenceFoodAgri {
		t.Fatalf("body = %+v", body)
	}
	if body.DisplayName != "Dr. organizer" {
		t.Fatalf("displayName = %q", body.DisplayName)
	}
}

func TestLoginWrongCode(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, "organizer", models.ConferenceLiutex)

	f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/generate-otp", "",
		map[string]string{"username": "organizer"}))

	rec := f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "organizer", "otp": "000000"}))

	testutil.AssertStatus(t, rec, http.StatusUnauthorized)
	var body struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, rec, &body)
	if body.Success {
		t.Fatalf("body = %+v", body)
	}
}

func TestLoginCodeSingleUse(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, "organizer", models.ConferenceLiutex)

	f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/generate-otp", "",
		map[string]string{"username": "organizer"}))
	code := f.sender.lastCode(t)

	first := f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "organizer", "otp": code}))
	testutil.AssertStatus(t, first, http.StatusOK)

	second := f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "organizer", "otp": code}))
	testutil.AssertStatus(t, second, http.StatusUnauthorized)
}

func TestRepeatedFailuresLockOut(t *testing.T) {
	f := newFixture(t)
	f.seedAdmin(t, "organizer", models.ConferenceLiutex)

	var rec *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		rec = f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/login", "",
			map[string]string{"username": "organizer", "otp": "000000"}))
	}
	testutil.AssertStatus(t, rec, http.StatusTooManyRequests)

	// Even with a fresh, valid code, the lockout holds.
	f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/generate-otp", "",
		map[string]string{"username": "organizer"}))
	rec = f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "organizer", "otp": "111111"}))
	testutil.AssertStatus(t, rec, http.StatusTooManyRequests)
}

func TestLoginMissingFields(t *testing.T) {
	f := newFixture(t)

	rec := f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/login", "",
		map[string]string{"username": "organizer"}))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)

	rec = f.serve(testutil.NewRequest(t, http.MethodPost, "/api/auth/generate-otp", "",
		map[string]string{"username": "   "}))
	testutil.AssertStatus(t, rec, http.StatusBadRequest)
}
