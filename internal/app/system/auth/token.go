// Package auth issues and verifies the bearer tokens the admin dashboard
// holds after OTP login.
//
// Tokens are securecookie-encoded claims (username, conference, display
// name) signed and encrypted with the configured token key. They are
// carried in the Authorization header, never in cookies, so the API has
// no CSRF surface.
package auth

import (
	"crypto/sha256"
	"errors"
	"time"

	"github.com/gorilla/securecookie"
)

// tokenName is the securecookie codec name the claims are registered
// under. It is part of the signed payload, so tokens minted by other
// services with the same key still do not verify here.
const tokenName = "confadmin_token"

// Claims identify an authenticated organizer session.
type Claims struct {
	Username    string
	Conference  string
	DisplayName string
	IssuedAt    int64 // Unix seconds
}

// TokenManager encodes and decodes bearer tokens.
type TokenManager struct {
	sc  *securecookie.SecureCookie
	ttl time.Duration
}

// ErrInvalidToken is returned for tokens that fail to decode or are expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// NewTokenManager creates a TokenManager. The key must be at least 32
// characters; hash and block keys are derived from it so a single
// configured secret covers both signing and encryption.
func NewTokenManager(key string, ttl time.Duration) (*TokenManager, error) {
	if len(key) < 32 {
		return nil, errors.New("token key must be at least 32 characters")
	}
	hashKey := sha256.Sum256([]byte("confadmin-hash:" + key))
	blockKey := sha256.Sum256([]byte("confadmin-block:" + key))

	sc := securecookie.New(hashKey[:], blockKey[:])
	sc.MaxAge(int(ttl.Seconds()))

	return &TokenManager{sc: sc, ttl: ttl}, nil
}

// Issue mints a token for the given claims.
func (m *TokenManager) Issue(c Claims) (string, error) {
	if c.IssuedAt == 0 {
		c.IssuedAt = time.Now().Unix()
	}
	return m.sc.Encode(tokenName, c)
}

// Verify decodes and validates a token, returning its claims.
// securecookie enforces the MaxAge set at construction, so expired
// tokens fail to decode.
func (m *TokenManager) Verify(token string) (Claims, error) {
	var c Claims
	if err := m.sc.Decode(tokenName, token, &c); err != nil {
		return Claims{}, ErrInvalidToken
	}
	return c, nil
}
