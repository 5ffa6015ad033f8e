package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenTTL is how long issued bearer tokens stay valid
const TokenTTL = time.Hour

// TokenSource mints short-lived JWT bearer tokens for the Feature.fm API
type TokenSource struct {
	Issuer  string
	Subject string // the API key
	Secret  []byte

	now func() time.Time
}

// NewTokenSource creates a TokenSource for the given credentials
func NewTokenSource(issuer, apiKey, secret string) *TokenSource {
	return &TokenSource{
		Issuer:  issuer,
		Subject: apiKey,
		Secret:  []byte(secret),
		now:     time.Now,
	}
}

// SetClock overrides the token clock (used by tests)
func (ts *TokenSource) SetClock(now func() time.Time) {
	ts.now = now
}

// Bearer returns a signed HS256 token with the standard harness claims
func (ts *TokenSource) Bearer() (string, error) {
	now := ts.now()
	claims := jwt.MapClaims{
		"iss": ts.Issuer,
		"sub": ts.Subject,
		"iat": now.Unix(),
		"exp": now.Add(TokenTTL).Unix(),
		"jti": uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(ts.Secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
