// Package auth holds the authentication and authorization subsystem: bearer
// token issuance and verification, password hashing, the credential store
// contract and the role checks used by protected routes.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 24 * time.Hour

// TokenIssuer signs and verifies HS256 bearer tokens carrying the account
// email in "sub" and the expiry in "exp". It is safe for concurrent use.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenIssuer copies secret and falls back to DefaultTokenTTL when ttl is
// not positive. An empty secret is rejected.
func NewTokenIssuer(secret []byte, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth: empty signing secret")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &TokenIssuer{secret: key, ttl: ttl}, nil
}

func (i *TokenIssuer) TTL() time.Duration { return i.ttl }

// Issue mints a token for email that expires ttl after now.
func (i *TokenIssuer) Issue(email string, now time.Time) (string, error) {
	return i.IssueFor(email, now, i.ttl)
}

// IssueFor mints a token for email with an explicit lifetime.
func (i *TokenIssuer) IssueFor(email string, now time.Time, ttl time.Duration) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("auth: sign token: %w", err)
	}
	return signed, nil
}

// Verify returns the subject email of a token that is correctly signed and
// unexpired at now. Every failure matches ErrInvalidToken; the jwt cause is
// kept in the chain for logging only.
func (i *TokenIssuer) Verify(tokenStr string, now time.Time) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (any, error) {
			return i.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
