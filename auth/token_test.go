package auth

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var issuedAt = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func newIssuer(t *testing.T, secret string) *TokenIssuer {
	t.Helper()
	issuer, err := NewTokenIssuer([]byte(secret), 0)
	require.NoError(t, err)
	return issuer
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := newIssuer(t, "super-secret")

	tok, err := issuer.Issue("staff@school.com", issuedAt)
	require.NoError(t, err)

	sub, err := issuer.Verify(tok, issuedAt.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "staff@school.com", sub)
}

func TestTokenIssuer_DefaultTTL(t *testing.T) {
	issuer := newIssuer(t, "k")
	assert.Equal(t, 24*time.Hour, issuer.TTL())

	_, err := NewTokenIssuer(nil, time.Hour)
	assert.Error(t, err)
}

func TestTokenIssuer_ExpiryBoundary(t *testing.T) {
	issuer := newIssuer(t, "k")
	tok, err := issuer.Issue("a@school.com", issuedAt)
	require.NoError(t, err)

	expiry := issuedAt.Add(DefaultTokenTTL)

	_, err = issuer.Verify(tok, expiry.Add(-time.Second))
	assert.NoError(t, err)

	_, err = issuer.Verify(tok, expiry.Add(time.Second))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_CustomDuration(t *testing.T) {
	issuer := newIssuer(t, "k")
	tok, err := issuer.IssueFor("a@school.com", issuedAt, 10*time.Minute)
	require.NoError(t, err)

	_, err = issuer.Verify(tok, issuedAt.Add(9*time.Minute))
	assert.NoError(t, err)
	_, err = issuer.Verify(tok, issuedAt.Add(11*time.Minute))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	tok, err := newIssuer(t, "right-secret").Issue("a@school.com", issuedAt)
	require.NoError(t, err)

	_, err = newIssuer(t, "wrong-secret").Verify(tok, issuedAt)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_Rejects(t *testing.T) {
	secret := []byte("k")
	issuer := newIssuer(t, string(secret))

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject:   "a@school.com",
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	noSubject, err := issuer.IssueFor("", issuedAt, time.Hour)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "a@school.com",
	}).SignedString(secret)
	require.NoError(t, err)

	valid, err := issuer.Issue("a@school.com", issuedAt)
	require.NoError(t, err)
	parts := strings.Split(valid, ".")
	tampered := parts[0] + "." + base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"admin@school.com","exp":9999999999}`)) + "." + parts[2]

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"malformed", "not.a.jwt"},
		{"other_algorithm", hs512},
		{"missing_subject", noSubject},
		{"missing_expiry", noExpiry},
		{"tampered_payload", tampered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := issuer.Verify(tt.token, issuedAt)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestTokenIssuer_WireShape(t *testing.T) {
	tok, err := newIssuer(t, "k").Issue("a@school.com", issuedAt)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Contains(t, string(header), `"alg":"HS256"`)

	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))
	assert.Equal(t, "a@school.com", payload["sub"])
	assert.EqualValues(t, issuedAt.Add(DefaultTokenTTL).Unix(), payload["exp"])
}
