package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	svc := NewTokenService("test-secret-that-is-long-enough", time.Hour)
	id := int64(42)

	token, err := svc.Issue("ada@example.com", &id)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", claims.Email())
	require.NotNil(t, claims.UserID)
	assert.Equal(t, int64(42), *claims.UserID)
}

func TestIssueWithoutUserID(t *testing.T) {
	svc := NewTokenService("test-secret-that-is-long-enough", time.Hour)

	token, err := svc.Issue("ada@example.com", nil)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Nil(t, claims.UserID)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := NewTokenService("test-secret-that-is-long-enough", time.Minute)
	issuedAt := time.Now().Add(-time.Hour)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue("ada@example.com", nil)
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.Verify(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenService("secret-one-secret-one-secret-one", time.Hour)
	verifier := NewTokenService("secret-two-secret-two-secret-two", time.Hour)

	token, err := issuer.Issue("ada@example.com", nil)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsOtherAlgorithms(t *testing.T) {
	svc := NewTokenService("test-secret-that-is-long-enough", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "ada@example.com"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMissingSecret(t *testing.T) {
	svc := NewTokenService("", 0)

	_, err := svc.Issue("ada@example.com", nil)
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = svc.Verify("anything")
	assert.ErrorIs(t, err, ErrMissingSecret)
	assert.Equal(t, 24*time.Hour, svc.TTL())
}
