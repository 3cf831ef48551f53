package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	tok := NewTokens("test-secret", time.Hour)

	s, err := tok.Generate(42, "ada")
	require.NoError(t, err)

	claims, err := tok.Validate(s)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "ada", claims.Username)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 5*time.Second)
}

func TestValidateExpired(t *testing.T) {
	tok := NewTokens("test-secret", time.Minute)
	tok.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	s, err := tok.Generate(1, "ada")
	require.NoError(t, err)

	tok.now = time.Now
	_, err = tok.Validate(s)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateRejectsOtherSecret(t *testing.T) {
	s, err := NewTokens("one", time.Hour).Generate(1, "ada")
	require.NoError(t, err)

	_, err = NewTokens("two", time.Hour).Validate(s)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbageAndNone(t *testing.T) {
	tok := NewTokens("test-secret", time.Hour)

	_, err := tok.Validate("not.a.token")
	require.ErrorIs(t, err, ErrInvalidToken)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": 1,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	s, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = tok.Validate(s)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRequiresSubject(t *testing.T) {
	tok := NewTokens("test-secret", time.Hour)
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tok.Validate(s)
	require.ErrorIs(t, err, ErrInvalidToken)
}
