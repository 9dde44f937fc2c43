package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	manager := NewTokenManager("test-secret")

	token, err := manager.Generate(42, "ada@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, "ada@example.com", claims.Email)
}

func TestGenerateHasNoExpiry(t *testing.T) {
	manager := NewTokenManager("test-secret")

	token, err := manager.Generate(1, "ada@example.com")
	require.NoError(t, err)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Nil(t, claims.ExpiresAt)
}

func TestGenerateRejectsEmptyIdentity(t *testing.T) {
	manager := NewTokenManager("test-secret")

	_, err := manager.Generate(0, "ada@example.com")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = manager.Generate(1, "")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMissingToken(t *testing.T) {
	manager := NewTokenManager("test-secret")

	_, err := manager.Validate("")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = manager.Validate("   ")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestValidateTamperedToken(t *testing.T) {
	manager := NewTokenManager("test-secret")

	token, err := manager.Generate(42, "ada@example.com")
	require.NoError(t, err)

	_, err = manager.Validate(token + "x")
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateWrongSecret(t *testing.T) {
	manager := NewTokenManager("test-secret")
	other := NewTokenManager("other-secret")

	token, err := manager.Generate(42, "ada@example.com")
	require.NoError(t, err)

	_, err = other.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsUnsignedToken(t *testing.T) {
	manager := NewTokenManager("test-secret")

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{UserID: 42, Email: "ada@example.com"})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}
