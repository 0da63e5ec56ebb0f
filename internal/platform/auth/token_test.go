package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestVerify_ValidToken(t *testing.T) {
	verifier := NewVerifier(testSecret)
	signed := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: "owner@corner.example",
	})

	claims, err := verifier.Verify(signed)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "owner@corner.example", claims.Email)
}

func TestVerify_WrongSecret(t *testing.T) {
	verifier := NewVerifier(testSecret)
	signed := signToken(t, "other-secret", Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})

	_, err := verifier.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	verifier := NewVerifier(testSecret)
	signed := signToken(t, testSecret, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := verifier.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingSubject(t *testing.T) {
	verifier := NewVerifier(testSecret)
	signed := signToken(t, testSecret, Claims{})

	_, err := verifier.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_RejectsUnsignedToken(t *testing.T) {
	verifier := NewVerifier(testSecret)
	token := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = verifier.Verify(signed)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Empty(t *testing.T) {
	verifier := NewVerifier(testSecret)
	_, err := verifier.Verify("   ")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestFromAuthorizationHeader(t *testing.T) {
	token, err := FromAuthorizationHeader("Bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	token, err = FromAuthorizationHeader("bearer abc.def.ghi")
	require.NoError(t, err)
	require.Equal(t, "abc.def.ghi", token)

	_, err = FromAuthorizationHeader("")
	require.ErrorIs(t, err, ErrMissingToken)

	_, err = FromAuthorizationHeader("Basic dXNlcjpwYXNz")
	require.ErrorIs(t, err, ErrInvalidToken)

	_, err = FromAuthorizationHeader("Bearer")
	require.ErrorIs(t, err, ErrInvalidToken)
}
