package auth

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	apperrors "github.com/LuisDeAnda17/concept-backend-sub002/server/internal/errors"
)

func TestAuthenticateRoundTrip(t *testing.T) {
	ctx := context.Background()
	authenticator := NewJWTAuthenticator("test-secret")

	token, err := authenticator.IssueToken("u1")
	require.NoError(t, err)

	owner, err := authenticator.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "u1", owner)
}

func TestAuthenticateRejectsEmptyToken(t *testing.T) {
	authenticator := NewJWTAuthenticator("test-secret")
	_, err := authenticator.Authenticate(context.Background(), "")
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthenticated))
}

func TestAuthenticateRejectsWrongSecret(t *testing.T) {
	issuer := NewJWTAuthenticator("secret-a")
	verifier := NewJWTAuthenticator("secret-b")

	token, err := issuer.IssueToken("u1")
	require.NoError(t, err)

	_, err = verifier.Authenticate(context.Background(), token)
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthenticated))
}

func TestAuthenticateRejectsMissingSubject(t *testing.T) {
	authenticator := NewJWTAuthenticator("test-secret")
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{}).
		SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = authenticator.Authenticate(context.Background(), token)
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthenticated))
}

func TestAuthenticateRejectsGarbage(t *testing.T) {
	authenticator := NewJWTAuthenticator("test-secret")
	_, err := authenticator.Authenticate(context.Background(), "not.a.jwt")
	require.True(t, apperrors.IsCode(err, apperrors.ErrCodeUnauthenticated))
}
