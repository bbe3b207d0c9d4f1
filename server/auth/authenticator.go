// Package auth is the ownership/authorization collaborator boundary. The
// day-index core never verifies identity itself; its operations take the
// already-authenticated owner as a plain parameter. This package turns a
// session token into that owner identity.
package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/LuisDeAnda17/concept-backend-sub002/server/internal/errors"
)

// Authenticator resolves a session token to an authenticated owner identity.
type Authenticator interface {
	// Authenticate returns the owner identity encoded in the token, or an
	// UNAUTHENTICATED error.
	Authenticate(ctx context.Context, token string) (string, error)
}

// JWTAuthenticator verifies HMAC-signed session tokens whose subject claim
// carries the owner identity.
type JWTAuthenticator struct {
	secret []byte
}

// NewJWTAuthenticator creates an authenticator for the given signing secret.
func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

// Authenticate implements Authenticator.
func (a *JWTAuthenticator) Authenticate(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", apperrors.Unauthenticated("missing session token")
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", apperrors.Unauthenticated("invalid session token")
	}

	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", apperrors.Unauthenticated("session token has no subject")
	}
	return subject, nil
}

// IssueToken signs a session token for the given owner. Used by tests and
// development tooling; production tokens come from the identity provider.
func (a *JWTAuthenticator) IssueToken(owner string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": owner,
	})
	return token.SignedString(a.secret)
}
