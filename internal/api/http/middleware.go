package http

import (
	"context"
	"net/http"
	"strings"

	firebaseauth "firebase.google.com/go/v4/auth"

	"partyhub-backend/internal/security"
)

type contextKey string

const userIDKey contextKey = "user_id"

// TokenVerifier turns a bearer token into the caller's user id.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// firebaseVerifier validates Firebase ID tokens issued to the mobile app.
type firebaseVerifier struct {
	client *firebaseauth.Client
}

func NewFirebaseVerifier(client *firebaseauth.Client) TokenVerifier {
	return &firebaseVerifier{client: client}
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (string, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return "", err
	}
	return decoded.UID, nil
}

// localVerifier validates HS256 tokens from the local development auth mode.
type localVerifier struct {
	tokens security.TokenManager
}

func NewLocalVerifier(tokens security.TokenManager) TokenVerifier {
	return &localVerifier{tokens: tokens}
}

func (v *localVerifier) Verify(ctx context.Context, token string) (string, error) {
	claims, err := v.tokens.ValidateToken(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// AuthMiddleware extracts and verifies the bearer token, stashing the caller's
// user id in the request context.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeErrorMessage(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			userID, err := verifier.Verify(r.Context(), strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeErrorMessage(w, http.StatusUnauthorized, "invalid token")
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated caller's id from the request context.
func UserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}
