package auth

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	apperrors "deskhive/internal/errors"
)

type contextKey string

const (
	orgIDKey  contextKey = "org_id"
	userIDKey contextKey = "user_id"
)

// Middleware validates the bearer token and injects the caller's
// organization and user ids into the request context. Every data query
// downstream is scoped by the organization id taken from here.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apperrors.ErrUnauthorized("missing bearer token").Write(w)
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		secret := os.Getenv("JWT_SECRET")
		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			apperrors.ErrUnauthorized("invalid token").Write(w)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			apperrors.ErrUnauthorized("invalid token").Write(w)
			return
		}
		orgID, okOrg := claims["org_id"].(float64)
		userID, okUser := claims["user_id"].(float64)
		if !okOrg || !okUser {
			apperrors.ErrUnauthorized("token missing organization claims").Write(w)
			return
		}

		ctx := context.WithValue(r.Context(), orgIDKey, int64(orgID))
		ctx = context.WithValue(ctx, userIDKey, int64(userID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OrgID extracts the caller's organization id from the request context.
func OrgID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(orgIDKey).(int64)
	return id, ok
}

// UserID extracts the caller's user id from the request context.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}
