package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/dealdesk/dealdesk-backend/internal/entity"
	"github.com/dealdesk/dealdesk-backend/internal/infra/integration/authapi"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the resolved caller attached to the request context.
type Identity struct {
	ID    string
	Email string
}

type IdentityVerifier interface {
	GetUser(ctx context.Context, token string) (*authapi.User, error)
}

// Authenticator rejects requests without a valid bearer token before any
// downstream work happens.
func Authenticator(verifier IdentityVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing authorization header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "invalid authorization header")
				return
			}

			user, err := verifier.GetUser(r.Context(), token)
			if err != nil {
				unauthorized(w, "invalid or expired token")
				return
			}

			identity := Identity{ID: user.ID, Email: user.Email}
			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin runs after Authenticator and gates on the caller's stored role.
// It costs one extra profile lookup per request.
func RequireAdmin(profiles entity.ProfileRepositoryInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := IdentityFrom(r.Context())
			if !ok {
				unauthorized(w, "missing authorization header")
				return
			}

			profile, err := profiles.FindByID(r.Context(), identity.ID)
			if err != nil {
				if errors.Is(err, entity.ErrProfileNotFound) {
					forbidden(w, "admin role required")
					return
				}
				writeError(w, http.StatusBadGateway, err.Error())
				return
			}

			if !profile.IsAdmin() {
				forbidden(w, "admin role required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFrom returns the authenticated caller stored by Authenticator.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// WithIdentity is a test hook for handlers that read the caller from context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func unauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, message)
}

func forbidden(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
