package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "guestportal/internal/delivery/http/helpers"
	"guestportal/internal/domain"
)

type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "role"
)

// SetIdentity returns a context carrying the authenticated user's ID and role.
func SetIdentity(ctx context.Context, userID int64, role domain.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, roleKey, role)
}

// IdentityFromContext returns the authenticated user's ID and role, if present.
func IdentityFromContext(ctx context.Context) (int64, domain.Role, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	if !ok {
		return 0, "", false
	}
	role, ok := ctx.Value(roleKey).(domain.Role)
	if !ok {
		return 0, "", false
	}
	return id, role, true
}

// bearerToken extracts the token from the Authorization header. The second
// return value names the failure for the 401 message.
func bearerToken(r *http.Request) (string, string) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", "Missing authorization header"
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", "Invalid authorization format"
	}
	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", "Missing token"
	}
	return token, ""
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// caller's identity in the request context. If the token is missing or
// invalid, it responds with 401 and does not call next.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, reason := bearerToken(r)
			if token == "" {
				h.WriteError(w, http.StatusUnauthorized, reason)
				return
			}
			claims, err := verifier.Verify(token)
			if err != nil {
				h.WriteError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}
			r = r.WithContext(SetIdentity(r.Context(), claims.UserID, claims.Role))
			next(w, r)
		}
	}
}

// RequireRole returns a wrapper like RequireAuth that additionally rejects
// callers whose token role does not match the required role, with 403.
func RequireRole(verifier domain.TokenVerifier, logger *slog.Logger, role domain.Role) func(http.HandlerFunc) http.HandlerFunc {
	requireAuth := RequireAuth(verifier, logger)
	return func(next http.HandlerFunc) http.HandlerFunc {
		return requireAuth(func(w http.ResponseWriter, r *http.Request) {
			_, callerRole, ok := IdentityFromContext(r.Context())
			if !ok || callerRole != role {
				logger.Warn("role check failed", "path", r.URL.Path, "required", role, "actual", callerRole)
				h.WriteError(w, http.StatusForbidden, "Forbidden")
				return
			}
			next(w, r)
		})
	}
}
