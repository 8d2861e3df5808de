package middleware

import (
	"net/http"

	"cinema-tickets/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity reads the actor identity injected by the authenticating
// gateway. Authentication itself happens upstream; by the time a
// request reaches this service the X-User-Id and X-User-Role headers
// carry a validated identity and role flag. Requests without the
// headers pass through anonymous so public routes keep working.
func Identity(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rawID := r.Header.Get("X-User-Id")
			if rawID == "" {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.Parse(rawID)
			if err != nil {
				logger.Warn("Malformed identity header",
					zap.String("user_id", rawID),
					zap.String("path", r.URL.Path),
				)
				utils.ResponseUnauthorized(w, "Invalid identity")
				return
			}

			role := r.Header.Get("X-User-Role")
			if role == "" {
				role = "customer"
			}

			ctx := utils.SetUserContext(r.Context(), userID, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser rejects requests that carry no actor identity.
func RequireUser() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Admin rejects requests whose actor does not carry the admin role.
func Admin() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			role, _ := utils.GetRoleFromContext(r.Context())
			if role != "admin" {
				utils.ResponseForbidden(w, "Admin access required")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
