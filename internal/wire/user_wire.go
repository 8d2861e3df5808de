package wire

import (
	"cinema-tickets/internal/adaptor"
	"cinema-tickets/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireUser configures profile routes with role-based access control
func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	log *zap.Logger,
) {
	// ==================== PROTECTED USER ROUTES ====================
	// Profile read/update - owner or admin; the service enforces policy
	r.With(middleware.RequireUser()).Get("/api/users/{id}", userHandler.Get)
	r.With(middleware.RequireUser()).Put("/api/users/{id}", userHandler.Update)

	// ==================== ADMIN ROUTES ====================
	r.With(middleware.Admin()).Route("/api/admin/users", func(r chi.Router) {
		r.Get("/", userHandler.List)          // GET /api/admin/users
		r.Delete("/{id}", userHandler.Delete) // DELETE /api/admin/users/{user-id}
	})
}
