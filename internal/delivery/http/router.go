package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"guestportal/internal/delivery/http/controllers"
	"guestportal/internal/delivery/http/middleware"
	"guestportal/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Every invitation route requires a valid token.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	invitationController *controllers.InvitationController,
	healthController *controllers.HealthController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier, logger)

	// Auth
	mux.HandleFunc("POST /api/auth/login", authController.Login)

	// Invitations
	mux.HandleFunc("POST /api/invitations", auth(invitationController.Create))
	mux.HandleFunc("GET /api/invitations", auth(invitationController.List))
	mux.HandleFunc("GET /api/invitations/{id}", auth(invitationController.GetByID))
	mux.HandleFunc("PUT /api/invitations/{id}", auth(invitationController.Update))
	mux.HandleFunc("DELETE /api/invitations/{id}", auth(invitationController.Delete))
	mux.HandleFunc("POST /api/invitations/{id}/send", auth(invitationController.Send))

	// Health
	mux.HandleFunc("GET /api/health", healthController.Check)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
