package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "guestportal/internal/delivery/http/helpers"
	"guestportal/internal/domain"
)

// LoginRequest is the request body for POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate implements helpers.Validator.
func (l LoginRequest) Validate() []domain.FieldViolation {
	var violations []domain.FieldViolation
	if strings.TrimSpace(l.Email) == "" {
		violations = append(violations, domain.FieldViolation{Field: "email", Message: "Email is required"})
	}
	if l.Password == "" {
		violations = append(violations, domain.FieldViolation{Field: "password", Message: "Password is required"})
	}
	if !domain.Role(l.Role).Valid() {
		violations = append(violations, domain.FieldViolation{Field: "role", Message: "Role must be Admin or Staff"})
	}
	return violations
}

// LoginResponse is the response body for POST /api/auth/login
type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

// LoginUser is the user payload inside LoginResponse.
type LoginUser struct {
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{
		Logger:  logger,
		Service: svc,
	}
}

// Login godoc
// @Summary Log in
// @Description Authenticate with email, password, and claimed role. The password is checked before the role, so a wrong password never reveals whether the role matched. Returns a JWT valid for one hour.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} helpers.ErrorResponse
// @Failure 401 {object} helpers.ErrorResponse "Invalid credentials"
// @Failure 403 {object} helpers.ErrorResponse "Access denied for this role"
// @Failure 500 {object} helpers.ErrorResponse
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !h.DecodeAndValidate(w, r, &req) {
		return
	}
	token, user, err := c.Service.Login(r.Context(), req.Email, req.Password, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			h.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, domain.ErrRoleMismatch):
			h.WriteError(w, http.StatusForbidden, "Access denied for this role")
		default:
			c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
			h.WriteError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User:  LoginUser{ID: user.ID, Email: user.Email, Role: user.Role},
	})
}
