package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"strategic-planning-backend/pkg/config"
	"strategic-planning-backend/pkg/models"
	"strategic-planning-backend/pkg/planning"
	"strategic-planning-backend/pkg/utils"
)

// UserHandler serves registration, login and the account routes.
type UserHandler struct {
	config  *config.Config
	service *planning.Service
	jwt     *utils.JWTService
}

// NewUserHandler creates the account handler.
func NewUserHandler(cfg *config.Config, service *planning.Service) *UserHandler {
	return &UserHandler{
		config:  cfg,
		service: service,
		jwt:     utils.NewJWTService(cfg.JWTSecret),
	}
}

// Register handles POST /api/users.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.UserRegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteCreatedResponse(w, "User registered successfully", user)
}

// Login handles POST /api/users/login and returns the token pair.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.UserLoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	user, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	accessToken, refreshToken, expiresIn, err := h.jwt.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Login successful", models.UserLoginResponse{
		User:         *user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	})
}

// RefreshToken handles POST /api/users/refresh-token.
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req models.RefreshTokenRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		utils.WriteBadRequestResponse(w, "refresh_token is required")
		return
	}

	accessToken, expiresIn, err := h.jwt.RefreshAccessToken(req.RefreshToken)
	if err != nil {
		utils.WriteUnauthorizedResponse(w, "Invalid refresh token")
		return
	}
	utils.WriteSuccessResponse(w, "Token refreshed", map[string]interface{}{
		"access_token": accessToken,
		"expires_in":   expiresIn,
	})
}

// ForgotPassword handles POST /api/users/forgot-password. The response
// is the same whether or not the email is registered, so the endpoint
// cannot be used to probe for accounts.
func (h *UserHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ForgotPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := req.Validate().OrNil(); err != nil {
		writeServiceError(w, r, err)
		return
	}
	if _, err := h.service.ForgotPassword(r.Context(), req.Email); err != nil {
		// Unknown emails get the success message too.
		writeServiceErrorUnlessNotFound(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "If the email is registered, a reset token has been issued", nil)
}

// ResetPassword handles POST /api/users/reset-password.
func (h *UserHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req models.ResetPasswordRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := h.service.ResetPassword(r.Context(), &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Password reset successfully", nil)
}

// ListUsers handles GET /api/users/all-users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "Users retrieved", users)
}

// GetUser handles GET /api/users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	utils.WriteSuccessResponse(w, "User retrieved", user)
}
