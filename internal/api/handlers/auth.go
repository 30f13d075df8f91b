package handlers

import (
	"net/http"
	"time"

	"github.com/dom/hero-archive/internal/domain"
	"github.com/dom/hero-archive/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type RegisterRequest struct {
	Password    string `json:"password" validate:"required,min=8,max=72"`
	DisplayName string `json:"displayName" validate:"required,min=3,max=32"`
}

type LoginRequest struct {
	DisplayName string `json:"displayName" validate:"required"`
	Password    string `json:"password" validate:"required"`
}

type AuthResponse struct {
	User        UserResponse `json:"user"`
	AccessToken string       `json:"accessToken"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

type UserResponse struct {
	ID          string          `json:"id"`
	DisplayName string          `json:"displayName"`
	Role        domain.UserRole `json:"role"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:          u.ID.String(),
		DisplayName: u.DisplayName,
		Role:        u.Role,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, "auth.Register", err)
		return
	}

	result, err := h.authService.Register(r.Context(), service.RegisterInput{
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		writeError(w, r, "auth.Register", err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, r, "auth.Login", err)
		return
	}

	result, err := h.authService.Login(r.Context(), service.LoginInput{
		DisplayName: req.DisplayName,
		Password:    req.Password,
	})
	if err != nil {
		writeError(w, r, "auth.Login", err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := h.authService.Me(r.Context(), credential(r))
	if err != nil {
		writeError(w, r, "auth.Me", err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func toAuthResponse(result *service.AuthResult) AuthResponse {
	return AuthResponse{
		User:        toUserResponse(result.User),
		AccessToken: result.AccessToken,
		ExpiresAt:   result.ExpiresAt,
	}
}
