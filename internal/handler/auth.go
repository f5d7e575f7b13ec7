package handler

import (
	"errors"
	"net/http"

	"github.com/xXRex45Xx/MyPortfolio/internal/model"
	"github.com/xXRex45Xx/MyPortfolio/internal/service"
)

const minPasswordLength = 8

// AuthHandler serves login and password reset.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(auth *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the admin and returns a bearer token.
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" {
		writeFieldError(w, http.StatusBadRequest, "username is required", "username")
		return
	}
	if req.Password == "" {
		writeFieldError(w, http.StatusBadRequest, "password is required", "password")
		return
	}

	token, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, model.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(service.TokenTTL.Seconds()),
	})
}

type resetPasswordRequest struct {
	Username        string `json:"username"`
	OldPassword     string `json:"oldPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ResetPassword changes the admin password after re-verifying the old one.
// Input validation runs before anything touches the store.
// POST /api/auth/reset-password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Username == "" {
		writeFieldError(w, http.StatusBadRequest, "username is required", "username")
		return
	}
	if req.OldPassword == "" {
		writeFieldError(w, http.StatusBadRequest, "old password is required", "oldPassword")
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		writeFieldError(w, http.StatusBadRequest, "passwords do not match", "confirmPassword")
		return
	}
	if len(req.NewPassword) < minPasswordLength {
		writeFieldError(w, http.StatusBadRequest, "password must be at least 8 characters", "newPassword")
		return
	}

	err := h.auth.ResetPassword(r.Context(), req.Username, req.OldPassword, req.NewPassword)
	if errors.Is(err, service.ErrInvalidCredentials) {
		writeError(w, http.StatusUnauthorized, "invalid username or password")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}
