package handler

import (
	"errors"
	"net/http"

	"github.com/bookhive/bookhive-go/internal/model"
	"github.com/bookhive/bookhive-go/internal/service"
)

// AuthHandler serves signup, login and token refresh.
type AuthHandler struct {
	service *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleSignup handles POST /api/user_mgt/signup.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req model.SignupRequest
	if !decodeJSON(w, r, &req) || !validatePayload(w, &req) {
		return
	}

	resp, err := h.service.Signup(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailTaken),
			errors.Is(err, service.ErrPasswordTooShort),
			errors.Is(err, service.ErrPasswordAllNumeric):
			respondFailed(w, http.StatusBadRequest, err.Error())
		default:
			respondInternal(w, r, err)
		}
		return
	}

	respondSuccess(w, http.StatusCreated, resp, "Signup successful")
}

// HandleLogin handles POST /api/user_mgt/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if !decodeJSON(w, r, &req) || !validatePayload(w, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondFailed(w, http.StatusBadRequest, err.Error())
			return
		}
		respondInternal(w, r, err)
		return
	}

	respondSuccess(w, http.StatusOK, resp, "Login successful")
}

// HandleRefresh handles POST /api/user_mgt/token/refresh.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req model.TokenRefreshRequest
	if !decodeJSON(w, r, &req) || !validatePayload(w, &req) {
		return
	}

	pair, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefreshToken),
			errors.Is(err, service.ErrExpiredRefreshToken):
			respondFailed(w, http.StatusForbidden, err.Error())
		default:
			respondInternal(w, r, err)
		}
		return
	}

	respondSuccess(w, http.StatusOK, pair, "Token refreshed successfully")
}
