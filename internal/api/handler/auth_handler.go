package handler

import (
	"net/http"

	"skill_tracker/internal/api/middleware"
	"skill_tracker/internal/app/service"
	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService    *service.AuthService
	profileService *service.ProfileService
	log            *logger.Logger
}

func NewAuthHandler(authService *service.AuthService, profileService *service.ProfileService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, profileService: profileService, log: log}
}

func (h *AuthHandler) RegisterPublicRoutes(r chi.Router) {
	r.Post("/login", h.login)
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/logout", h.logout)
	r.Get("/auth/user", h.currentUser)
	r.Put("/profile", h.updateProfile)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	session, _ := middleware.SessionFromContext(r.Context())
	if err := h.authService.Logout(r.Context(), session); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) currentUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	user, err := h.authService.CurrentUser(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req model.ProfileUpdate
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	user, err := h.profileService.UpdateProfile(r.Context(), userID, req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
