package handler

import (
	"net/http"

	"skill_tracker/internal/app/service"
	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// AdminHandler serves /api/admin. The router guards it with
// middleware.RequireAdmin.
type AdminHandler struct {
	adminService     *service.AdminService
	recService       *service.RecommendationService
	challengeService *service.ChallengeService
	codingService    *service.CodingService
	badgeService     *service.BadgeService
	log              *logger.Logger
}

func NewAdminHandler(
	adminService *service.AdminService,
	recService *service.RecommendationService,
	challengeService *service.ChallengeService,
	codingService *service.CodingService,
	badgeService *service.BadgeService,
	log *logger.Logger,
) *AdminHandler {
	return &AdminHandler{
		adminService:     adminService,
		recService:       recService,
		challengeService: challengeService,
		codingService:    codingService,
		badgeService:     badgeService,
		log:              log,
	}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.listUsers)
	r.Get("/stats", h.stats)
	r.Post("/recommendations", h.createRecommendation)
	r.Post("/challenges", h.createChallenge)
	r.Post("/coding-challenges", h.createCodingChallenge)
	r.Post("/badges", h.awardBadge)
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *AdminHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) createRecommendation(w http.ResponseWriter, r *http.Request) {
	var req model.CreateRecommendationRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	rec, err := h.recService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, rec)
}

func (h *AdminHandler) createChallenge(w http.ResponseWriter, r *http.Request) {
	var req model.CreateChallengeRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	challenge, err := h.challengeService.Create(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, challenge)
}

func (h *AdminHandler) createCodingChallenge(w http.ResponseWriter, r *http.Request) {
	var req model.CreateCodingChallengeRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	challenge, err := h.codingService.CreateChallenge(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, challenge)
}

func (h *AdminHandler) awardBadge(w http.ResponseWriter, r *http.Request) {
	var req model.AwardBadgeRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	badge, err := h.badgeService.Award(r.Context(), req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, badge)
}
