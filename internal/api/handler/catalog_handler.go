package handler

import (
	"net/http"

	"skill_tracker/internal/app/service"
	"skill_tracker/internal/common"
	"skill_tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// CatalogHandler serves recommendations, the weekly challenge and the
// leaderboards.
type CatalogHandler struct {
	recService         *service.RecommendationService
	challengeService   *service.ChallengeService
	leaderboardService *service.LeaderboardService
	log                *logger.Logger
}

func NewCatalogHandler(
	recService *service.RecommendationService,
	challengeService *service.ChallengeService,
	leaderboardService *service.LeaderboardService,
	log *logger.Logger,
) *CatalogHandler {
	return &CatalogHandler{
		recService:         recService,
		challengeService:   challengeService,
		leaderboardService: leaderboardService,
		log:                log,
	}
}

func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/recommendations", h.recommendations)
	r.Get("/recommendations/personalized", h.personalized)
	r.Get("/challenge", h.activeChallenge)
	r.Get("/leaderboard", h.leaderboard)
	r.Get("/coding-leaderboard", h.codingLeaderboard)
}

func (h *CatalogHandler) recommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.recService.ListActive(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, recs)
}

func (h *CatalogHandler) personalized(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	recs, err := h.recService.Personalized(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, recs)
}

// activeChallenge answers null when no challenge is running.
func (h *CatalogHandler) activeChallenge(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	active, err := h.challengeService.Active(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, active)
}

func (h *CatalogHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	all := r.URL.Query().Get("scope") == "all"
	entries, err := h.leaderboardService.Skills(r.Context(), all)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}

func (h *CatalogHandler) codingLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardService.Coding(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, entries)
}
