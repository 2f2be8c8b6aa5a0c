package handler

import (
	"net/http"

	"skill_tracker/internal/app/service"
	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type SkillHandler struct {
	skillService *service.SkillService
	badgeService *service.BadgeService
	log          *logger.Logger
}

func NewSkillHandler(skillService *service.SkillService, badgeService *service.BadgeService, log *logger.Logger) *SkillHandler {
	return &SkillHandler{skillService: skillService, badgeService: badgeService, log: log}
}

func (h *SkillHandler) RegisterRoutes(r chi.Router) {
	r.Route("/skills", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	r.Get("/badges", h.badges)
}

func (h *SkillHandler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	skills, err := h.skillService.List(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, skills)
}

func (h *SkillHandler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req model.CreateSkillRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	skill, err := h.skillService.Create(r.Context(), userID, req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, skill)
}

func (h *SkillHandler) update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	var req model.UpdateSkillRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	skill, err := h.skillService.Update(r.Context(), userID, id, req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, skill)
}

func (h *SkillHandler) delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	if err := h.skillService.Delete(r.Context(), userID, id); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Skill deleted successfully"})
}

func (h *SkillHandler) badges(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	badges, err := h.badgeService.List(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, badges)
}
