package handler

import (
	"net/http"

	"skill_tracker/internal/app/service"
	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

type CodingHandler struct {
	codingService *service.CodingService
	careerService *service.CareerService
	log           *logger.Logger
}

func NewCodingHandler(codingService *service.CodingService, careerService *service.CareerService, log *logger.Logger) *CodingHandler {
	return &CodingHandler{codingService: codingService, careerService: careerService, log: log}
}

func (h *CodingHandler) RegisterRoutes(r chi.Router) {
	r.Get("/coding-challenges", h.listChallenges)
	r.Post("/coding-challenges/submit", h.submitForGrading)
	r.Get("/coding-challenge/personalized", h.personalized)
	r.Post("/coding-submission", h.submit)
	r.Get("/coding-submissions", h.mySubmissions)
	r.Get("/career-guidance", h.careerGuidance)
}

func (h *CodingHandler) listChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.codingService.ListChallenges(r.Context())
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenges)
}

func (h *CodingHandler) personalized(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	challenge, err := h.codingService.PersonalizedChallenge(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenge)
}

func (h *CodingHandler) submit(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req model.CreateCodingSubmissionRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	sub, err := h.codingService.Submit(r.Context(), userID, req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, sub)
}

func (h *CodingHandler) submitForGrading(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	var req model.SubmitSolutionRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	resp, err := h.codingService.SubmitForGrading(r.Context(), userID, req)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *CodingHandler) mySubmissions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	subs, err := h.codingService.MySubmissions(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, subs)
}

func (h *CodingHandler) careerGuidance(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}
	guidance, err := h.careerService.Guidance(r.Context(), userID)
	if err != nil {
		common.RespondWithServiceError(w, r, h.log, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, guidance)
}
