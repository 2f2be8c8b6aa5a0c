package service

import (
	"context"
	"fmt"

	"skill_tracker/internal/app/matching"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
)

type RecommendationService struct {
	recRepo   repository.RecommendationRepository
	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
}

func NewRecommendationService(recRepo repository.RecommendationRepository, userRepo repository.UserRepository, skillRepo repository.SkillRepository) *RecommendationService {
	return &RecommendationService{recRepo: recRepo, userRepo: userRepo, skillRepo: skillRepo}
}

func (s *RecommendationService) ListActive(ctx context.Context) ([]model.Recommendation, error) {
	return s.recRepo.ListActive(ctx)
}

func (s *RecommendationService) Personalized(ctx context.Context, userID string) ([]model.Recommendation, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	skills, err := s.skillRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	catalog, err := s.recRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load recommendations: %w", err)
	}
	return matching.PersonalizedRecommendations(user, skills, catalog), nil
}

func (s *RecommendationService) Create(ctx context.Context, req model.CreateRecommendationRequest) (*model.Recommendation, error) {
	return s.recRepo.Create(ctx, req)
}
