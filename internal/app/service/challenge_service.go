package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
)

type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
	now           func() time.Time
}

func NewChallengeService(challengeRepo repository.ChallengeRepository) *ChallengeService {
	return &ChallengeService{challengeRepo: challengeRepo, now: time.Now}
}

// Active returns the running challenge with the caller's progress, or nil
// when no challenge is running. Progress is nil until the user has any.
func (s *ChallengeService) Active(ctx context.Context, userID string) (*model.ActiveChallenge, error) {
	challenge, err := s.challengeRepo.FindActive(ctx, s.now())
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load active challenge: %w", err)
	}

	progress, err := s.challengeRepo.GetProgress(ctx, userID, challenge.ID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to load challenge progress: %w", err)
	}
	return &model.ActiveChallenge{Challenge: challenge, Progress: progress}, nil
}

func (s *ChallengeService) Create(ctx context.Context, req model.CreateChallengeRequest) (*model.Challenge, error) {
	return s.challengeRepo.Create(ctx, req)
}
