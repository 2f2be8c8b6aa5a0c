package service

import (
	"context"

	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
)

type ProfileService struct {
	userRepo repository.UserRepository
}

func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) (*model.User, error) {
	return s.userRepo.UpdateProfile(ctx, userID, update)
}
