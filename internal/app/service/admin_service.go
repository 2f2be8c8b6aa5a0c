package service

import (
	"context"

	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
)

type AdminService struct {
	userRepo repository.UserRepository
}

func NewAdminService(userRepo repository.UserRepository) *AdminService {
	return &AdminService{userRepo: userRepo}
}

func (s *AdminService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.ListAll(ctx)
}

func (s *AdminService) Stats(ctx context.Context) (*model.Stats, error) {
	return s.userRepo.Stats(ctx)
}
