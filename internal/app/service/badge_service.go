package service

import (
	"context"
	"fmt"

	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
	"skill_tracker/internal/platform/metrics"
)

type BadgeService struct {
	badgeRepo repository.BadgeRepository
	userRepo  repository.UserRepository
}

func NewBadgeService(badgeRepo repository.BadgeRepository, userRepo repository.UserRepository) *BadgeService {
	return &BadgeService{badgeRepo: badgeRepo, userRepo: userRepo}
}

func (s *BadgeService) List(ctx context.Context, userID string) ([]model.Badge, error) {
	return s.badgeRepo.ListByUser(ctx, userID)
}

// Award grants a badge by hand. A user holds at most one badge per name.
func (s *BadgeService) Award(ctx context.Context, req model.AwardBadgeRequest) (*model.Badge, error) {
	if _, err := s.userRepo.FindByID(ctx, req.UserID); err != nil {
		return nil, fmt.Errorf("user %s: %w", req.UserID, err)
	}
	badge := &model.Badge{UserID: req.UserID, Name: req.Name, Description: req.Description, Icon: req.Icon}
	inserted, err := s.badgeRepo.Create(ctx, badge)
	if err != nil {
		return nil, fmt.Errorf("failed to award badge: %w", err)
	}
	if !inserted {
		return nil, fmt.Errorf("user already holds badge %q: %w", req.Name, common.ErrConflict)
	}
	metrics.BadgesAwarded.Inc()
	return badge, nil
}
