package service

import (
	"context"
	"fmt"

	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
	"skill_tracker/internal/platform/logger"
)

type SkillService struct {
	skillRepo repository.SkillRepository
	activity  ActivityPublisher
	log       *logger.Logger
}

func NewSkillService(skillRepo repository.SkillRepository, activity ActivityPublisher, log *logger.Logger) *SkillService {
	return &SkillService{skillRepo: skillRepo, activity: activity, log: log}
}

func (s *SkillService) List(ctx context.Context, userID string) ([]model.Skill, error) {
	return s.skillRepo.ListByUser(ctx, userID)
}

func (s *SkillService) Create(ctx context.Context, userID string, req model.CreateSkillRequest) (*model.Skill, error) {
	skill, err := s.skillRepo.Create(ctx, userID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}
	publishActivity(ctx, s.activity, s.log, model.ActivitySkillCreated, userID)
	return skill, nil
}

// Update changes a skill owned by userID. Skills of other users are
// reported as not found.
func (s *SkillService) Update(ctx context.Context, userID string, id int64, req model.UpdateSkillRequest) (*model.Skill, error) {
	if req.Empty() {
		return nil, fmt.Errorf("no fields to update: %w", common.ErrValidation)
	}
	skill, err := s.skillRepo.Update(ctx, userID, id, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update skill %d: %w", id, err)
	}
	publishActivity(ctx, s.activity, s.log, model.ActivitySkillUpdated, userID)
	return skill, nil
}

func (s *SkillService) Delete(ctx context.Context, userID string, id int64) error {
	if err := s.skillRepo.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete skill %d: %w", id, err)
	}
	publishActivity(ctx, s.activity, s.log, model.ActivitySkillDeleted, userID)
	return nil
}
