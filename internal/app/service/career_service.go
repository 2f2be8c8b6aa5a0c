package service

import (
	"context"
	"fmt"

	"skill_tracker/internal/app/advisor"
	"skill_tracker/internal/app/matching"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
)

const incompleteProfileRoadmap = "Please complete your profile with preferred job role to get personalized guidance"

type CareerService struct {
	userRepo  repository.UserRepository
	skillRepo repository.SkillRepository
	advisor   advisor.Client
}

func NewCareerService(userRepo repository.UserRepository, skillRepo repository.SkillRepository, advisorClient advisor.Client) *CareerService {
	return &CareerService{userRepo: userRepo, skillRepo: skillRepo, advisor: advisorClient}
}

// Guidance asks the advisor for a roadmap towards the user's preferred job
// role. Users without one get a fixed prompt to complete their profile.
func (s *CareerService) Guidance(ctx context.Context, userID string) (*model.CareerGuidance, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if user.JobRole() == "" {
		return &model.CareerGuidance{
			Roadmap:         []string{incompleteProfileRoadmap},
			SuggestedSkills: []string{},
			TimelineWeeks:   advisor.DefaultTimelineWeeks,
			Resources:       []string{},
		}, nil
	}

	skills, err := s.skillRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	names := make([]string, 0, len(skills))
	for _, sk := range skills {
		names = append(names, sk.Name)
	}

	guidance := s.advisor.CareerGuidance(ctx, advisor.CareerGuidanceInput{
		CurrentSkills: names,
		TargetJobRole: user.JobRole(),
		CurrentLevel:  matching.AverageLevel(skills),
	})
	return &guidance, nil
}
