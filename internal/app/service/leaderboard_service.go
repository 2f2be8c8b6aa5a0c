package service

import (
	"context"
	"fmt"

	"skill_tracker/internal/app/matching"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
)

// DefaultLeaderboardSize is how many users the skill leaderboard shows.
const DefaultLeaderboardSize = 10

type LeaderboardService struct {
	userRepo repository.UserRepository
}

func NewLeaderboardService(userRepo repository.UserRepository) *LeaderboardService {
	return &LeaderboardService{userRepo: userRepo}
}

// Skills ranks users by skill count. With all set every user is ranked,
// otherwise only the top DefaultLeaderboardSize.
func (s *LeaderboardService) Skills(ctx context.Context, all bool) ([]model.LeaderboardEntry, error) {
	limit := DefaultLeaderboardSize
	if all {
		limit = 0
	}
	counts, err := s.userRepo.SkillCounts(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load skill counts: %w", err)
	}
	entries := make([]model.LeaderboardEntry, 0, len(counts))
	for i := range counts {
		entries = append(entries, model.LeaderboardEntry{User: &counts[i].User, SkillCount: counts[i].SkillCount})
	}
	return matching.RankSkillLeaderboard(entries, limit), nil
}

func (s *LeaderboardService) Coding(ctx context.Context) ([]model.CodingLeaderboardEntry, error) {
	totals, err := s.userRepo.CodingTotals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load coding totals: %w", err)
	}
	entries := make([]model.CodingLeaderboardEntry, 0, len(totals))
	for i := range totals {
		entries = append(entries, model.CodingLeaderboardEntry{
			User:            &totals[i].User,
			TotalScore:      totals[i].TotalScore,
			SubmissionCount: totals[i].SubmissionCount,
		})
	}
	return matching.RankCodingLeaderboard(entries), nil
}
