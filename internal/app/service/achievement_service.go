package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill_tracker/internal/app/achievement"
	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
	"skill_tracker/internal/platform/logger"
	"skill_tracker/internal/platform/metrics"

	"github.com/gosimple/slug"
)

const challengeBadgeIcon = "trophy"

// AchievementService awards badges and advances weekly challenge progress
// after user activity. It is driven by worker.ActivityWorker.
type AchievementService struct {
	skillRepo     repository.SkillRepository
	badgeRepo     repository.BadgeRepository
	challengeRepo repository.ChallengeRepository
	codingRepo    repository.CodingRepository
	log           *logger.Logger
	now           func() time.Time
}

func NewAchievementService(
	skillRepo repository.SkillRepository,
	badgeRepo repository.BadgeRepository,
	challengeRepo repository.ChallengeRepository,
	codingRepo repository.CodingRepository,
	log *logger.Logger,
) *AchievementService {
	return &AchievementService{
		skillRepo:     skillRepo,
		badgeRepo:     badgeRepo,
		challengeRepo: challengeRepo,
		codingRepo:    codingRepo,
		log:           log,
		now:           time.Now,
	}
}

type ActivityOutcome struct {
	Awarded  []model.Badge
	Progress *model.ChallengeProgress
}

// Process re-evaluates everything that depends on userID's activity. It is
// safe to run more than once for the same event.
func (s *AchievementService) Process(ctx context.Context, userID string) (*ActivityOutcome, error) {
	skills, err := s.skillRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	correct, err := s.codingRepo.CountCorrectSubmissions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count correct submissions: %w", err)
	}
	held, err := s.heldBadges(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &ActivityOutcome{}
	for _, b := range achievement.Evaluate(userID, achievement.StatsFromSkills(skills, correct), held) {
		if s.award(ctx, &b) {
			out.Awarded = append(out.Awarded, b)
			held[b.Slug] = true
		}
	}

	progress, reward, err := s.advanceChallenge(ctx, userID)
	if err != nil {
		return out, err
	}
	out.Progress = progress
	if reward != nil && !held[reward.Slug] && s.award(ctx, reward) {
		out.Awarded = append(out.Awarded, *reward)
	}
	return out, nil
}

func (s *AchievementService) heldBadges(ctx context.Context, userID string) (map[string]bool, error) {
	badges, err := s.badgeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load badges: %w", err)
	}
	held := make(map[string]bool, len(badges))
	for _, b := range badges {
		held[b.Slug] = true
	}
	return held, nil
}

func (s *AchievementService) award(ctx context.Context, b *model.Badge) bool {
	inserted, err := s.badgeRepo.Create(ctx, b)
	if err != nil {
		s.log.Error("Failed to award badge", "user_id", b.UserID, "badge", b.Slug, "error", err)
		return false
	}
	if inserted {
		metrics.BadgesAwarded.Inc()
		s.log.Info("Badge awarded", "user_id", b.UserID, "badge", b.Slug)
	}
	return inserted
}

// advanceChallenge recomputes progress on the running challenge from the
// skills added inside its window. It returns the reward badge to grant
// when the challenge is complete.
func (s *AchievementService) advanceChallenge(ctx context.Context, userID string) (*model.ChallengeProgress, *model.Badge, error) {
	now := s.now()
	challenge, err := s.challengeRepo.FindActive(ctx, now)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to load active challenge: %w", err)
	}

	added, err := s.skillRepo.CountCreatedBetween(ctx, userID, challenge.StartDate, challenge.EndDate)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to count challenge skills: %w", err)
	}
	progress, err := s.challengeRepo.UpsertProgress(ctx, userID, challenge.ID, ChallengePercent(added, challenge.TargetCount))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to save challenge progress: %w", err)
	}

	if !progress.Completed || challenge.RewardBadge == nil || *challenge.RewardBadge == "" {
		return progress, nil, nil
	}
	desc := fmt.Sprintf("Completed the %q challenge", challenge.Title)
	reward := &model.Badge{
		UserID:      userID,
		Slug:        slug.Make(*challenge.RewardBadge),
		Name:        *challenge.RewardBadge,
		Description: &desc,
		Icon:        challengeBadgeIcon,
	}
	return progress, reward, nil
}

// ChallengePercent converts a count towards target into a 0..100 percentage.
func ChallengePercent(count, target int) int {
	if target <= 0 || count <= 0 {
		return 0
	}
	return min(100, count*100/target)
}
