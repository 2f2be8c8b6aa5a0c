// Package catalog loads the curated recommendation and challenge catalog
// from YAML and writes it through the repositories.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/domain/repository"
	"skill_tracker/internal/platform/logger"

	"gopkg.in/yaml.v3"
)

type Catalog struct {
	Recommendations  []model.CreateRecommendationRequest  `yaml:"recommendations"`
	CodingChallenges []model.CreateCodingChallengeRequest `yaml:"codingChallenges"`
	WeeklyChallenge  *WeeklyChallenge                     `yaml:"weeklyChallenge"`
}

// WeeklyChallenge is anchored at seed time and runs for DurationDays.
type WeeklyChallenge struct {
	Title        string  `yaml:"title"`
	Description  *string `yaml:"description"`
	TargetCount  int     `yaml:"targetCount"`
	RewardBadge  *string `yaml:"rewardBadge"`
	DurationDays int     `yaml:"durationDays"`
}

func Load(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse decodes and validates a catalog document.
func Parse(raw []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	for i := range c.Recommendations {
		if err := common.Validate(&c.Recommendations[i]); err != nil {
			return nil, fmt.Errorf("recommendation %d: %w", i, err)
		}
	}
	for i := range c.CodingChallenges {
		if err := common.Validate(&c.CodingChallenges[i]); err != nil {
			return nil, fmt.Errorf("coding challenge %d: %w", i, err)
		}
	}
	if wc := c.WeeklyChallenge; wc != nil {
		if wc.Title == "" || wc.TargetCount <= 0 || wc.DurationDays <= 0 {
			return nil, fmt.Errorf("weekly challenge needs title, targetCount and durationDays: %w", common.ErrValidation)
		}
	}
	return &c, nil
}

type Repositories struct {
	Recommendations repository.RecommendationRepository
	Challenges      repository.ChallengeRepository
	Coding          repository.CodingRepository
}

type Result struct {
	Recommendations  int
	CodingChallenges int
	WeeklyChallenge  bool
}

// Seed inserts catalog entries whose titles are not already active. The
// weekly challenge is only created when none is running.
func Seed(ctx context.Context, repos Repositories, c *Catalog, now time.Time, log *logger.Logger) (*Result, error) {
	res := &Result{}

	existingRecs, err := repos.Recommendations.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list recommendations: %w", err)
	}
	seen := make(map[string]bool, len(existingRecs))
	for _, r := range existingRecs {
		seen[r.Title] = true
	}
	for _, req := range c.Recommendations {
		if seen[req.Title] {
			log.Debug("Skipping existing recommendation", "title", req.Title)
			continue
		}
		if _, err := repos.Recommendations.Create(ctx, req); err != nil {
			return res, fmt.Errorf("create recommendation %q: %w", req.Title, err)
		}
		seen[req.Title] = true
		res.Recommendations++
	}

	existingChals, err := repos.Coding.ListActiveChallenges(ctx)
	if err != nil {
		return res, fmt.Errorf("list coding challenges: %w", err)
	}
	seen = make(map[string]bool, len(existingChals))
	for _, ch := range existingChals {
		seen[ch.Title] = true
	}
	for _, req := range c.CodingChallenges {
		if seen[req.Title] {
			log.Debug("Skipping existing coding challenge", "title", req.Title)
			continue
		}
		if _, err := repos.Coding.CreateChallenge(ctx, req); err != nil {
			return res, fmt.Errorf("create coding challenge %q: %w", req.Title, err)
		}
		seen[req.Title] = true
		res.CodingChallenges++
	}

	if wc := c.WeeklyChallenge; wc != nil {
		_, err := repos.Challenges.FindActive(ctx, now)
		switch {
		case err == nil:
			log.Info("Active challenge already running, not seeding a new one")
		case errors.Is(err, common.ErrNotFound):
			start := now
			if _, err := repos.Challenges.Create(ctx, model.CreateChallengeRequest{
				Title:       wc.Title,
				Description: wc.Description,
				TargetCount: wc.TargetCount,
				RewardBadge: wc.RewardBadge,
				StartDate:   &start,
				EndDate:     now.AddDate(0, 0, wc.DurationDays),
			}); err != nil {
				return res, fmt.Errorf("create weekly challenge: %w", err)
			}
			res.WeeklyChallenge = true
		default:
			return res, fmt.Errorf("find active challenge: %w", err)
		}
	}
	return res, nil
}
