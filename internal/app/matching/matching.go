// Package matching holds the pure ranking and selection rules behind
// personalized recommendations, coding challenge picks and leaderboards.
package matching

import (
	"cmp"
	"slices"
	"strings"

	"skill_tracker/internal/domain/model"
)

const (
	// MaxPersonalized caps the personalized recommendation list.
	MaxPersonalized = 6

	jobRoleMatchScore = 50
	tagMatchScore     = 10
)

// Rand is the random source used to pick a coding challenge.
type Rand interface {
	IntN(n int) int
}

// overlaps reports whether either string contains the other.
func overlaps(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

func relevance(jobRole string, names, categories []string, rec model.Recommendation) int {
	if len(rec.Tags) == 0 {
		return 0
	}
	score := 0
	if jobRole != "" {
		for _, tag := range rec.Tags {
			if overlaps(strings.ToLower(tag), jobRole) {
				score += jobRoleMatchScore
				break
			}
		}
	}
	for _, tag := range rec.Tags {
		tag = strings.ToLower(tag)
		if slices.ContainsFunc(names, func(n string) bool { return overlaps(n, tag) }) ||
			slices.ContainsFunc(categories, func(c string) bool { return overlaps(c, tag) }) {
			score += tagMatchScore
		}
	}
	return score
}

// PersonalizedRecommendations keeps the active recommendations relevant to
// the user's job role or skills. Relevance only filters: the result is
// ordered by the stored match percentage and capped at MaxPersonalized.
func PersonalizedRecommendations(user *model.User, skills []model.Skill, catalog []model.Recommendation) []model.Recommendation {
	out := []model.Recommendation{}
	if user == nil {
		return out
	}

	names := make([]string, 0, len(skills))
	categories := make([]string, 0, len(skills))
	for _, s := range skills {
		names = append(names, strings.ToLower(s.Name))
		categories = append(categories, strings.ToLower(s.Category))
	}
	jobRole := strings.ToLower(user.JobRole())

	for _, rec := range catalog {
		if !rec.IsActive {
			continue
		}
		if relevance(jobRole, names, categories, rec) > 0 {
			out = append(out, rec)
		}
	}

	slices.SortStableFunc(out, func(a, b model.Recommendation) int {
		return cmp.Compare(b.StoredMatch(), a.StoredMatch())
	})
	if len(out) > MaxPersonalized {
		out = out[:MaxPersonalized]
	}
	return out
}

// TargetDifficulty derives the coding challenge difficulty from the highest
// skill level the user holds.
func TargetDifficulty(skills []model.Skill) string {
	intermediate := false
	for _, s := range skills {
		switch strings.ToLower(s.Level) {
		case "advanced", "expert":
			return model.DifficultyAdvanced
		case "intermediate":
			intermediate = true
		}
	}
	if intermediate {
		return model.DifficultyIntermediate
	}
	return model.DifficultyBeginner
}

// PickCodingChallenge picks one active challenge at the user's target
// difficulty, preferring challenges for the user's job role when any exist.
// It returns nil when nothing qualifies.
func PickCodingChallenge(user *model.User, skills []model.Skill, challenges []model.CodingChallenge, rng Rand) *model.CodingChallenge {
	if user == nil {
		return nil
	}
	target := TargetDifficulty(skills)

	var pool []model.CodingChallenge
	for _, c := range challenges {
		if c.IsActive && strings.EqualFold(c.Difficulty, target) {
			pool = append(pool, c)
		}
	}

	if role := strings.ToLower(user.JobRole()); role != "" && len(pool) > 0 {
		var byRole []model.CodingChallenge
		for _, c := range pool {
			if overlaps(strings.ToLower(c.JobRole), role) {
				byRole = append(byRole, c)
			}
		}
		if len(byRole) > 0 {
			pool = byRole
		}
	}

	if len(pool) == 0 {
		return nil
	}
	picked := pool[rng.IntN(len(pool))]
	return &picked
}

// AverageLevel maps skills to 1..3 and buckets the mean back into a level.
func AverageLevel(skills []model.Skill) string {
	if len(skills) == 0 {
		return model.LevelBeginner
	}
	total := 0
	for _, s := range skills {
		switch s.Level {
		case model.LevelBeginner:
			total++
		case model.LevelIntermediate:
			total += 2
		default:
			total += 3
		}
	}
	avg := float64(total) / float64(len(skills))
	switch {
	case avg < 1.5:
		return model.LevelBeginner
	case avg < 2.5:
		return model.LevelIntermediate
	default:
		return model.LevelAdvanced
	}
}
