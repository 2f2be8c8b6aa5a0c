package achievement

import (
	"testing"

	"skill_tracker/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(badges []model.Badge) []string {
	var out []string
	for _, b := range badges {
		out = append(out, b.Name)
	}
	return out
}

func TestEvaluate_NoActivity(t *testing.T) {
	assert.Empty(t, Evaluate("u1", Stats{}, nil))
}

func TestEvaluate_FirstSkill(t *testing.T) {
	got := Evaluate("u1", StatsFromSkills([]model.Skill{{Level: model.LevelBeginner}}, 0), nil)
	require.Len(t, got, 1)
	assert.Equal(t, "First Step", got[0].Name)
	assert.Equal(t, "first-step", got[0].Slug)
	assert.Equal(t, "u1", got[0].UserID)
}

func TestEvaluate_SkipsHeldBadges(t *testing.T) {
	skills := make([]model.Skill, 5)
	skills[0] = model.Skill{Level: model.LevelAdvanced, Progress: 100}

	got := Evaluate("u1", StatsFromSkills(skills, 1), map[string]bool{"first-step": true})
	assert.Equal(t, []string{"Skill Collector", "Expert", "Completionist", "Problem Solver"}, names(got))
}

func TestRulesHaveUniqueSlugs(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Rules {
		assert.False(t, seen[r.Slug()], r.Name)
		seen[r.Slug()] = true
	}
}
