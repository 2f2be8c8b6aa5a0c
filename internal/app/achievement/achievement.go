// Package achievement decides which badges a user has earned from a
// snapshot of their activity.
package achievement

import (
	"skill_tracker/internal/domain/model"

	"github.com/gosimple/slug"
)

// Stats is the activity snapshot rules are evaluated against.
type Stats struct {
	SkillCount         int
	HasAdvancedSkill   bool
	HasCompletedSkill  bool
	CorrectSubmissions int
}

// StatsFromSkills fills the skill-derived fields of Stats.
func StatsFromSkills(skills []model.Skill, correctSubmissions int) Stats {
	st := Stats{SkillCount: len(skills), CorrectSubmissions: correctSubmissions}
	for _, s := range skills {
		if s.Level == model.LevelAdvanced {
			st.HasAdvancedSkill = true
		}
		if s.Progress >= 100 {
			st.HasCompletedSkill = true
		}
	}
	return st
}

type Rule struct {
	Name        string
	Description string
	Icon        string
	Earned      func(Stats) bool
}

func (r Rule) Slug() string { return slug.Make(r.Name) }

// Rules is evaluated in order; earlier rules are awarded first.
var Rules = []Rule{
	{
		Name:        "First Step",
		Description: "Added your first skill",
		Icon:        "footprints",
		Earned:      func(s Stats) bool { return s.SkillCount >= 1 },
	},
	{
		Name:        "Skill Collector",
		Description: "Tracked 5 skills",
		Icon:        "layers",
		Earned:      func(s Stats) bool { return s.SkillCount >= 5 },
	},
	{
		Name:        "Polymath",
		Description: "Tracked 10 skills",
		Icon:        "brain",
		Earned:      func(s Stats) bool { return s.SkillCount >= 10 },
	},
	{
		Name:        "Expert",
		Description: "Reached Advanced level in a skill",
		Icon:        "award",
		Earned:      func(s Stats) bool { return s.HasAdvancedSkill },
	},
	{
		Name:        "Completionist",
		Description: "Took a skill to 100% progress",
		Icon:        "check-circle",
		Earned:      func(s Stats) bool { return s.HasCompletedSkill },
	},
	{
		Name:        "Problem Solver",
		Description: "Solved a coding challenge",
		Icon:        "code",
		Earned:      func(s Stats) bool { return s.CorrectSubmissions > 0 },
	},
}

// Evaluate returns the badges earned by st that are not already held.
// held is keyed by badge slug.
func Evaluate(userID string, st Stats, held map[string]bool) []model.Badge {
	var out []model.Badge
	for _, r := range Rules {
		s := r.Slug()
		if held[s] || !r.Earned(st) {
			continue
		}
		desc := r.Description
		out = append(out, model.Badge{UserID: userID, Slug: s, Name: r.Name, Description: &desc, Icon: r.Icon})
	}
	return out
}
