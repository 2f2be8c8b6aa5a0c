package matching

import (
	"cmp"
	"slices"

	"skill_tracker/internal/domain/model"
)

// RankSkillLeaderboard orders entries by skill count, highest first, and
// assigns 1-based ranks. Equal counts keep their input order. A limit <= 0
// keeps every entry.
func RankSkillLeaderboard(entries []model.LeaderboardEntry, limit int) []model.LeaderboardEntry {
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b model.LeaderboardEntry) int {
		return cmp.Compare(b.SkillCount, a.SkillCount)
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	if ranked == nil {
		ranked = []model.LeaderboardEntry{}
	}
	return ranked
}

// RankCodingLeaderboard orders entries by total score, highest first.
func RankCodingLeaderboard(entries []model.CodingLeaderboardEntry) []model.CodingLeaderboardEntry {
	ranked := slices.Clone(entries)
	slices.SortStableFunc(ranked, func(a, b model.CodingLeaderboardEntry) int {
		return cmp.Compare(b.TotalScore, a.TotalScore)
	})
	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	if ranked == nil {
		ranked = []model.CodingLeaderboardEntry{}
	}
	return ranked
}
