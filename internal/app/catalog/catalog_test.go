package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/repository/memory"
	"skill_tracker/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
recommendations:
  - title: Go Fundamentals
    type: Course
    provider: Example Academy
    level: Beginner
    matchPercentage: 90
    tags: [go, backend]
  - title: Backend Internship
    type: Internship
    location: Remote
codingChallenges:
  - title: Reverse a String
    description: Warm-up
    difficulty: beginner
    category: Strings
    jobRole: Backend Developer
    problemStatement: Reverse the input string.
    expectedOutput: olleh
    hints: [Two pointers]
    points: 10
weeklyChallenge:
  title: Skill Sprint
  targetCount: 3
  rewardBadge: Sprinter
  durationDays: 7
`

func repos(store *memory.Store) Repositories {
	return Repositories{
		Recommendations: store.Recommendations(),
		Challenges:      store.Challenges(),
		Coding:          store.Coding(),
	}
}

func TestParse(t *testing.T) {
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	require.Len(t, c.Recommendations, 2)
	assert.Equal(t, []string{"go", "backend"}, c.Recommendations[0].Tags)
	require.NotNil(t, c.Recommendations[0].MatchPercentage)
	assert.Equal(t, 90, *c.Recommendations[0].MatchPercentage)
	require.Len(t, c.CodingChallenges, 1)
	assert.Equal(t, "Backend Developer", c.CodingChallenges[0].JobRole)
	require.NotNil(t, c.WeeklyChallenge)
	assert.Equal(t, 7, c.WeeklyChallenge.DurationDays)
}

func TestParseRejectsInvalidEntries(t *testing.T) {
	_, err := Parse([]byte("recommendations:\n  - title: X\n    type: Podcast\n"))
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = Parse([]byte("weeklyChallenge:\n  title: X\n  targetCount: 0\n  durationDays: 7\n"))
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = Parse([]byte("recommendations: {"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Recommendations, 2)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	c, err := Parse([]byte(sample))
	require.NoError(t, err)
	now := time.Now()

	res, err := Seed(ctx, repos(store), c, now, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, &Result{Recommendations: 2, CodingChallenges: 1, WeeklyChallenge: true}, res)

	active, err := store.Challenges().FindActive(ctx, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "Skill Sprint", active.Title)
	assert.WithinDuration(t, now.AddDate(0, 0, 7), active.EndDate, time.Second)

	res, err = Seed(ctx, repos(store), c, now.Add(time.Minute), logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, &Result{}, res)

	recs, err := store.Recommendations().ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}
