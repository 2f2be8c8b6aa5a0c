package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
	"skill_tracker/internal/platform/database"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL and applies migrations. Tests
// using it are skipped in -short mode or when the variable is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctx := context.Background()
	_, err = database.Migrate(ctx, db)
	require.NoError(t, err)
	return db
}

func newTestUser(t *testing.T, users UserRepository) *model.User {
	t.Helper()
	email := uuid.NewString() + "@example.com"
	u, err := users.Upsert(context.Background(), model.UpsertUser{ID: uuid.NewString(), Email: &email})
	require.NoError(t, err)
	return u
}

func TestPgRepositories_SkillLifecycle(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewPgUserRepository(db)
	skills := NewPgSkillRepository(db)

	owner := newTestUser(t, users)
	other := newTestUser(t, users)

	created, err := skills.Create(ctx, owner.ID, model.CreateSkillRequest{Name: "Python", Category: "Programming", Level: model.LevelBeginner})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, 0, created.Progress)
	assert.False(t, created.CreatedAt.IsZero())

	progress := 40
	_, err = skills.Update(ctx, other.ID, created.ID, model.UpdateSkillRequest{Progress: &progress})
	assert.ErrorIs(t, err, common.ErrNotFound)

	updated, err := skills.Update(ctx, owner.ID, created.ID, model.UpdateSkillRequest{Progress: &progress})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.Progress)
	assert.Equal(t, "Python", updated.Name)

	n, err := skills.CountCreatedBetween(ctx, owner.ID, time.Now().Add(-time.Hour), time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, skills.Delete(ctx, other.ID, created.ID), common.ErrNotFound)
	require.NoError(t, skills.Delete(ctx, owner.ID, created.ID))

	list, err := skills.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPgRepositories_UpsertKeepsProfile(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewPgUserRepository(db)

	u := newTestUser(t, users)
	role := "Frontend Developer"
	_, err := users.UpdateProfile(ctx, u.ID, model.ProfileUpdate{PreferredJobRole: &role})
	require.NoError(t, err)

	first := "Ada"
	again, err := users.Upsert(ctx, model.UpsertUser{ID: u.ID, Email: u.Email, FirstName: &first})
	require.NoError(t, err)
	assert.Equal(t, "Ada", *again.FirstName)
	assert.Equal(t, role, again.JobRole())
}

func TestPgRepositories_BadgeCreateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewPgUserRepository(db)
	badges := NewPgBadgeRepository(db)

	u := newTestUser(t, users)
	inserted, err := badges.Create(ctx, &model.Badge{UserID: u.ID, Name: "First Step", Icon: "footprints"})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = badges.Create(ctx, &model.Badge{UserID: u.ID, Name: "First Step", Icon: "footprints"})
	require.NoError(t, err)
	assert.False(t, inserted)

	list, err := badges.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "first-step", list[0].Slug)
}

func TestPgRepositories_CodingTotals(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	users := NewPgUserRepository(db)
	coding := NewPgCodingRepository(db)

	u := newTestUser(t, users)
	ch, err := coding.CreateChallenge(ctx, model.CreateCodingChallengeRequest{
		Title: "Reverse", Description: "Reverse a string", Difficulty: model.DifficultyBeginner,
		Category: "Strings", JobRole: "Backend Developer", ProblemStatement: "reverse(s)",
		Tags: []string{"strings"},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, ch.Points)
	assert.Equal(t, []string{"strings"}, ch.Tags)

	for _, score := range []int{10, 35} {
		require.NoError(t, coding.CreateSubmission(ctx, &model.CodingSubmission{
			UserID: u.ID, ChallengeID: ch.ID, Solution: "s[::-1]", Language: "python",
			Status: model.SubmissionStatusCorrect, Score: score,
		}))
	}

	totals, err := users.CodingTotals(ctx)
	require.NoError(t, err)
	var found bool
	for _, row := range totals {
		if row.User.ID == u.ID {
			found = true
			assert.Equal(t, 45, row.TotalScore)
			assert.Equal(t, 2, row.SubmissionCount)
		}
	}
	assert.True(t, found)

	correct, err := coding.CountCorrectSubmissions(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, correct)
}

func TestPgRepositories_FindActiveSkipsScheduledChallenge(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	challenges := NewPgChallengeRepository(db)

	now := time.Now()
	start := now.Add(24 * time.Hour)
	title := "Scheduled " + uuid.NewString()
	_, err := challenges.Create(ctx, model.CreateChallengeRequest{
		Title: title, TargetCount: 2, StartDate: &start, EndDate: now.Add(8 * 24 * time.Hour),
	})
	require.NoError(t, err)

	if active, err := challenges.FindActive(ctx, now); err == nil {
		assert.NotEqual(t, title, active.Title)
	} else {
		assert.ErrorIs(t, err, common.ErrNotFound)
	}

	active, err := challenges.FindActive(ctx, start.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, title, active.Title)
}
