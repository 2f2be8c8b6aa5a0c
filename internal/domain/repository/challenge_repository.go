package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"
)

type ChallengeRepository interface {
	// FindActive returns the most recently started active challenge that
	// has not ended, or common.ErrNotFound.
	FindActive(ctx context.Context, now time.Time) (*model.Challenge, error)
	GetProgress(ctx context.Context, userID string, challengeID int64) (*model.ChallengeProgress, error)
	UpsertProgress(ctx context.Context, userID string, challengeID int64, progress int) (*model.ChallengeProgress, error)
	Create(ctx context.Context, req model.CreateChallengeRequest) (*model.Challenge, error)
}

type pgChallengeRepository struct {
	db *sql.DB
}

func NewPgChallengeRepository(db *sql.DB) ChallengeRepository {
	return &pgChallengeRepository{db: db}
}

const challengeColumns = `id, title, description, target_count, reward_badge, start_date, end_date, is_active`

func (r *pgChallengeRepository) FindActive(ctx context.Context, now time.Time) (*model.Challenge, error) {
	query := `SELECT ` + challengeColumns + `
	          FROM challenges
	          WHERE is_active = TRUE AND start_date <= $1 AND end_date > $1
	          ORDER BY start_date DESC
	          LIMIT 1`
	c := &model.Challenge{}
	err := r.db.QueryRowContext(ctx, query, now).Scan(
		&c.ID, &c.Title, &c.Description, &c.TargetCount, &c.RewardBadge, &c.StartDate, &c.EndDate, &c.IsActive,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgChallengeRepository.FindActive: %w", err)
	}
	return c, nil
}

func (r *pgChallengeRepository) GetProgress(ctx context.Context, userID string, challengeID int64) (*model.ChallengeProgress, error) {
	query := `SELECT id, user_id, challenge_id, progress, completed, completed_at
	          FROM user_challenge_progress WHERE user_id = $1 AND challenge_id = $2`
	p := &model.ChallengeProgress{}
	err := r.db.QueryRowContext(ctx, query, userID, challengeID).Scan(
		&p.ID, &p.UserID, &p.ChallengeID, &p.Progress, &p.Completed, &p.CompletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgChallengeRepository.GetProgress: %w", err)
	}
	return p, nil
}

// UpsertProgress records progress for the pair. Once completed, a row stays
// completed and keeps its original completion time.
func (r *pgChallengeRepository) UpsertProgress(ctx context.Context, userID string, challengeID int64, progress int) (*model.ChallengeProgress, error) {
	query := `INSERT INTO user_challenge_progress AS p (user_id, challenge_id, progress, completed, completed_at)
	          VALUES ($1, $2, $3::int, $3::int >= 100, CASE WHEN $3::int >= 100 THEN NOW() END)
	          ON CONFLICT (user_id, challenge_id) DO UPDATE SET
	              progress = EXCLUDED.progress,
	              completed = p.completed OR EXCLUDED.completed,
	              completed_at = COALESCE(p.completed_at, EXCLUDED.completed_at)
	          RETURNING id, user_id, challenge_id, progress, completed, completed_at`
	p := &model.ChallengeProgress{}
	err := r.db.QueryRowContext(ctx, query, userID, challengeID, progress).Scan(
		&p.ID, &p.UserID, &p.ChallengeID, &p.Progress, &p.Completed, &p.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("pgChallengeRepository.UpsertProgress: %w", err)
	}
	return p, nil
}

func (r *pgChallengeRepository) Create(ctx context.Context, req model.CreateChallengeRequest) (*model.Challenge, error) {
	start := time.Now()
	if req.StartDate != nil {
		start = *req.StartDate
	}
	if !req.EndDate.After(start) {
		return nil, fmt.Errorf("endDate must be after startDate: %w", common.ErrValidation)
	}
	query := `INSERT INTO challenges (title, description, target_count, reward_badge, start_date, end_date)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + challengeColumns
	c := &model.Challenge{}
	err := r.db.QueryRowContext(ctx, query, req.Title, req.Description, req.TargetCount, req.RewardBadge, start, req.EndDate).Scan(
		&c.ID, &c.Title, &c.Description, &c.TargetCount, &c.RewardBadge, &c.StartDate, &c.EndDate, &c.IsActive,
	)
	if err != nil {
		return nil, fmt.Errorf("pgChallengeRepository.Create: %w", err)
	}
	return c, nil
}
