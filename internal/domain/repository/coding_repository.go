package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"

	"github.com/jackc/pgx/v5/pgtype"
)

type CodingRepository interface {
	ListActiveChallenges(ctx context.Context) ([]model.CodingChallenge, error)
	ListActiveChallengesByDifficulty(ctx context.Context, difficulty string) ([]model.CodingChallenge, error)
	FindChallengeByID(ctx context.Context, id int64) (*model.CodingChallenge, error)
	CreateChallenge(ctx context.Context, req model.CreateCodingChallengeRequest) (*model.CodingChallenge, error)

	CreateSubmission(ctx context.Context, sub *model.CodingSubmission) error
	ListSubmissionsByUser(ctx context.Context, userID string) ([]model.CodingSubmission, error)
	CountCorrectSubmissions(ctx context.Context, userID string) (int, error)
}

type pgCodingRepository struct {
	db *sql.DB
}

func NewPgCodingRepository(db *sql.DB) CodingRepository {
	return &pgCodingRepository{db: db}
}

const codingChallengeColumns = `id, title, description, difficulty, category, job_role, problem_statement,
	expected_output, hints, tags, points, is_active, created_at`

func codingChallengeScanTargets(m *pgtype.Map, c *model.CodingChallenge) []any {
	return []any{
		&c.ID, &c.Title, &c.Description, &c.Difficulty, &c.Category, &c.JobRole, &c.ProblemStatement,
		&c.ExpectedOutput, m.SQLScanner(&c.Hints), m.SQLScanner(&c.Tags), &c.Points, &c.IsActive, &c.CreatedAt,
	}
}

func (r *pgCodingRepository) queryChallenges(ctx context.Context, op, query string, args ...any) ([]model.CodingChallenge, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgCodingRepository.%s query: %w", op, err)
	}
	defer rows.Close()

	m := pgtype.NewMap()
	challenges := []model.CodingChallenge{}
	for rows.Next() {
		var c model.CodingChallenge
		if err := rows.Scan(codingChallengeScanTargets(m, &c)...); err != nil {
			return nil, fmt.Errorf("pgCodingRepository.%s scan: %w", op, err)
		}
		challenges = append(challenges, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCodingRepository.%s rows.Err: %w", op, err)
	}
	return challenges, nil
}

func (r *pgCodingRepository) ListActiveChallenges(ctx context.Context) ([]model.CodingChallenge, error) {
	query := `SELECT ` + codingChallengeColumns + ` FROM coding_challenges WHERE is_active = TRUE ORDER BY id`
	return r.queryChallenges(ctx, "ListActiveChallenges", query)
}

// ListActiveChallengesByDifficulty compares difficulty case-insensitively.
func (r *pgCodingRepository) ListActiveChallengesByDifficulty(ctx context.Context, difficulty string) ([]model.CodingChallenge, error) {
	query := `SELECT ` + codingChallengeColumns + `
	          FROM coding_challenges
	          WHERE is_active = TRUE AND LOWER(difficulty) = LOWER($1)
	          ORDER BY id`
	return r.queryChallenges(ctx, "ListActiveChallengesByDifficulty", query, difficulty)
}

func (r *pgCodingRepository) FindChallengeByID(ctx context.Context, id int64) (*model.CodingChallenge, error) {
	query := `SELECT ` + codingChallengeColumns + ` FROM coding_challenges WHERE id = $1`
	c := &model.CodingChallenge{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(codingChallengeScanTargets(pgtype.NewMap(), c)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCodingRepository.FindChallengeByID: %w", err)
	}
	return c, nil
}

func (r *pgCodingRepository) CreateChallenge(ctx context.Context, req model.CreateCodingChallengeRequest) (*model.CodingChallenge, error) {
	points := 10
	if req.Points != nil {
		points = *req.Points
	}
	hints, tags := req.Hints, req.Tags
	if hints == nil {
		hints = []string{}
	}
	if tags == nil {
		tags = []string{}
	}
	query := `INSERT INTO coding_challenges (title, description, difficulty, category, job_role, problem_statement,
	              expected_output, hints, tags, points)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	          RETURNING ` + codingChallengeColumns
	c := &model.CodingChallenge{}
	err := r.db.QueryRowContext(ctx, query,
		req.Title, req.Description, req.Difficulty, req.Category, req.JobRole, req.ProblemStatement,
		req.ExpectedOutput, hints, tags, points,
	).Scan(codingChallengeScanTargets(pgtype.NewMap(), c)...)
	if err != nil {
		return nil, fmt.Errorf("pgCodingRepository.CreateChallenge: %w", err)
	}
	return c, nil
}

// CreateSubmission inserts sub and fills in its id and submission time.
func (r *pgCodingRepository) CreateSubmission(ctx context.Context, sub *model.CodingSubmission) error {
	query := `INSERT INTO coding_submissions (user_id, challenge_id, solution, language, status, score, feedback)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, submitted_at`
	err := r.db.QueryRowContext(ctx, query,
		sub.UserID, sub.ChallengeID, sub.Solution, sub.Language, sub.Status, sub.Score, sub.Feedback,
	).Scan(&sub.ID, &sub.SubmittedAt)
	if err != nil {
		return fmt.Errorf("pgCodingRepository.CreateSubmission: %w", err)
	}
	return nil
}

func (r *pgCodingRepository) ListSubmissionsByUser(ctx context.Context, userID string) ([]model.CodingSubmission, error) {
	query := `SELECT id, user_id, challenge_id, solution, language, status, score, feedback, submitted_at
	          FROM coding_submissions WHERE user_id = $1 ORDER BY submitted_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgCodingRepository.ListSubmissionsByUser query: %w", err)
	}
	defer rows.Close()

	subs := []model.CodingSubmission{}
	for rows.Next() {
		var s model.CodingSubmission
		if err := rows.Scan(&s.ID, &s.UserID, &s.ChallengeID, &s.Solution, &s.Language, &s.Status, &s.Score, &s.Feedback, &s.SubmittedAt); err != nil {
			return nil, fmt.Errorf("pgCodingRepository.ListSubmissionsByUser scan: %w", err)
		}
		subs = append(subs, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCodingRepository.ListSubmissionsByUser rows.Err: %w", err)
	}
	return subs, nil
}

func (r *pgCodingRepository) CountCorrectSubmissions(ctx context.Context, userID string) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM coding_submissions WHERE user_id = $1 AND status = $2`
	if err := r.db.QueryRowContext(ctx, query, userID, model.SubmissionStatusCorrect).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgCodingRepository.CountCorrectSubmissions: %w", err)
	}
	return n, nil
}
