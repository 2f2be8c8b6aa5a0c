package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"skill_tracker/internal/common"
	"skill_tracker/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// UserSkillCount is one unranked skill leaderboard row.
type UserSkillCount struct {
	User       model.User
	SkillCount int
}

// UserCodingTotal is one unranked coding leaderboard row.
type UserCodingTotal struct {
	User            model.User
	TotalScore      int
	SubmissionCount int
}

type UserRepository interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
	Upsert(ctx context.Context, user model.UpsertUser) (*model.User, error)
	UpdateProfile(ctx context.Context, id string, update model.ProfileUpdate) (*model.User, error)
	ListAll(ctx context.Context) ([]model.User, error)
	Stats(ctx context.Context) (*model.Stats, error)
	SkillCounts(ctx context.Context, limit int) ([]UserSkillCount, error)
	CodingTotals(ctx context.Context) ([]UserCodingTotal, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `u.id, u.email, u.first_name, u.last_name, u.profile_image_url, u.college, u.course,
	u.graduation_year, u.preferred_job_role, u.is_admin, u.created_at, u.updated_at`

func userScanTargets(u *model.User) []any {
	return []any{
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.ProfileImageURL, &u.College, &u.Course,
		&u.GraduationYear, &u.PreferredJobRole, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt,
	}
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = $1`
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(userScanTargets(user)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

// Upsert inserts the user or refreshes the identity fields of an existing
// row. Profile fields and the admin flag are never touched here.
func (r *pgUserRepository) Upsert(ctx context.Context, in model.UpsertUser) (*model.User, error) {
	query := `INSERT INTO users AS u (id, email, first_name, last_name, profile_image_url)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (id) DO UPDATE SET
	              email = EXCLUDED.email,
	              first_name = EXCLUDED.first_name,
	              last_name = EXCLUDED.last_name,
	              profile_image_url = EXCLUDED.profile_image_url,
	              updated_at = NOW()
	          RETURNING ` + userColumns
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, in.ID, in.Email, in.FirstName, in.LastName, in.ProfileImageURL).
		Scan(userScanTargets(user)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("email already belongs to another account: %w", common.ErrConflict)
		}
		return nil, fmt.Errorf("pgUserRepository.Upsert: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) UpdateProfile(ctx context.Context, id string, p model.ProfileUpdate) (*model.User, error) {
	query := `UPDATE users AS u SET
	              first_name = COALESCE($2, u.first_name),
	              last_name = COALESCE($3, u.last_name),
	              college = COALESCE($4, u.college),
	              course = COALESCE($5, u.course),
	              graduation_year = COALESCE($6, u.graduation_year),
	              preferred_job_role = COALESCE($7, u.preferred_job_role),
	              updated_at = NOW()
	          WHERE u.id = $1
	          RETURNING ` + userColumns
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, id, p.FirstName, p.LastName, p.College, p.Course, p.GraduationYear, p.PreferredJobRole).
		Scan(userScanTargets(user)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.UpdateProfile: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u ORDER BY u.created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListAll query: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(userScanTargets(&u)...); err != nil {
			return nil, fmt.Errorf("pgUserRepository.ListAll scan: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.ListAll rows.Err: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) Stats(ctx context.Context) (*model.Stats, error) {
	query := `SELECT
	              (SELECT COUNT(*) FROM users),
	              (SELECT COUNT(*) FROM skills),
	              (SELECT COUNT(DISTINCT user_id) FROM skills WHERE updated_at >= NOW() - INTERVAL '7 days')`
	stats := &model.Stats{}
	if err := r.db.QueryRowContext(ctx, query).Scan(&stats.TotalUsers, &stats.TotalSkills, &stats.ActiveUsers); err != nil {
		return nil, fmt.Errorf("pgUserRepository.Stats: %w", err)
	}
	return stats, nil
}

// SkillCounts returns every user with their skill count, highest first.
// limit <= 0 returns all users.
func (r *pgUserRepository) SkillCounts(ctx context.Context, limit int) ([]UserSkillCount, error) {
	query := `SELECT ` + userColumns + `, COUNT(s.id)
	          FROM users u
	          LEFT JOIN skills s ON s.user_id = u.id
	          GROUP BY u.id
	          ORDER BY COUNT(s.id) DESC, u.created_at ASC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.SkillCounts query: %w", err)
	}
	defer rows.Close()

	counts := []UserSkillCount{}
	for rows.Next() {
		var c UserSkillCount
		if err := rows.Scan(append(userScanTargets(&c.User), &c.SkillCount)...); err != nil {
			return nil, fmt.Errorf("pgUserRepository.SkillCounts scan: %w", err)
		}
		counts = append(counts, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.SkillCounts rows.Err: %w", err)
	}
	return counts, nil
}

// CodingTotals returns users with at least one coding submission.
func (r *pgUserRepository) CodingTotals(ctx context.Context) ([]UserCodingTotal, error) {
	query := `SELECT ` + userColumns + `, COALESCE(SUM(cs.score), 0), COUNT(cs.id)
	          FROM users u
	          JOIN coding_submissions cs ON cs.user_id = u.id
	          GROUP BY u.id
	          ORDER BY COALESCE(SUM(cs.score), 0) DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.CodingTotals query: %w", err)
	}
	defer rows.Close()

	totals := []UserCodingTotal{}
	for rows.Next() {
		var t UserCodingTotal
		if err := rows.Scan(append(userScanTargets(&t.User), &t.TotalScore, &t.SubmissionCount)...); err != nil {
			return nil, fmt.Errorf("pgUserRepository.CodingTotals scan: %w", err)
		}
		totals = append(totals, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.CodingTotals rows.Err: %w", err)
	}
	return totals, nil
}
