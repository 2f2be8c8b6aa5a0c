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

type SkillRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Skill, error)
	Create(ctx context.Context, userID string, req model.CreateSkillRequest) (*model.Skill, error)
	Update(ctx context.Context, userID string, id int64, req model.UpdateSkillRequest) (*model.Skill, error)
	Delete(ctx context.Context, userID string, id int64) error
	CountCreatedBetween(ctx context.Context, userID string, from, to time.Time) (int, error)
}

type pgSkillRepository struct {
	db *sql.DB
}

func NewPgSkillRepository(db *sql.DB) SkillRepository {
	return &pgSkillRepository{db: db}
}

const skillColumns = `id, user_id, name, category, level, progress, certificate_url, created_at, updated_at`

func skillScanTargets(s *model.Skill) []any {
	return []any{&s.ID, &s.UserID, &s.Name, &s.Category, &s.Level, &s.Progress, &s.CertificateURL, &s.CreatedAt, &s.UpdatedAt}
}

func (r *pgSkillRepository) ListByUser(ctx context.Context, userID string) ([]model.Skill, error) {
	query := `SELECT ` + skillColumns + ` FROM skills WHERE user_id = $1 ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgSkillRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	skills := []model.Skill{}
	for rows.Next() {
		var s model.Skill
		if err := rows.Scan(skillScanTargets(&s)...); err != nil {
			return nil, fmt.Errorf("pgSkillRepository.ListByUser scan: %w", err)
		}
		skills = append(skills, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSkillRepository.ListByUser rows.Err: %w", err)
	}
	return skills, nil
}

func (r *pgSkillRepository) Create(ctx context.Context, userID string, req model.CreateSkillRequest) (*model.Skill, error) {
	progress := 0
	if req.Progress != nil {
		progress = *req.Progress
	}
	query := `INSERT INTO skills (user_id, name, category, level, progress, certificate_url)
	          VALUES ($1, $2, $3, $4, $5, $6)
	          RETURNING ` + skillColumns
	skill := &model.Skill{}
	err := r.db.QueryRowContext(ctx, query, userID, req.Name, req.Category, req.Level, progress, req.CertificateURL).
		Scan(skillScanTargets(skill)...)
	if err != nil {
		return nil, fmt.Errorf("pgSkillRepository.Create: %w", err)
	}
	return skill, nil
}

// Update applies the non-nil fields of req to a skill owned by userID.
func (r *pgSkillRepository) Update(ctx context.Context, userID string, id int64, req model.UpdateSkillRequest) (*model.Skill, error) {
	query := `UPDATE skills SET
	              name = COALESCE($3, name),
	              category = COALESCE($4, category),
	              level = COALESCE($5, level),
	              progress = COALESCE($6, progress),
	              certificate_url = COALESCE($7, certificate_url),
	              updated_at = NOW()
	          WHERE id = $1 AND user_id = $2
	          RETURNING ` + skillColumns
	skill := &model.Skill{}
	err := r.db.QueryRowContext(ctx, query, id, userID, req.Name, req.Category, req.Level, req.Progress, req.CertificateURL).
		Scan(skillScanTargets(skill)...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgSkillRepository.Update: %w", err)
	}
	return skill, nil
}

func (r *pgSkillRepository) Delete(ctx context.Context, userID string, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("pgSkillRepository.Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgSkillRepository.Delete rows affected: %w", err)
	}
	if n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgSkillRepository) CountCreatedBetween(ctx context.Context, userID string, from, to time.Time) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM skills WHERE user_id = $1 AND created_at >= $2 AND created_at < $3`
	if err := r.db.QueryRowContext(ctx, query, userID, from, to).Scan(&n); err != nil {
		return 0, fmt.Errorf("pgSkillRepository.CountCreatedBetween: %w", err)
	}
	return n, nil
}
