package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"skill_tracker/internal/domain/model"

	"github.com/gosimple/slug"
)

type BadgeRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Badge, error)
	// Create inserts the badge unless the user already holds one with the
	// same slug. The bool reports whether a row was written.
	Create(ctx context.Context, badge *model.Badge) (bool, error)
}

type pgBadgeRepository struct {
	db *sql.DB
}

func NewPgBadgeRepository(db *sql.DB) BadgeRepository {
	return &pgBadgeRepository{db: db}
}

func (r *pgBadgeRepository) ListByUser(ctx context.Context, userID string) ([]model.Badge, error) {
	query := `SELECT id, user_id, slug, name, description, icon, earned_at
	          FROM badges WHERE user_id = $1 ORDER BY earned_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgBadgeRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	badges := []model.Badge{}
	for rows.Next() {
		var b model.Badge
		if err := rows.Scan(&b.ID, &b.UserID, &b.Slug, &b.Name, &b.Description, &b.Icon, &b.EarnedAt); err != nil {
			return nil, fmt.Errorf("pgBadgeRepository.ListByUser scan: %w", err)
		}
		badges = append(badges, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgBadgeRepository.ListByUser rows.Err: %w", err)
	}
	return badges, nil
}

func (r *pgBadgeRepository) Create(ctx context.Context, b *model.Badge) (bool, error) {
	if b.Slug == "" {
		b.Slug = slug.Make(b.Name)
	}
	query := `INSERT INTO badges (user_id, slug, name, description, icon)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id, slug) DO NOTHING
	          RETURNING id, earned_at`
	err := r.db.QueryRowContext(ctx, query, b.UserID, b.Slug, b.Name, b.Description, b.Icon).Scan(&b.ID, &b.EarnedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("pgBadgeRepository.Create: %w", err)
	}
	return true, nil
}
