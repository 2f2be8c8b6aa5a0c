package repository

import (
	"context"
	"database/sql"
	"fmt"

	"skill_tracker/internal/domain/model"

	"github.com/jackc/pgx/v5/pgtype"
)

type RecommendationRepository interface {
	ListActive(ctx context.Context) ([]model.Recommendation, error)
	Create(ctx context.Context, req model.CreateRecommendationRequest) (*model.Recommendation, error)
}

type pgRecommendationRepository struct {
	db *sql.DB
}

func NewPgRecommendationRepository(db *sql.DB) RecommendationRepository {
	return &pgRecommendationRepository{db: db}
}

const recommendationColumns = `id, title, description, type, url, provider, image_url, level, duration, price,
	rating, review_count, match_percentage, deadline, location, tags, is_active, created_at`

func recommendationScanTargets(m *pgtype.Map, rec *model.Recommendation) []any {
	return []any{
		&rec.ID, &rec.Title, &rec.Description, &rec.Type, &rec.URL, &rec.Provider, &rec.ImageURL, &rec.Level,
		&rec.Duration, &rec.Price, &rec.Rating, &rec.ReviewCount, &rec.MatchPercentage, &rec.Deadline,
		&rec.Location, m.SQLScanner(&rec.Tags), &rec.IsActive, &rec.CreatedAt,
	}
}

// ListActive returns active recommendations, highest match percentage first.
func (r *pgRecommendationRepository) ListActive(ctx context.Context) ([]model.Recommendation, error) {
	query := `SELECT ` + recommendationColumns + `
	          FROM recommendations
	          WHERE is_active = TRUE
	          ORDER BY match_percentage DESC NULLS LAST, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgRecommendationRepository.ListActive query: %w", err)
	}
	defer rows.Close()

	m := pgtype.NewMap()
	recs := []model.Recommendation{}
	for rows.Next() {
		var rec model.Recommendation
		if err := rows.Scan(recommendationScanTargets(m, &rec)...); err != nil {
			return nil, fmt.Errorf("pgRecommendationRepository.ListActive scan: %w", err)
		}
		recs = append(recs, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgRecommendationRepository.ListActive rows.Err: %w", err)
	}
	return recs, nil
}

func (r *pgRecommendationRepository) Create(ctx context.Context, req model.CreateRecommendationRequest) (*model.Recommendation, error) {
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	query := `INSERT INTO recommendations (title, description, type, url, provider, image_url, level, duration,
	              price, rating, review_count, match_percentage, deadline, location, tags, is_active)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	          RETURNING ` + recommendationColumns

	m := pgtype.NewMap()
	rec := &model.Recommendation{}
	err := r.db.QueryRowContext(ctx, query,
		req.Title, req.Description, req.Type, req.URL, req.Provider, req.ImageURL, req.Level, req.Duration,
		req.Price, req.Rating, req.ReviewCount, req.MatchPercentage, req.Deadline, req.Location, tags, isActive,
	).Scan(recommendationScanTargets(m, rec)...)
	if err != nil {
		return nil, fmt.Errorf("pgRecommendationRepository.Create: %w", err)
	}
	return rec, nil
}
