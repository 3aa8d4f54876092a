package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/wellness"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/metrics"
)

const scoresTable = "wellness_scores"

type ScoreRepository struct {
	db      *gorm.DB
	metrics *metrics.Collector
}

var _ wellness.Repository = (*ScoreRepository)(nil)

func NewScoreRepository(db *gorm.DB, m *metrics.Collector) *ScoreRepository {
	return &ScoreRepository{db: db, metrics: m}
}

func (r *ScoreRepository) Create(ctx context.Context, s *wellness.Score) error {
	defer observe(r.metrics, "create", scoresTable, time.Now())

	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		return fmt.Errorf("inserting wellness score: %w", err)
	}
	return nil
}

func (r *ScoreRepository) Latest(ctx context.Context, userID uuid.UUID, profileID *uuid.UUID) (*wellness.Score, error) {
	defer observe(r.metrics, "latest", scoresTable, time.Now())

	var s wellness.Score
	err := r.owned(ctx, userID, profileID).Order("computed_at DESC").First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, wellness.ErrScoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching latest wellness score: %w", err)
	}
	return &s, nil
}

func (r *ScoreRepository) List(ctx context.Context, q *wellness.ListScoresQuery) (*wellness.PagedScores, error) {
	defer observe(r.metrics, "list", scoresTable, time.Now())

	page, size := normalizePage(q.Page, q.PageSize)
	base := r.owned(ctx, q.UserID, q.ProfileID)

	var total int64
	if err := base.Session(&gorm.Session{}).Model(&wellness.Score{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting wellness scores: %w", err)
	}

	var rows []*wellness.Score
	err := base.Session(&gorm.Session{}).
		Order("computed_at DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing wellness scores: %w", err)
	}

	return &wellness.PagedScores{
		Scores:     rows,
		TotalCount: total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages(total, size),
	}, nil
}

func (r *ScoreRepository) owned(ctx context.Context, userID uuid.UUID, profileID *uuid.UUID) *gorm.DB {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if profileID == nil {
		return q.Where("profile_id IS NULL")
	}
	return q.Where("profile_id = ?", *profileID)
}
