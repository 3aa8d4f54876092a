package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/metrics"
)

const readingsTable = "readings"

type ReadingRepository struct {
	db      *gorm.DB
	metrics *metrics.Collector
}

var _ biometric.Repository = (*ReadingRepository)(nil)

func NewReadingRepository(db *gorm.DB, m *metrics.Collector) *ReadingRepository {
	return &ReadingRepository{db: db, metrics: m}
}

func (r *ReadingRepository) Create(ctx context.Context, rd *biometric.Reading) error {
	defer observe(r.metrics, "create", readingsTable, time.Now())

	if err := r.db.WithContext(ctx).Create(rd).Error; err != nil {
		return fmt.Errorf("inserting reading: %w", err)
	}
	return nil
}

func (r *ReadingRepository) GetByID(ctx context.Context, id uuid.UUID) (*biometric.Reading, error) {
	defer observe(r.metrics, "get", readingsTable, time.Now())

	var rd biometric.Reading
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&rd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, biometric.ErrReadingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching reading %s: %w", id, err)
	}
	return &rd, nil
}

func (r *ReadingRepository) Latest(ctx context.Context, userID uuid.UUID, profileID *uuid.UUID) (*biometric.Reading, error) {
	defer observe(r.metrics, "latest", readingsTable, time.Now())

	var rd biometric.Reading
	err := r.owned(ctx, userID, profileID).
		Order("timestamp DESC").
		First(&rd).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, biometric.ErrNoReadings
	}
	if err != nil {
		return nil, fmt.Errorf("fetching latest reading: %w", err)
	}
	return &rd, nil
}

func (r *ReadingRepository) ListInRange(ctx context.Context, userID uuid.UUID, profileID *uuid.UUID, from, to time.Time) ([]*biometric.Reading, error) {
	defer observe(r.metrics, "range", readingsTable, time.Now())

	var out []*biometric.Reading
	err := r.owned(ctx, userID, profileID).
		Where("measurement_date BETWEEN ? AND ?", from, to).
		Order("timestamp ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("listing readings in range: %w", err)
	}
	return out, nil
}

func (r *ReadingRepository) List(ctx context.Context, q *biometric.ListReadingsQuery) (*biometric.PagedReadings, error) {
	defer observe(r.metrics, "list", readingsTable, time.Now())

	page, size := normalizePage(q.Page, q.PageSize)

	base := r.owned(ctx, q.UserID, q.ProfileID)
	if q.From != nil {
		base = base.Where("measurement_date >= ?", *q.From)
	}
	if q.To != nil {
		base = base.Where("measurement_date <= ?", *q.To)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Model(&biometric.Reading{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("counting readings: %w", err)
	}

	var rows []*biometric.Reading
	err := base.Session(&gorm.Session{}).
		Order("timestamp DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing readings: %w", err)
	}

	return &biometric.PagedReadings{
		Readings:   rows,
		TotalCount: total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages(total, size),
	}, nil
}

func (r *ReadingRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	defer observe(r.metrics, "delete", readingsTable, time.Now())

	res := r.db.WithContext(ctx).
		Model(&biometric.Reading{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", time.Now().UTC())
	if res.Error != nil {
		return fmt.Errorf("deleting reading %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return biometric.ErrReadingNotFound
	}
	return nil
}

// owned scopes a query to one user's live readings. A nil profile selects the
// account holder's own readings, not every profile.
func (r *ReadingRepository) owned(ctx context.Context, userID uuid.UUID, profileID *uuid.UUID) *gorm.DB {
	q := r.db.WithContext(ctx).Where("user_id = ? AND deleted_at IS NULL", userID)
	if profileID == nil {
		return q.Where("profile_id IS NULL")
	}
	return q.Where("profile_id = ?", *profileID)
}
