package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/metrics"
)

const usersTable = "users"

type UserRepository struct {
	db      *gorm.DB
	metrics *metrics.Collector
}

func NewUserRepository(db *gorm.DB, m *metrics.Collector) *UserRepository {
	return &UserRepository{db: db, metrics: m}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	defer observe(r.metrics, "create", usersTable, time.Now())

	err := r.db.WithContext(ctx).Create(u).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return domain.ErrEmailTaken
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	defer observe(r.metrics, "get_by_email", usersTable, time.Now())

	var u domain.User
	err := r.db.WithContext(ctx).
		Where("email = ? AND deleted_at IS NULL", strings.ToLower(strings.TrimSpace(email))).
		First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching user by email: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	defer observe(r.metrics, "get", usersTable, time.Now())

	var u domain.User
	err := r.db.WithContext(ctx).Where("id = ? AND deleted_at IS NULL", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetching user %s: %w", id, err)
	}
	return &u, nil
}

// RecordLoginFailure bumps the failure counter and, when lockedUntil is set,
// locks the account until then.
func (r *UserRepository) RecordLoginFailure(ctx context.Context, id uuid.UUID, lockedUntil *time.Time) error {
	defer observe(r.metrics, "login_failure", usersTable, time.Now())

	updates := map[string]any{
		"failed_login_count": gorm.Expr("failed_login_count + 1"),
	}
	if lockedUntil != nil {
		updates["locked_until"] = *lockedUntil
	}
	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates).Error
}

func (r *UserRepository) RecordLoginSuccess(ctx context.Context, id uuid.UUID, at time.Time) error {
	defer observe(r.metrics, "login_success", usersTable, time.Now())

	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
		"failed_login_count": 0,
		"locked_until":       nil,
		"last_login_at":      at,
	}).Error
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uuid.UUID, hash string) error {
	defer observe(r.metrics, "update_password", usersTable, time.Now())

	return r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
		"password_hash":       hash,
		"password_changed_at": time.Now().UTC(),
	}).Error
}
