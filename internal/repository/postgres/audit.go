package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/metrics"
)

type AuditRepository struct {
	db      *gorm.DB
	metrics *metrics.Collector
}

func NewAuditRepository(db *gorm.DB, m *metrics.Collector) *AuditRepository {
	return &AuditRepository{db: db, metrics: m}
}

func (r *AuditRepository) Create(ctx context.Context, entry *domain.AuditLog) error {
	defer observe(r.metrics, "create", "audit_logs", time.Now())
	return r.db.WithContext(ctx).Create(entry).Error
}
