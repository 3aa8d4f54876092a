package database

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/config"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/wellness"
)

func Connect(cfg config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger:         newGormLogger(log, cfg.SlowQueryThreshold),
		PrepareStmt:    true,
		// Surfaces unique violations as gorm.ErrDuplicatedKey.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DSN(),
	}), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB, log *zap.Logger) error {
	log.Info("running database migrations")
	start := time.Now()

	for _, schema := range Schemas {
		if err := db.Exec(fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", schema)).Error; err != nil {
			return fmt.Errorf("creating schema %s: %w", schema, err)
		}
	}

	models := []any{
		&domain.User{},
		&domain.AuditLog{},
		&biometric.Reading{},
		&wellness.Score{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("auto-migrating models: %w", err)
	}

	for _, idx := range Indexes {
		if err := db.Exec(idx.Query).Error; err != nil {
			// A missing index slows queries down but never breaks them.
			log.Warn("creating index failed", zap.String("index", idx.Name), zap.Error(err))
		}
	}

	log.Info("migrations completed", zap.Duration("duration", time.Since(start)))
	return nil
}

// Schemas are the logical namespaces every table lives in.
var Schemas = []string{"health", "auth", "audit"}

type Index struct {
	Name  string
	Query string
}

var Indexes = []Index{
	{
		// Analytics windows and "latest reading" lookups.
		Name:  "idx_readings_user_profile_ts",
		Query: `CREATE INDEX IF NOT EXISTS idx_readings_user_profile_ts ON health.readings (user_id, profile_id, timestamp DESC) WHERE deleted_at IS NULL`,
	},
	{
		Name:  "idx_wellness_scores_user_created",
		Query: `CREATE INDEX IF NOT EXISTS idx_wellness_scores_user_created ON health.wellness_scores (user_id, profile_id, computed_at DESC)`,
	},
	{
		Name:  "idx_audit_logs_user_time",
		Query: `CREATE INDEX IF NOT EXISTS idx_audit_logs_user_time ON audit.logs (user_id, occurred_at DESC)`,
	},
}

// gormLogger routes gorm's own logging into zap: slow queries and real
// errors only, record-not-found is an expected outcome.
type gormLogger struct {
	log  *zap.Logger
	slow time.Duration
}

func newGormLogger(log *zap.Logger, slow time.Duration) gormlogger.Interface {
	return &gormLogger{log: log.Named("gorm"), slow: slow}
}
