//go:build integration

package postgres

import (
	"context"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/config"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/biometric"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/internal/domain/wellness"
	"github.com/SaurabhSingh004/ArhAmInsurance-Function-Be-sub002/pkg/database"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	port, _ := strconv.Atoi(envOr("TEST_DB_PORT", "5432"))
	cfg := config.DatabaseConfig{
		Host:         envOr("TEST_DB_HOST", "localhost"),
		Port:         port,
		Name:         envOr("TEST_DB_NAME", "wellscore_test"),
		User:         envOr("TEST_DB_USER", "postgres"),
		Password:     envOr("TEST_DB_PASSWORD", "postgres"),
		SSLMode:      "disable",
		MaxOpenConns: 5,
		MaxIdleConns: 1,
	}

	db, err := database.Connect(cfg, zap.NewNop())
	if err != nil {
		t.Skipf("skipping integration test: %v", err)
	}
	require.NoError(t, database.Migrate(db, zap.NewNop()))
	return db
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newUser(t *testing.T, db *gorm.DB) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        uuid.NewString() + "@example.com",
		PasswordHash: "x",
		FullName:     "Test User",
		Role:         domain.RoleMember,
		IsActive:     true,
	}
	require.NoError(t, NewUserRepository(db, nil).Create(context.Background(), u))
	return u
}

func TestReadingRepository_Lifecycle(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewReadingRepository(db, nil)
	u := newUser(t, db)

	base := time.Now().Add(-48 * time.Hour).Unix()
	for i, w := range []float64{80, 81, 82} {
		rd := &biometric.Reading{
			UserID:    u.ID,
			Timestamp: base + int64(i*3600),
			Source:    biometric.SourceManual,
			CreatedBy: u.ID,
		}
		rd.MeasurementDate = rd.Time()
		rd.Set(biometric.FieldWeight, w)
		require.NoError(t, repo.Create(ctx, rd))
	}

	latest, err := repo.Latest(ctx, u.ID, nil)
	require.NoError(t, err)
	v, _ := latest.Value(biometric.FieldWeight)
	assert.Equal(t, 82.0, v)

	from := time.Unix(base, 0)
	rows, err := repo.ListInRange(ctx, u.ID, nil, from, time.Now())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.True(t, rows[0].Timestamp < rows[2].Timestamp)

	page, err := repo.List(ctx, &biometric.ListReadingsQuery{UserID: u.ID, PageSize: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Readings, 2)

	require.NoError(t, repo.SoftDelete(ctx, latest.ID))
	assert.ErrorIs(t, repo.SoftDelete(ctx, latest.ID), biometric.ErrReadingNotFound)
	_, err = repo.GetByID(ctx, latest.ID)
	assert.ErrorIs(t, err, biometric.ErrReadingNotFound)

	_, err = repo.Latest(ctx, uuid.New(), nil)
	assert.ErrorIs(t, err, biometric.ErrNoReadings)
}

func TestScoreRepository_Latest(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewScoreRepository(db, nil)
	u := newUser(t, db)

	_, err := repo.Latest(ctx, u.ID, nil)
	assert.ErrorIs(t, err, wellness.ErrScoreNotFound)

	s := &wellness.Score{
		UserID:         u.ID,
		ReadingID:      uuid.New(),
		TotalRiskScore: 11.5,
		WellnessScore:  88.5,
		MetricsUsed:    2,
		Nudges:         []wellness.Nudge{{Metric: "bmi", Value: 30, Unit: "kg/m²"}},
		CreatedBy:      u.ID,
	}
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.Latest(ctx, u.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, 88.5, got.WellnessScore)
	require.Len(t, got.Nudges, 1)
	assert.Equal(t, "bmi", got.Nudges[0].Metric)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := testDB(t)
	u := newUser(t, db)

	dup := &domain.User{Email: u.Email, PasswordHash: "x", FullName: "Dup", Role: domain.RoleMember}
	assert.ErrorIs(t, NewUserRepository(db, nil).Create(context.Background(), dup), domain.ErrEmailTaken)
}
