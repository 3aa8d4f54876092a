package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Address())
	assert.Equal(t, 85.0, cfg.Scoring.WeightStandard)
	assert.Equal(t, 22.0, cfg.Scoring.BMIStandard)
	assert.Equal(t, 20.0, cfg.Scoring.BodyFatStandard)
	assert.Equal(t, "30d", cfg.Analytics.DefaultPeriod)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("APP_ENV", "development")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("NUDGE_BMI_STANDARD", "24.5")
	t.Setenv("ANALYTICS_TIMEZONE", "Asia/Kolkata")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 24.5, cfg.Scoring.BMIStandard)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)

	loc, err := cfg.Analytics.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Kolkata", loc.String())
}

func TestLoad_ValidationErrors(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "")
	t.Setenv("DB_SSLMODE", "disable")
	t.Setenv("NUDGE_WEIGHT_STANDARD", "0")
	t.Setenv("ANALYTICS_TIMEZONE", "Mars/Olympus")

	_, err := Load()
	require.Error(t, err)
	for _, want := range []string{
		"JWT_SECRET is required",
		"DB_PASSWORD is required",
		"DB_SSLMODE=disable",
		"NUDGE_*_STANDARD",
		"ANALYTICS_TIMEZONE",
	} {
		assert.Contains(t, err.Error(), want)
	}
}
