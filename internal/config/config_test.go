package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, "0.1", cfg.TaxRateDecimal().String())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{Port: 8000, JWTSecret: "s", JWTExpirationHours: 8, TaxRate: 0.1}
	assert.NoError(t, base.Validate())

	bad := base
	bad.TaxRate = -0.1
	assert.Error(t, bad.Validate())

	bad = base
	bad.JWTExpirationHours = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.Env = "production"
	bad.JWTSecret = devJWTSecret
	assert.Error(t, bad.Validate())
}
