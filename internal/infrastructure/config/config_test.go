package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pos-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "pos", cfg.Database.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenExpiration)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Ledger.DefaultPaymentDay)
	assert.Equal(t, 1, cfg.Ledger.DefaultInstallments)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("POS_DATABASE_HOST", "db.internal")
	t.Setenv("POS_APP_PORT", "9090")
	t.Setenv("POS_LEDGER_DEFAULT_PAYMENT_DAY", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, 5, cfg.Ledger.DefaultPaymentDay)
}

func TestProductionValidation(t *testing.T) {
	t.Setenv("POS_APP_ENV", "production")

	// Missing JWT secret fails fast
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("POS_JWT_SECRET", "0123456789abcdef0123456789abcdef")
	_, err = Load()
	assert.Error(t, err) // database password still missing

	t.Setenv("POS_DATABASE_PASSWORD", "strong-password")
	t.Setenv("POS_DATABASE_SSLMODE", "require")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "require", cfg.Database.SSLMode)
}

func TestInvalidPaymentDayRejected(t *testing.T) {
	t.Setenv("POS_LEDGER_DEFAULT_PAYMENT_DAY", "32")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSNEscapesCredentials(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "user@domain",
		Password: "p@ss/word",
		DBName:   "pos",
		SSLMode:  "disable",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss/word") // escaped form only
}
