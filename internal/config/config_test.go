package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("TOKEN_TTL", "")
	t.Setenv("DISCOUNT_RESIDENT", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")

	cfg := Load()

	assert.Equal(t, DriverPostgres, cfg.DBDriver)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 0.10, cfg.DiscountResident)
	assert.Equal(t, 0.05, cfg.DiscountNonResident)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "MONGO")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DISCOUNT_NON_RESIDENT", "0.07")
	t.Setenv("TOKEN_TTL", "2h")
	t.Setenv("UPLOAD_NORMALIZE", "true")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, ,http://localhost:5173")

	cfg := Load()

	assert.Equal(t, DriverMongo, cfg.DBDriver)
	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, 0.07, cfg.DiscountNonResident)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.True(t, cfg.UploadNormalize)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:5173"}, cfg.CORSOrigins)
}

func TestValidate_RejectsBadSettings(t *testing.T) {
	cfg := Load()

	cfg.DBDriver = "sqlite"
	assert.Error(t, cfg.Validate())

	cfg.DBDriver = DriverMemory
	cfg.DiscountResident = 1.5
	assert.Error(t, cfg.Validate())

	cfg.DiscountResident = 0.1
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())
}
