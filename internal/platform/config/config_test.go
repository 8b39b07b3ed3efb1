package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithMemoryStorage(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "memory")

	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "300-M", cfg.RateLimit)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("PGSQL_URL", "postgres://u:p@localhost:5432/mlm")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://admin.example.com,https://app.example.com")
	t.Setenv("IDEMPOTENCY_TTL", "90m")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("IS_PRODUCTION", "true")

	cfg, err := loadFrom(viper.New())
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Len(t, cfg.CORSAllowedOrigins, 2)
	assert.Equal(t, 90*time.Minute, cfg.IdempotencyTTL)
	assert.True(t, cfg.IsProduction)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestLoadRejectsBadSettings(t *testing.T) {
	t.Run("postgres without url", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "postgres")
		t.Setenv("PGSQL_URL", "")
		_, err := loadFrom(viper.New())
		assert.ErrorContains(t, err, "PGSQL_URL")
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "mongo")
		_, err := loadFrom(viper.New())
		assert.ErrorContains(t, err, "STORAGE_DRIVER")
	})

	t.Run("default secret in production", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "memory")
		t.Setenv("IS_PRODUCTION", "true")
		t.Setenv("JWT_SECRET", "")
		_, err := loadFrom(viper.New())
		assert.ErrorContains(t, err, "JWT_SECRET")
	})
}
