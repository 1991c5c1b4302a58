package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var optionalVars = []string{
	"SERVER_PORT", "BASE_URL", "LOG_LEVEL", "CORS_ALLOWED_ORIGINS",
	"MEDIA_STORAGE", "MEDIA_BASE_PATH", "MEDIA_PUBLIC_URL", "UPLOAD_GATEWAY_URL", "UPLOAD_TIMEOUT",
	"S3_BUCKET", "S3_REGION", "S3_ENDPOINT", "S3_ACCESS_KEY", "S3_SECRET_KEY",
	"DRAFT_STORE", "DRAFT_TTL", "DRAFT_MAX_SESSIONS", "DRAFT_MAX_FILES", "DRAFT_MAX_BYTES", "REDIS_URL", "METRICS_NAMESPACE",
}

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_USER", "portfolio")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "portfolio")
	t.Setenv("JWT_SECRET", "jwt-secret")
	t.Setenv("API_KEY", "api-key")
	for _, name := range optionalVars {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, []string{"*"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, StorageLocal, cfg.Media.Storage)
	assert.Equal(t, "./media", cfg.Media.BasePath)
	assert.Equal(t, "http://localhost:8080/media", cfg.Media.PublicURL)
	assert.Equal(t, "http://localhost:8080", cfg.Media.GatewayURL)
	assert.Equal(t, 30*time.Second, cfg.Media.UploadTimeout)
	assert.Equal(t, DraftStoreMemory, cfg.Drafts.Store)
	assert.Equal(t, time.Hour, cfg.Drafts.TTL)
	assert.Equal(t, 1024, cfg.Drafts.MaxSessions)
	assert.Equal(t, 50, cfg.Drafts.MaxFiles)
	assert.Equal(t, int64(100*1024*1024), cfg.Drafts.MaxBytes)
	assert.Equal(t, "portfolio", cfg.Metrics.Namespace)
	assert.Equal(t, "api-key", cfg.APIKey)
	assert.Equal(t, "jwt-secret", cfg.JWT.Secret)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("BASE_URL", "https://api.example.com/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, ,https://admin.example.com")
	t.Setenv("MEDIA_STORAGE", "s3")
	t.Setenv("S3_BUCKET", "media")
	t.Setenv("S3_ACCESS_KEY", "minio")
	t.Setenv("S3_SECRET_KEY", "minio123")
	t.Setenv("S3_ENDPOINT", "http://minio:9000")
	t.Setenv("DRAFT_STORE", "redis")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("DRAFT_TTL", "15m")
	t.Setenv("UPLOAD_TIMEOUT", "5s")
	t.Setenv("DRAFT_MAX_FILES", "10")
	t.Setenv("DRAFT_MAX_BYTES", "1048576")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "https://api.example.com", cfg.Server.BaseURL)
	assert.Equal(t, "https://api.example.com/media", cfg.Media.PublicURL)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, S3Config{Bucket: "media", Region: "us-east-1", Endpoint: "http://minio:9000", AccessKey: "minio", SecretKey: "minio123"}, cfg.S3)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Drafts.RedisURL)
	assert.Equal(t, 15*time.Minute, cfg.Drafts.TTL)
	assert.Equal(t, 5*time.Second, cfg.Media.UploadTimeout)
	assert.Equal(t, 10, cfg.Drafts.MaxFiles)
	assert.Equal(t, int64(1048576), cfg.Drafts.MaxBytes)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name          string
		env           map[string]string
		expectedError string
	}{
		{name: "missing db host", env: map[string]string{"DB_HOST": ""}, expectedError: "DB_HOST is required"},
		{name: "invalid db port", env: map[string]string{"DB_PORT": "abc"}, expectedError: "invalid DB_PORT"},
		{name: "missing jwt secret", env: map[string]string{"JWT_SECRET": ""}, expectedError: "JWT_SECRET is required"},
		{name: "missing api key", env: map[string]string{"API_KEY": ""}, expectedError: "API_KEY is required"},
		{name: "invalid server port", env: map[string]string{"SERVER_PORT": "-1"}, expectedError: "invalid SERVER_PORT"},
		{name: "unknown storage", env: map[string]string{"MEDIA_STORAGE": "ftp"}, expectedError: "invalid MEDIA_STORAGE"},
		{name: "s3 without bucket", env: map[string]string{"MEDIA_STORAGE": "s3"}, expectedError: "S3_BUCKET"},
		{name: "redis without url", env: map[string]string{"DRAFT_STORE": "redis"}, expectedError: "REDIS_URL is required"},
		{name: "unknown draft store", env: map[string]string{"DRAFT_STORE": "disk"}, expectedError: "invalid DRAFT_STORE"},
		{name: "bad ttl", env: map[string]string{"DRAFT_TTL": "soon"}, expectedError: "invalid DRAFT_TTL"},
		{name: "zero draft files", env: map[string]string{"DRAFT_MAX_FILES": "0"}, expectedError: "invalid DRAFT_MAX_FILES"},
		{name: "bad draft bytes", env: map[string]string{"DRAFT_MAX_BYTES": "lots"}, expectedError: "invalid DRAFT_MAX_BYTES"},
		{name: "zero timeout", env: map[string]string{"UPLOAD_TIMEOUT": "0s"}, expectedError: "invalid UPLOAD_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			assert.Nil(t, cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{
		Host:     "db",
		Port:     3306,
		User:     "user",
		Password: "pass",
		DBName:   "portfolio",
	}}

	assert.Equal(t, "user:pass@tcp(db:3306)/portfolio?parseTime=true&charset=utf8mb4", cfg.DSN())
}

func TestLoadTestConfig(t *testing.T) {
	t.Run("unset", func(t *testing.T) {
		t.Setenv("TEST_DB_HOST", "")

		cfg, err := LoadTestConfig()
		require.NoError(t, err)
		assert.Empty(t, cfg.Database.Host)
	})

	t.Run("set", func(t *testing.T) {
		t.Setenv("TEST_DB_HOST", "127.0.0.1")
		t.Setenv("TEST_DB_PORT", "3307")
		t.Setenv("TEST_DB_USER", "root")
		t.Setenv("TEST_DB_PASSWORD", "root")
		t.Setenv("TEST_DB_NAME", "portfolio_test")

		cfg, err := LoadTestConfig()
		require.NoError(t, err)
		assert.Equal(t, 3307, cfg.Database.Port)
		assert.Equal(t, "root:root@tcp(127.0.0.1:3307)/portfolio_test?parseTime=true&charset=utf8mb4", cfg.DSN())
	})
}
