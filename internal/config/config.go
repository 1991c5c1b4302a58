// Package config provides configuration for the portfolio API
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Media storage backends
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// Draft store backends
const (
	DraftStoreMemory = "memory"
	DraftStoreRedis  = "redis"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
	CORS     CORSConfig
	JWT      JWTConfig
	Media    MediaConfig
	S3       S3Config
	Drafts   DraftConfig
	Metrics  MetricsConfig
	APIKey   string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port    int
	BaseURL string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// JWTConfig holds the secret shared with the identity provider
type JWTConfig struct {
	Secret string
}

// MediaConfig holds object store and upload gateway settings
type MediaConfig struct {
	Storage       string
	BasePath      string
	PublicURL     string
	GatewayURL    string
	UploadTimeout time.Duration
}

// S3Config holds S3 bucket settings, used when Media.Storage is "s3"
type S3Config struct {
	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// DraftConfig holds draft session settings
type DraftConfig struct {
	Store       string
	TTL         time.Duration
	MaxSessions int
	MaxFiles    int
	MaxBytes    int64
	RedisURL    string
}

// MetricsConfig holds Prometheus settings
type MetricsConfig struct {
	Namespace string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// .env is optional, real environment variables win
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		return nil, fmt.Errorf("DB_HOST is required")
	}
	cfg.Database.Host = dbHost

	dbPortStr := os.Getenv("DB_PORT")
	if dbPortStr == "" {
		return nil, fmt.Errorf("DB_PORT is required")
	}
	dbPort, err := strconv.Atoi(dbPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	cfg.Database.Port = dbPort

	dbUser := os.Getenv("DB_USER")
	if dbUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}
	cfg.Database.User = dbUser

	dbPassword := os.Getenv("DB_PASSWORD")
	if dbPassword == "" {
		return nil, fmt.Errorf("DB_PASSWORD is required")
	}
	cfg.Database.Password = dbPassword

	dbName := os.Getenv("DB_NAME")
	if dbName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	cfg.Database.DBName = dbName

	// Server configuration
	serverPort, err := intEnv("SERVER_PORT", 8080)
	if err != nil {
		return nil, err
	}
	cfg.Server.Port = serverPort
	cfg.Server.BaseURL = strings.TrimRight(stringEnv("BASE_URL", fmt.Sprintf("http://localhost:%d", serverPort)), "/")

	cfg.Logging.Level = stringEnv("LOG_LEVEL", "info")
	cfg.CORS.AllowedOrigins = parseOrigins(os.Getenv("CORS_ALLOWED_ORIGINS"))

	cfg.JWT.Secret = os.Getenv("JWT_SECRET")
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// Guards the object store endpoint; the API itself is its only client
	cfg.APIKey = os.Getenv("API_KEY")
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY is required")
	}

	if err := loadMedia(cfg); err != nil {
		return nil, err
	}
	if err := loadDrafts(cfg); err != nil {
		return nil, err
	}

	cfg.Metrics.Namespace = stringEnv("METRICS_NAMESPACE", "portfolio")

	return cfg, nil
}

func loadMedia(cfg *Config) error {
	cfg.Media.Storage = stringEnv("MEDIA_STORAGE", StorageLocal)
	cfg.Media.BasePath = stringEnv("MEDIA_BASE_PATH", "./media")
	cfg.Media.PublicURL = strings.TrimRight(stringEnv("MEDIA_PUBLIC_URL", cfg.Server.BaseURL+"/media"), "/")
	cfg.Media.GatewayURL = strings.TrimRight(stringEnv("UPLOAD_GATEWAY_URL", cfg.Server.BaseURL), "/")

	timeout, err := durationEnv("UPLOAD_TIMEOUT", 30*time.Second)
	if err != nil {
		return err
	}
	cfg.Media.UploadTimeout = timeout

	switch cfg.Media.Storage {
	case StorageLocal:
	case StorageS3:
		cfg.S3 = S3Config{
			Bucket:    os.Getenv("S3_BUCKET"),
			Region:    stringEnv("S3_REGION", "us-east-1"),
			Endpoint:  os.Getenv("S3_ENDPOINT"),
			AccessKey: os.Getenv("S3_ACCESS_KEY"),
			SecretKey: os.Getenv("S3_SECRET_KEY"),
		}
		if cfg.S3.Bucket == "" || cfg.S3.AccessKey == "" || cfg.S3.SecretKey == "" {
			return fmt.Errorf("S3_BUCKET, S3_ACCESS_KEY and S3_SECRET_KEY are required when MEDIA_STORAGE=s3")
		}
	default:
		return fmt.Errorf("invalid MEDIA_STORAGE: %q", cfg.Media.Storage)
	}
	return nil
}

func loadDrafts(cfg *Config) error {
	cfg.Drafts.Store = stringEnv("DRAFT_STORE", DraftStoreMemory)

	ttl, err := durationEnv("DRAFT_TTL", time.Hour)
	if err != nil {
		return err
	}
	cfg.Drafts.TTL = ttl

	maxSessions, err := intEnv("DRAFT_MAX_SESSIONS", 1024)
	if err != nil {
		return err
	}
	cfg.Drafts.MaxSessions = maxSessions

	maxFiles, err := intEnv("DRAFT_MAX_FILES", 50)
	if err != nil {
		return err
	}
	cfg.Drafts.MaxFiles = maxFiles

	maxBytes, err := intEnv("DRAFT_MAX_BYTES", 100*1024*1024)
	if err != nil {
		return err
	}
	cfg.Drafts.MaxBytes = int64(maxBytes)

	switch cfg.Drafts.Store {
	case DraftStoreMemory:
	case DraftStoreRedis:
		cfg.Drafts.RedisURL = os.Getenv("REDIS_URL")
		if cfg.Drafts.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when DRAFT_STORE=redis")
		}
	default:
		return fmt.Errorf("invalid DRAFT_STORE: %q", cfg.Drafts.Store)
	}
	return nil
}

// parseOrigins splits a comma-separated origin list; empty means allow all
func parseOrigins(raw string) []string {
	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func stringEnv(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

func intEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", name)
	}
	return n, nil
}

func durationEnv(name string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive", name)
	}
	return d, nil
}

// DSN returns the database connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true&charset=utf8mb4",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.DBName,
	)
}
