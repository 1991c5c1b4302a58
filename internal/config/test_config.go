package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadTestConfig reads TEST_DB_* variables for repository integration tests.
// When any of them is missing it returns an empty Config and the tests fall
// back to their default DSN.
func LoadTestConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	names := []string{"TEST_DB_HOST", "TEST_DB_PORT", "TEST_DB_USER", "TEST_DB_PASSWORD", "TEST_DB_NAME"}
	values := make(map[string]string, len(names))
	for _, name := range names {
		v := os.Getenv(name)
		if v == "" {
			return cfg, nil
		}
		values[name] = v
	}

	port, err := strconv.Atoi(values["TEST_DB_PORT"])
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}

	cfg.Database = DatabaseConfig{
		Host:     values["TEST_DB_HOST"],
		Port:     port,
		User:     values["TEST_DB_USER"],
		Password: values["TEST_DB_PASSWORD"],
		DBName:   values["TEST_DB_NAME"],
	}
	return cfg, nil
}
