package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
)

type Config struct {
	AppURL                 string `yaml:"app_url"`
	RateLimit              int    `yaml:"rate_limit_per_minute"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
	Debug                  bool   `yaml:"debug"`

	StorageDriver    string `yaml:"storage_driver"`
	StorageKey       string `yaml:"storage_key"`
	DatabaseDSN      string `yaml:"database_dsn"`
	RedisAddr        string `yaml:"redis_addr"`
	SeedInitialTasks bool   `yaml:"seed_initial_tasks"`

	RecipeAPIURL          string `yaml:"recipe_api_url"`
	RecipeDefaultQuery    string `yaml:"recipe_default_query"`
	RecipeTimeoutSeconds  int    `yaml:"recipe_timeout_seconds"`
	RecipeRetries         int    `yaml:"recipe_retries"`
	RecipeCacheTTLSeconds int    `yaml:"recipe_cache_ttl_seconds"`
	RecipeDebounceMillis  int    `yaml:"recipe_debounce_millis"`
}

// Load reads the configuration from the environment, then overlays the
// YAML file at path when path is not empty, and validates the result.
func Load(path string) (Config, error) {
	appHost := getEnv("APP_HOST", "127.0.0.1")
	appPort := getEnv("APP_PORT", "8080")
	redisHost := getEnv("REDIS_HOST", "127.0.0.1")
	redisPort := getEnv("REDIS_PORT", "6379")

	cfg := Config{
		AppURL:                 fmt.Sprintf("%s:%s", appHost, appPort),
		RateLimit:              getEnvAsInt("RATE_LIMIT_PER_MINUTE", 120),
		ShutdownTimeoutSeconds: getEnvAsInt("SHUTDOWN_TIMEOUT_SECONDS", 20),
		Debug:                  getEnvAsBool("DEBUG", false),

		StorageDriver:    getEnv("STORAGE_DRIVER", StorageSQLite),
		StorageKey:       getEnv("STORAGE_KEY", "task-storage"),
		DatabaseDSN:      getEnv("DATABASE_DSN", "tasks.db"),
		RedisAddr:        fmt.Sprintf("%s:%s", redisHost, redisPort),
		SeedInitialTasks: getEnvAsBool("SEED_INITIAL_TASKS", true),

		RecipeAPIURL:          getEnv("RECIPE_API_URL", "https://www.themealdb.com/api/json/v1/1"),
		RecipeDefaultQuery:    getEnv("RECIPE_DEFAULT_QUERY", "chicken"),
		RecipeTimeoutSeconds:  getEnvAsInt("RECIPE_TIMEOUT_SECONDS", 10),
		RecipeRetries:         getEnvAsInt("RECIPE_RETRIES", 3),
		RecipeCacheTTLSeconds: getEnvAsInt("RECIPE_CACHE_TTL_SECONDS", 600),
		RecipeDebounceMillis:  getEnvAsInt("RECIPE_DEBOUNCE_MILLIS", 500),
	}

	if path != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func validate(cfg Config) error {
	if cfg.AppURL == "" {
		return errors.New("APP_URL must not be empty (e.g. 127.0.0.1:8080)")
	}
	if cfg.RateLimit <= 0 {
		return errors.New("RATE_LIMIT_PER_MINUTE must be greater than 0")
	}
	if cfg.ShutdownTimeoutSeconds <= 0 {
		return errors.New("SHUTDOWN_TIMEOUT_SECONDS must be greater than 0")
	}
	switch cfg.StorageDriver {
	case StorageSQLite:
		if cfg.DatabaseDSN == "" {
			return errors.New("DATABASE_DSN must not be empty")
		}
	case StorageRedis:
		if cfg.RedisAddr == "" {
			return errors.New("REDIS_HOST must not be empty")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", StorageSQLite, StorageRedis, cfg.StorageDriver)
	}
	if cfg.StorageKey == "" {
		return errors.New("STORAGE_KEY must not be empty")
	}
	if cfg.RecipeAPIURL == "" {
		return errors.New("RECIPE_API_URL must not be empty")
	}
	if cfg.RecipeTimeoutSeconds <= 0 {
		return errors.New("RECIPE_TIMEOUT_SECONDS must be greater than 0")
	}
	if cfg.RecipeRetries < 0 {
		return errors.New("RECIPE_RETRIES must not be negative")
	}
	if cfg.RecipeCacheTTLSeconds < 0 {
		return errors.New("RECIPE_CACHE_TTL_SECONDS must not be negative")
	}
	if cfg.RecipeDebounceMillis < 0 {
		return errors.New("RECIPE_DEBOUNCE_MILLIS must not be negative")
	}
	return nil
}

func (c Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func (c Config) RecipeTimeout() time.Duration {
	return time.Duration(c.RecipeTimeoutSeconds) * time.Second
}

func (c Config) RecipeCacheTTL() time.Duration {
	return time.Duration(c.RecipeCacheTTLSeconds) * time.Second
}

func (c Config) RecipeDebounce() time.Duration {
	return time.Duration(c.RecipeDebounceMillis) * time.Millisecond
}

func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Fatalf("invalid integer value for %s", key)
		}
		return i
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Fatalf("invalid boolean value for %s", key)
		}
		return b
	}
	return defaultVal
}
