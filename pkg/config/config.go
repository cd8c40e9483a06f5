package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	StoreBackendPostgres = "postgres"
	StoreBackendRedis    = "redis"
)

type Config struct {
	App            AppConfig
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	Recommendation RecommendationConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port        string
	CORSOrigins string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type RecommendationConfig struct {
	// StoreBackend selects where recommendation sets are persisted.
	StoreBackend   string
	ScoringFile    string
	Seed           int64
	FreshnessHours int
	RetentionCap   int
	SeedCatalog    bool

	// set when the value came from the environment rather than the default
	FreshnessFromEnv bool
	RetentionFromEnv bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := getEnvInt("REDIS_DB", 0)
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	seed, err := strconv.ParseInt(getEnv("RECO_SEED", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RECO_SEED: %w", err)
	}

	freshness, err := getEnvInt("RECO_FRESHNESS_HOURS", 24)
	if err != nil {
		return nil, fmt.Errorf("invalid RECO_FRESHNESS_HOURS: %w", err)
	}

	retention, err := getEnvInt("RECO_RETENTION", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid RECO_RETENTION: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Customer Agent"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port:        getEnv("PORT", "8000"),
			CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "customers"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Recommendation: RecommendationConfig{
			StoreBackend:   getEnv("RECO_STORE", StoreBackendPostgres),
			ScoringFile:    getEnv("RECO_SCORING_FILE", ""),
			Seed:           seed,
			FreshnessHours: freshness,
			RetentionCap:   retention,
			SeedCatalog:    getEnv("RECO_SEED_CATALOG", "true") == "true",

			FreshnessFromEnv: isSet("RECO_FRESHNESS_HOURS"),
			RetentionFromEnv: isSet("RECO_RETENTION"),
		},
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	switch cfg.Recommendation.StoreBackend {
	case StoreBackendPostgres, StoreBackendRedis:
	default:
		return nil, fmt.Errorf("unknown RECO_STORE %q", cfg.Recommendation.StoreBackend)
	}

	if cfg.Recommendation.FreshnessHours <= 0 {
		return nil, errors.New("RECO_FRESHNESS_HOURS must be positive")
	}

	if cfg.Recommendation.RetentionCap <= 0 {
		return nil, errors.New("RECO_RETENTION must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func isSet(key string) bool {
	return os.Getenv(key) != ""
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}

	return strconv.Atoi(val)
}
