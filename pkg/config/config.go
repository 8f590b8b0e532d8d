package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	AIRec    AIRecConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

// AIRecConfig points at the external AI recommendation service. An empty
// BaseURL disables the AI path entirely; the engine then scores locally.
type AIRecConfig struct {
	BaseURL           string
	BasicAuthUsername string
	BasicAuthPassword string
	Timeout           time.Duration
	CacheTTL          time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	aiTimeoutSec, err := strconv.Atoi(getEnv("AIREC_TIMEOUT_SECONDS", "5"))
	if err != nil {
		return nil, errors.New("invalid ai recommender timeout")
	}

	aiCacheTTLSec, err := strconv.Atoi(getEnv("AIREC_CACHE_TTL_SECONDS", "300"))
	if err != nil {
		return nil, errors.New("invalid ai recommender cache ttl")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "TerpMarket API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "terp_market"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		AIRec: AIRecConfig{
			BaseURL:           getEnv("AIREC_BASE_URL", ""),
			BasicAuthUsername: getEnv("AIREC_BASIC_AUTH_USERNAME", ""),
			BasicAuthPassword: getEnv("AIREC_BASIC_AUTH_PASSWORD", ""),
			Timeout:           time.Duration(aiTimeoutSec) * time.Second,
			CacheTTL:          time.Duration(aiCacheTTLSec) * time.Second,
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	if cfg.Database.Password == "" {
		return nil, errors.New("missing database password")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
