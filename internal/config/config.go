package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	OTP      OTPConfig
	Summary  SummaryConfig
	Seed     SeedConfig
}

type ServerConfig struct {
	Port        string
	Environment string
	LogLevel    string
	LogFormat   string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret    string
	Algorithm string
	TTL       time.Duration
}

type OTPConfig struct {
	TTL time.Duration
}

type SummaryConfig struct {
	Hour int
}

// SeedConfig holds the optional bootstrap credentials for the first super
// admin of a fresh deployment.
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminPhone    string
}

// Load reads configuration from the environment, with an optional .env
// file. An absent or empty JWT secret is a startup failure.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB := getIntEnv("REDIS_DB", 0)
	jwtHours := getIntEnv("JWT_ACCESS_TOKEN_EXPIRE_HOURS", 24)
	otpMinutes := getIntEnv("OTP_TTL_MINUTES", 10)
	summaryHour := getIntEnv("SUMMARY_HOUR", 18)

	cfg := &Config{
		Server: ServerConfig{
			Port:        getEnv("PORT", "8000"),
			Environment: getEnv("ENVIRONMENT", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			LogFormat:   getEnv("LOG_FORMAT", "text"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cleankili"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		JWT: JWTConfig{
			Secret:    os.Getenv("JWT_SECRET_KEY"),
			Algorithm: getEnv("JWT_ALGORITHM", "HS256"),
			TTL:       time.Duration(jwtHours) * time.Hour,
		},
		OTP: OTPConfig{
			TTL: time.Duration(otpMinutes) * time.Minute,
		},
		Summary: SummaryConfig{
			Hour: summaryHour,
		},
		Seed: SeedConfig{
			AdminEmail:    getEnv("SEED_ADMIN_EMAIL", ""),
			AdminPassword: getEnv("SEED_ADMIN_PASSWORD", ""),
			AdminPhone:    getEnv("SEED_ADMIN_PHONE", ""),
		},
	}

	if cfg.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET_KEY must be set")
	}
	switch cfg.JWT.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return nil, fmt.Errorf("unsupported JWT algorithm %q", cfg.JWT.Algorithm)
	}
	if cfg.JWT.TTL <= 0 {
		return nil, fmt.Errorf("JWT_ACCESS_TOKEN_EXPIRE_HOURS must be positive, got %d", jwtHours)
	}
	if cfg.Summary.Hour < 0 || cfg.Summary.Hour > 23 {
		return nil, fmt.Errorf("SUMMARY_HOUR out of range: %d", cfg.Summary.Hour)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getIntEnv falls back to the default for unset or non-numeric values
// rather than silently producing zero.
func getIntEnv(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
