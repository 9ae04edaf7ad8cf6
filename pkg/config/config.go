package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Environment string
	ServerPort  int
	LogLevel    string

	DatabaseHost     string
	DatabasePort     int
	DatabaseUser     string
	DatabasePassword string
	DatabaseName     string
	DatabaseSSLMode  string

	// Identity provider admin API. The service key authorizes privileged
	// calls; the JWT secret is the provider's token signing secret, shared so
	// this service can verify caller tokens and mint impersonation tokens.
	IdentityBaseURL    string
	IdentityServiceKey string
	IdentityJWTSecret  string
}

// Load reads configuration from the environment, with a .env file as
// fallback for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	port, err := strconv.Atoi(getEnv("SERVER_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}

	dbPort, err := strconv.Atoi(getEnv("DATABASE_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DATABASE_PORT: %w", err)
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		ServerPort:  port,
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		DatabaseHost:     getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:     dbPort,
		DatabaseUser:     getEnv("DATABASE_USER", "hrbackend"),
		DatabasePassword: getEnv("DATABASE_PASSWORD", "dev"),
		DatabaseName:     getEnv("DATABASE_NAME", "hrbackend"),
		DatabaseSSLMode:  getEnv("DATABASE_SSLMODE", "disable"),

		IdentityBaseURL:    os.Getenv("IDENTITY_BASE_URL"),
		IdentityServiceKey: os.Getenv("IDENTITY_SERVICE_ROLE_KEY"),
		IdentityJWTSecret:  os.Getenv("IDENTITY_JWT_SECRET"),
	}

	if cfg.IdentityBaseURL == "" {
		return nil, fmt.Errorf("IDENTITY_BASE_URL is required")
	}
	if cfg.IdentityServiceKey == "" {
		return nil, fmt.Errorf("IDENTITY_SERVICE_ROLE_KEY is required")
	}
	if cfg.IdentityJWTSecret == "" {
		return nil, fmt.Errorf("IDENTITY_JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
