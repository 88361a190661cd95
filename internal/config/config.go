package config

import (
	"fmt"
	"os"
	"time"
)

const (
	// SessionTokenTTL bounds how long a session token stays verifiable.
	// The sessions table can revoke it earlier.
	SessionTokenTTL = 72 * time.Hour

	// LoginRateLimitPerMinute and LoginRateBurst throttle the login
	// endpoint per client IP.
	LoginRateLimitPerMinute = 10
	LoginRateBurst          = 5
)

// Config is assembled from environment variables, typically loaded from a
// .env file in development.
type Config struct {
	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr     string
	RedisPassword string

	TokenSecret string
	ListenAddr  string
}

func Load() Config {
	return Config{
		DBHost:        getenv("DB_HOST", "localhost"),
		DBUser:        getenv("DB_USER", "user"),
		DBPassword:    getenv("DB_PASSWORD", "password"),
		DBName:        getenv("DB_NAME", "lecturehubdb"),
		DBPort:        getenv("DB_PORT", "5432"),
		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		TokenSecret:   getenv("TOKEN_SECRET", "dev-only-secret"),
		ListenAddr:    getenv("LISTEN_ADDR", ":8080"),
	}
}

// DSN returns the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
