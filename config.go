package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"bookstore-api/database"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the bookstore API.
type Config struct {
	Port     string
	Postgres database.PostgresConfig

	// RedisURL is optional; when empty the book list cache is disabled.
	RedisURL string

	// KafkaBrokers is optional; when empty order events are not published.
	KafkaBrokers []string
	KafkaTopic   string

	JWTSecret string
	JWTExpiry time.Duration
}

// LoadConfig reads configuration from the environment, loading a local
// .env file first when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		Postgres: database.PostgresConfig{
			User:     os.Getenv("POSTGRES_USER"),
			Password: os.Getenv("POSTGRES_PASSWORD"),
			DBName:   os.Getenv("POSTGRES_DB"),
			Host:     os.Getenv("POSTGRES_HOST"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			SSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
			TimeZone: getEnv("POSTGRES_TIMEZONE", "UTC"),
		},
		RedisURL:   os.Getenv("REDIS_URL"),
		KafkaTopic: getEnv("KAFKA_TOPIC", "order.placed"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	expiry := getEnv("JWT_EXPIRY", "1h")
	d, err := time.ParseDuration(expiry)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRY %q: %w", expiry, err)
	}
	cfg.JWTExpiry = d

	if cfg.Postgres.User == "" || cfg.Postgres.Password == "" || cfg.Postgres.DBName == "" || cfg.Postgres.Host == "" {
		return nil, fmt.Errorf("database config incomplete")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
