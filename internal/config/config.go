package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds verification settings for tokens issued by the identity service
type JWTConfig struct {
	Secret string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// AttendanceConfig holds the attendance engine defaults
type AttendanceConfig struct {
	MaxDailySessions     int
	FallbackTimezone     string
	DefaultExpectedHours float64
	ReconcileInterval    time.Duration
}

func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "peopleops-attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
	}

	// Attendance engine configuration
	maxSessions, err := strconv.Atoi(getEnv("MAX_DAILY_SESSIONS", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_DAILY_SESSIONS: %w", err)
	}

	expectedHours, err := strconv.ParseFloat(getEnv("DEFAULT_EXPECTED_HOURS", "9.0"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_EXPECTED_HOURS: %w", err)
	}

	reconcileInterval, err := time.ParseDuration(getEnv("RECONCILE_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid RECONCILE_INTERVAL: %w", err)
	}

	config.Attendance = AttendanceConfig{
		MaxDailySessions:     maxSessions,
		FallbackTimezone:     getEnv("FALLBACK_TIMEZONE", "Asia/Kolkata"),
		DefaultExpectedHours: expectedHours,
		ReconcileInterval:    reconcileInterval,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Attendance.MaxDailySessions < 1 {
		return fmt.Errorf("MAX_DAILY_SESSIONS must be at least 1")
	}
	if _, err := time.LoadLocation(c.Attendance.FallbackTimezone); err != nil {
		return fmt.Errorf("invalid FALLBACK_TIMEZONE: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
