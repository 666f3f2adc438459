package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	JWT       JWTConfig
	App       AppConfig
	Leave     LeaveConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
}

type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Name           string
	SSLMode        string
	MaxConns       int32
	MinConns       int32
	MigrateOnStart bool
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port               int
	Env                string
	LogLevel           string
	CORSAllowedOrigins []string
}

// LeaveConfig holds the opening balance given to newly added employees.
type LeaveConfig struct {
	DefaultCasual int
	DefaultSick   int
	DefaultEarned int
}

type CacheConfig struct {
	SummarySize int
	SummaryTTL  time.Duration
}

type RateLimitConfig struct {
	LoginPerSecond float64
	LoginBurst     int
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	config := &Config{}
	var errs []error

	// Database configuration
	config.Database = DatabaseConfig{
		Host:           getEnv("DB_HOST", "localhost"),
		Port:           getEnvInt("DB_PORT", 5432, &errs),
		User:           getEnv("DB_USER", "postgres"),
		Password:       getEnv("DB_PASSWORD", ""),
		Name:           getEnv("DB_NAME", "timeleave"),
		SSLMode:        getEnv("DB_SSL_MODE", "disable"),
		MaxConns:       int32(getEnvInt("DB_MAX_CONNS", 25, &errs)),
		MinConns:       int32(getEnvInt("DB_MIN_CONNS", 5, &errs)),
		MigrateOnStart: getEnvBool("MIGRATE_ON_START", true, &errs),
	}

	// Application configuration
	config.App = AppConfig{
		Port:               getEnvInt("APP_PORT", 8080, &errs),
		Env:                getEnv("APP_ENV", "development"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSAllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Leave = LeaveConfig{
		DefaultCasual: getEnvInt("LEAVE_DEFAULT_CASUAL", 8, &errs),
		DefaultSick:   getEnvInt("LEAVE_DEFAULT_SICK", 4, &errs),
		DefaultEarned: getEnvInt("LEAVE_DEFAULT_EARNED", 12, &errs),
	}

	config.Cache = CacheConfig{
		SummarySize: getEnvInt("SUMMARY_CACHE_SIZE", 1024, &errs),
		SummaryTTL:  getEnvDuration("SUMMARY_CACHE_TTL", 5*time.Minute, &errs),
	}

	config.RateLimit = RateLimitConfig{
		LoginPerSecond: getEnvFloat("LOGIN_RATE_PER_SECOND", 1, &errs),
		LoginBurst:     getEnvInt("LOGIN_RATE_BURST", 5, &errs),
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
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
	if _, err := time.ParseDuration(c.JWT.AccessExpiration); err != nil {
		return fmt.Errorf("invalid JWT_ACCESS_EXPIRATION_TIME: %w", err)
	}
	if c.Leave.DefaultCasual < 0 || c.Leave.DefaultSick < 0 || c.Leave.DefaultEarned < 0 {
		return fmt.Errorf("LEAVE_DEFAULT_* values must not be negative")
	}
	if c.Cache.SummarySize < 1 {
		return fmt.Errorf("SUMMARY_CACHE_SIZE must be positive")
	}
	if c.Cache.SummaryTTL <= 0 {
		return fmt.Errorf("SUMMARY_CACHE_TTL must be positive")
	}
	if c.RateLimit.LoginPerSecond <= 0 || c.RateLimit.LoginBurst < 1 {
		return fmt.Errorf("LOGIN_RATE_PER_SECOND and LOGIN_RATE_BURST must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int, errs *[]error) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64, errs *[]error) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool, errs *[]error) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("invalid %s: %w", key, err))
		return fallback
	}
	return d
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
