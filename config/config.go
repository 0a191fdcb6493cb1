package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported database drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	Env Environment

	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	SQLitePath string

	// Directory holding the SQL migration files applied on PostgreSQL
	MigrationsDir string

	// Redis configuration, optional. When no Redis is configured the rate
	// limiter falls back to an in-process token bucket.
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// Rate limiting: RateLimit requests per RateLimitWindow per client.
	RateLimit       int
	RateLimitWindow time.Duration

	CORSOrigins []string
	LogLevel    string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{Env: env}

	switch env {
	case CI:
		if err := loadCIConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load CI configuration: %w", err)
		}
	case Development, Test:
		if err := loadDevConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load development configuration: %w", err)
		}
	case Production:
		if err := loadProdConfig(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// PostgresDSN builds the keyword/value connection string used by the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// Addr is the listen address of the HTTP server
func (c *Config) Addr() string {
	return c.ServerHost + ":" + c.ServerPort
}

// RedisEnabled reports whether any Redis connection settings were provided
func (c *Config) RedisEnabled() bool {
	return c.RedisURL != "" || c.RedisHost != ""
}

// loadCIConfig loads configuration for the CI environment from environment variables only
func loadCIConfig(cfg *Config) error {
	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", ":memory:")
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", "migrations")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))

	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	if cfg.DBDriver == DriverPostgres && cfg.DBPassword == "" {
		return fmt.Errorf("DB_PASSWORD environment variable is required in CI environment")
	}

	return loadLimits(cfg)
}

// loadDevConfig loads configuration for development and test. A .env file in the
// working directory is honoured when present; every setting has a local default.
func loadDevConfig(cfg *Config) error {
	_ = godotenv.Load()

	cfg.ServerPort = getEnv("SERVER_PORT", "8080")
	cfg.ServerHost = getEnv("SERVER_HOST", "localhost")
	cfg.DBDriver = getEnv("DB_DRIVER", DriverSQLite)
	cfg.DBHost = getEnv("DB_HOST", "localhost")
	cfg.DBPort = getEnv("DB_PORT", "5432")
	cfg.DBUser = getEnv("DB_USER", "postgres")
	cfg.DBPassword = getEnv("DB_PASSWORD", "postgres")
	cfg.DBName = getEnv("DB_NAME", "recipes")
	cfg.DBSSLMode = getEnv("DB_SSL_MODE", "disable")
	cfg.SQLitePath = getEnv("SQLITE_PATH", "recipes.db")
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", "migrations")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = getEnv("REDIS_PORT", "6379")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.LogLevel = getEnv("LOG_LEVEL", "debug")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "http://localhost:5173"))

	return loadLimits(cfg)
}

// loadProdConfig loads configuration for production. Credentials come from Docker
// secrets; everything else may also be supplied through the environment.
func loadProdConfig(cfg *Config) error {
	cfg.ServerPort = secretOrEnv("server_port", "SERVER_PORT", "8080")
	cfg.ServerHost = secretOrEnv("server_host", "SERVER_HOST", "")
	cfg.DBDriver = getEnv("DB_DRIVER", DriverPostgres)
	cfg.DBHost = secretOrEnv("db_host", "DB_HOST", "")
	cfg.DBPort = secretOrEnv("db_port", "DB_PORT", "5432")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = secretOrEnv("db_name", "DB_NAME", "")
	cfg.DBSSLMode = secretOrEnv("db_ssl_mode", "DB_SSL_MODE", "require")
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", "migrations")
	cfg.RedisHost = secretOrEnv("redis_host", "REDIS_HOST", "")
	cfg.RedisPort = secretOrEnv("redis_port", "REDIS_PORT", "6379")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.RedisURL = secretOrEnv("redis_url", "REDIS_URL", "")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", ""))

	return loadLimits(cfg)
}

func loadLimits(cfg *Config) error {
	var err error
	if cfg.RedisDB, err = strconv.Atoi(getEnv("REDIS_DB", "0")); err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.RateLimit, err = strconv.Atoi(getEnv("RATE_LIMIT", "100")); err != nil {
		return fmt.Errorf("invalid RATE_LIMIT: %w", err)
	}
	if cfg.RateLimitWindow, err = time.ParseDuration(getEnv("RATE_LIMIT_WINDOW", "1m")); err != nil {
		return fmt.Errorf("invalid RATE_LIMIT_WINDOW: %w", err)
	}
	return nil
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func secretOrEnv(secret, key, fallback string) string {
	if v := readSecret(secret); v != "" {
		return v
	}
	return getEnv(key, fallback)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
