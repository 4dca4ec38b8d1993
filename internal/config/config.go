package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/netip"
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
	RateLimit RateLimitConfig
	Report    ReportConfig
	Storage   StorageConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	Version  string
	LogLevel slog.Level
	// Timezone is used when company settings carry none.
	Timezone       *time.Location
	AllowedOrigins []string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
	// TrustedProxies are the peers whose X-Forwarded-For header is honored.
	TrustedProxies []netip.Prefix
}

type ReportConfig struct {
	Concurrency     int
	ArchiveEnabled  bool
	ArchiveInterval time.Duration
}

type StorageConfig struct {
	Type     string
	BasePath string
	BaseURL  string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

func Load() (*Config, error) {
	// A missing .env is fine; the environment may already be populated.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := getEnvInt("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	dbMaxConns, err := getEnvInt("DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "hris_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
	}

	// Application configuration
	appPort, err := getEnvInt("APP_PORT", 8080)
	if err != nil {
		return nil, err
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	timezone, err := time.LoadLocation(getEnv("APP_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		LogLevel:       logLevel,
		Timezone:       timezone,
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	// JWT configuration
	accessExpiration, err := getEnvDuration("JWT_ACCESS_EXPIRATION_TIME", time.Hour)
	if err != nil {
		return nil, err
	}
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: accessExpiration,
	}

	// Rate limit configuration
	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_RPS: %w", err)
	}
	burst, err := getEnvInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, err
	}
	trustedProxies, err := parsePrefixes(getEnvSlice("RATE_LIMIT_TRUSTED_PROXIES", nil))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_TRUSTED_PROXIES: %w", err)
	}
	config.RateLimit = RateLimitConfig{RPS: rps, Burst: burst, TrustedProxies: trustedProxies}

	// Report configuration
	concurrency, err := getEnvInt("REPORT_CONCURRENCY", 8)
	if err != nil {
		return nil, err
	}
	archiveEnabled, err := strconv.ParseBool(getEnv("REPORT_ARCHIVE_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_ARCHIVE_ENABLED: %w", err)
	}
	archiveInterval, err := getEnvDuration("REPORT_ARCHIVE_INTERVAL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	config.Report = ReportConfig{
		Concurrency:     concurrency,
		ArchiveEnabled:  archiveEnabled,
		ArchiveInterval: archiveInterval,
	}

	// Storage configuration
	config.Storage = StorageConfig{
		Type:        strings.ToLower(getEnv("STORAGE_TYPE", StorageLocal)),
		BasePath:    getEnv("STORAGE_BASE_PATH", "./storage"),
		BaseURL:     getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
		S3Bucket:    getEnv("S3_BUCKET", ""),
		S3Region:    getEnv("S3_REGION", "auto"),
		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),
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
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must not be negative")
	}
	if c.Report.ArchiveInterval <= 0 {
		return fmt.Errorf("REPORT_ARCHIVE_INTERVAL must be positive")
	}

	switch c.Storage.Type {
	case StorageLocal:
		if c.Storage.BasePath == "" {
			return fmt.Errorf("STORAGE_BASE_PATH is required for local storage")
		}
	case StorageS3:
		if c.Storage.S3Bucket == "" {
			return fmt.Errorf("S3_BUCKET is required for s3 storage")
		}
		if c.Storage.S3AccessKey == "" || c.Storage.S3SecretKey == "" {
			return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY are required for s3 storage")
		}
	default:
		return fmt.Errorf("STORAGE_TYPE must be %q or %q", StorageLocal, StorageS3)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
		c.Database.MaxConns,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := getEnv(key, "")
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	var result []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}

// parsePrefixes accepts CIDR ranges and bare addresses.
func parsePrefixes(values []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		if !strings.Contains(v, "/") {
			addr, err := netip.ParseAddr(v)
			if err != nil {
				return nil, err
			}
			prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
			continue
		}
		prefix, err := netip.ParsePrefix(v)
		if err != nil {
			return nil, err
		}
		prefixes = append(prefixes, prefix.Masked())
	}
	return prefixes, nil
}
