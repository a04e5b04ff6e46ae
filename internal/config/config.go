package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds the whole application configuration,
// populated from environment variables.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Recovery RecoveryConfig
	Upload   UploadConfig
	MinIO    MinIOConfig
	Worker   WorkerConfig
	Mail     MailConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
	PublicDir   string // static HTML pages (index, login, admin, ...)
}

type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	Database       string
	SSLMode        string
	MaxConns       int
	MinConns       int
	MaxRetries     int
	RetryDelay     time.Duration
	ConnectTimeout time.Duration
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	// Secure is false by default: the original deployment serves
	// plain HTTP on a local network.
	Secure bool
}

type RecoveryConfig struct {
	Secret   string // signing secret for password-recovery tokens
	TokenTTL time.Duration
}

type UploadConfig struct {
	Backend     string // "disk" or "minio"
	Dir         string // root for the disk backend (pdfs/ and covers/ live below)
	MaxFileSize int64  // per file, bytes
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type WorkerConfig struct {
	RedisAddr   string
	SweepCron   string // cron spec for the orphan-asset sweep
	Concurrency int
}

type MailConfig struct {
	SMTPHost string
	SMTPPort string
	From     string
	// BaseURL prefixes links embedded in outgoing mail.
	BaseURL string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Biblioteca Virtual API"),
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			PublicDir:   getEnv("PUBLIC_DIR", "public"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", "localhost"),
			Port:           getEnvInt("DB_PORT", 5432),
			User:           getEnv("DB_USER", "postgres"),
			Password:       getEnv("DB_PASSWORD", ""),
			Database:       getEnv("DB_NAME", "biblioteca_virtual"),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConns:       getEnvInt("DB_MAX_CONNS", 25),
			MinConns:       getEnvInt("DB_MIN_CONNS", 5),
			MaxRetries:     getEnvInt("DB_MAX_RETRIES", 3),
			RetryDelay:     time.Duration(getEnvInt("DB_RETRY_DELAY_MS", 1000)) * time.Millisecond,
			ConnectTimeout: time.Duration(getEnvInt("DB_CONNECT_TIMEOUT_S", 10)) * time.Second,
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE", "sessao_id"),
			TTL:        time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
			Secure:     getEnv("SESSION_SECURE", "false") == "true",
		},
		Recovery: RecoveryConfig{
			Secret:   getEnv("RECOVERY_SECRET", "change-me-in-production"),
			TokenTTL: time.Duration(getEnvInt("RECOVERY_TTL_MIN", 60)) * time.Minute,
		},
		Upload: UploadConfig{
			Backend:     getEnv("STORAGE_BACKEND", "disk"),
			Dir:         getEnv("UPLOAD_DIR", "uploads"),
			MaxFileSize: int64(getEnvInt("UPLOAD_MAX_BYTES", 10*1024*1024)),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
			AccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
			Bucket:    getEnv("MINIO_BUCKET", "biblioteca"),
			UseSSL:    getEnv("MINIO_USE_SSL", "false") == "true",
		},
		Worker: WorkerConfig{
			RedisAddr:   getEnv("REDIS_HOST", "localhost:6379"),
			SweepCron:   getEnv("ASSET_SWEEP_CRON", "0 3 * * *"),
			Concurrency: getEnvInt("WORKER_CONCURRENCY", 10),
		},
		Mail: MailConfig{
			SMTPHost: getEnv("SMTP_HOST", "localhost"),
			SMTPPort: getEnv("SMTP_PORT", "1025"),
			From:     getEnv("MAIL_FROM", "noreply@biblioteca.local"),
			BaseURL:  getEnv("APP_BASE_URL", "http://localhost:8080"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach production.
func (c *Config) Validate() error {
	if c.App.Environment == "production" {
		if c.Recovery.Secret == "change-me-in-production" {
			return fmt.Errorf("RECOVERY_SECRET must be set in production")
		}
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD must be set in production")
		}
	}
	if c.Upload.Backend != "disk" && c.Upload.Backend != "minio" {
		return fmt.Errorf("STORAGE_BACKEND must be disk or minio, got %q", c.Upload.Backend)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
