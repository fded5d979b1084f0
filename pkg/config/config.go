package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const devSecret = "dev-secret-change"

type Config struct {
	Env           string
	Port          string
	DatabaseURL   string
	RunMigrations bool
	JWT           JWTConfig
	FrontendURL   string
	BackendURL    string
	Mail          MailConfig
	RedisURL      string
	RateLimit     string
	Upload        UploadConfig
	CORSOrigins   []string
	Log           LogConfig
}

type JWTConfig struct {
	Secret          string
	Issuer          string
	SessionTTL      time.Duration
	VerificationTTL time.Duration
}

type MailConfig struct {
	ResendAPIKey string
	From         string
	// Queue sends through the asynq worker instead of calling the provider inline.
	Queue   bool
	Workers int
}

type UploadConfig struct {
	Dir      string
	MaxBytes int64
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads environment variables, optionally from a .env file if present.
func Load() (Config, error) {
	// Try to load .env if it exists; ignore error if file not found
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("PORT", "5000")
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("JWT_ISSUER", "crystalices")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("VERIFICATION_TTL", "15m")
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")
	v.SetDefault("BACKEND_URL", "http://localhost:5000")
	v.SetDefault("MAIL_FROM", "Crystal Ices <onboarding@crystalices.site>")
	v.SetDefault("MAIL_QUEUE", false)
	v.SetDefault("MAIL_WORKERS", 2)
	v.SetDefault("RATE_LIMIT", "20-M")
	v.SetDefault("UPLOAD_DIR", "uploads")
	v.SetDefault("UPLOAD_MAX_BYTES", 5<<20)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	secret := v.GetString("JWT_SECRET_KEY")
	if secret == "" {
		secret = v.GetString("JWT_SECRET")
	}
	if secret == "" {
		secret = devSecret
	}

	cfg := Config{
		Env:           strings.ToLower(v.GetString("APP_ENV")),
		Port:          v.GetString("PORT"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		RunMigrations: v.GetBool("RUN_MIGRATIONS"),
		JWT: JWTConfig{
			Secret:          secret,
			Issuer:          v.GetString("JWT_ISSUER"),
			SessionTTL:      v.GetDuration("SESSION_TTL"),
			VerificationTTL: v.GetDuration("VERIFICATION_TTL"),
		},
		FrontendURL: strings.TrimRight(v.GetString("FRONTEND_URL"), "/"),
		BackendURL:  strings.TrimRight(v.GetString("BACKEND_URL"), "/"),
		Mail: MailConfig{
			ResendAPIKey: v.GetString("RESEND_API_KEY"),
			From:         v.GetString("MAIL_FROM"),
			Queue:        v.GetBool("MAIL_QUEUE"),
			Workers:      v.GetInt("MAIL_WORKERS"),
		},
		RedisURL:  v.GetString("REDIS_URL"),
		RateLimit: v.GetString("RATE_LIMIT"),
		Upload: UploadConfig{
			Dir:      v.GetString("UPLOAD_DIR"),
			MaxBytes: v.GetInt64("UPLOAD_MAX_BYTES"),
		},
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}
	if len(cfg.CORSOrigins) == 0 {
		cfg.CORSOrigins = []string{cfg.FrontendURL}
	}
	return cfg, cfg.Validate()
}

func (c Config) IsDevelopment() bool { return c.Env == "development" || c.Env == "dev" }

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if !c.IsDevelopment() && (c.JWT.Secret == devSecret || len(c.JWT.Secret) < 16) {
		errs = append(errs, errors.New("JWT_SECRET_KEY must be set to at least 16 characters outside development"))
	}
	if c.JWT.SessionTTL <= 0 || c.JWT.VerificationTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL and VERIFICATION_TTL must be positive durations"))
	}
	if c.Mail.Queue && c.RedisURL == "" {
		errs = append(errs, errors.New("MAIL_QUEUE requires REDIS_URL"))
	}
	if c.Upload.MaxBytes <= 0 {
		errs = append(errs, fmt.Errorf("UPLOAD_MAX_BYTES must be positive, got %d", c.Upload.MaxBytes))
	}
	return errors.Join(errs...)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
