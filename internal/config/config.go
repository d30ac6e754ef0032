package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"course-compass/internal/ml"
	"course-compass/internal/ranking"
)

type Config struct {
	App      AppConfig
	Model    ModelConfig
	Ranker   RankerConfig
	Database DatabaseConfig
	Auth     AuthConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type ModelConfig struct {
	PrimaryPath       string
	SecondaryPath     string
	MetricsPath       string
	DefaultClassCount int
}

type RankerConfig struct {
	Alpha               float64
	PrimaryWeight       float64
	SecondaryWeight     float64
	ConfidenceThreshold float64
	TopK                int
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout time.Duration
	PoolMaxConns   int32
}

// Enabled reports whether a catalog database was configured at all. An empty
// DB_HOST means the service runs on request-supplied course lists only.
func (c DatabaseConfig) Enabled() bool {
	return c.DBHost != ""
}

type AuthConfig struct {
	AdminSecret string
}

// Enabled reports whether admin routes require a token. Left unset, the
// model admin surface is open, which is the expected mode behind a gateway.
func (c AuthConfig) Enabled() bool {
	return c.AdminSecret != ""
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key, fallback string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			return fallback
		}
		return v
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Model = ModelConfig{
		PrimaryPath:       opt("MODEL_PATH", "models/course_model.json"),
		SecondaryPath:     opt("SECONDARY_MODEL_PATH", ""),
		MetricsPath:       opt("METRICS_PATH", "models/model_metrics.json"),
		DefaultClassCount: optInt("DEFAULT_CLASS_COUNT", ml.DefaultClassCount),
	}

	cfg.Ranker = RankerConfig{
		Alpha:               optFloat("RANKER_ALPHA", ranking.DefaultAlpha),
		PrimaryWeight:       optFloat("ENSEMBLE_PRIMARY_WEIGHT", 0.6),
		SecondaryWeight:     optFloat("ENSEMBLE_SECONDARY_WEIGHT", 0.4),
		ConfidenceThreshold: optFloat("CONFIDENCE_THRESHOLD", 0.7),
		TopK:                optInt("TOP_K", 3),
	}

	cfg.Database = DatabaseConfig{
		DBHost:         opt("DB_HOST", ""),
		DBPort:         opt("DB_PORT", "5432"),
		DBName:         opt("DB_NAME", ""),
		DBUser:         opt("DB_USER", ""),
		DBPassword:     opt("DB_PASSWORD", ""),
		DBSSLMode:      opt("DB_SSL_MODE", "disable"),
		ConnectTimeout: time.Duration(optInt("DB_CONNECT_TIMEOUT_SECONDS", 5)) * time.Second,
		PoolMaxConns:   int32(optInt("DB_POOL_MAX_CONNS", 0)),
	}

	cfg.Auth = AuthConfig{
		AdminSecret: opt("JWT_ADMIN_SECRET", ""),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func optFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 1 {
		return fallback
	}
	return v
}
