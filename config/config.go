package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds everything the service reads from the environment.
// Engine defaults are overridable per request; persistence-style settings
// do not exist here because each reconciliation run is stateless.
type Config struct {
	Port               string `validate:"required"`
	Env                string
	CORSAllowedOrigins string

	// Engine defaults, used when a request does not supply its own values.
	FallbackProductCost decimal.Decimal
	PackagingCost       decimal.Decimal

	// Upload guardrail, megabytes per file.
	MaxUploadSizeMB int64 `validate:"gt=0"`
}

var (
	cfg     *Config
	cfgOnce sync.Once
	cfgErr  error
)

const (
	defaultPort            = "8080"
	defaultPackagingCost   = "5"
	defaultMaxUploadSizeMB = int64(25)
)

// Load reads .env (if present) and the process environment exactly once.
func Load() (*Config, error) {
	cfgOnce.Do(func() {
		godotenv.Load()

		c := &Config{
			Port:               getEnv("PORT", defaultPort),
			Env:                os.Getenv("GO_ENV"),
			CORSAllowedOrigins: os.Getenv("CORS_ALLOWED_ORIGINS"),
			MaxUploadSizeMB:    defaultMaxUploadSizeMB,
		}

		fallback, err := decimalEnv("FALLBACK_PRODUCT_COST", "0")
		if err != nil {
			cfgErr = err
			return
		}
		c.FallbackProductCost = fallback

		packaging, err := decimalEnv("PACKAGING_COST", defaultPackagingCost)
		if err != nil {
			cfgErr = err
			return
		}
		c.PackagingCost = packaging

		if raw := strings.TrimSpace(os.Getenv("MAX_UPLOAD_SIZE_MB")); raw != "" {
			size, err := strconv.ParseInt(raw, 10, 64)
			if err != nil {
				cfgErr = fmt.Errorf("MAX_UPLOAD_SIZE_MB must be an integer: %w", err)
				return
			}
			c.MaxUploadSizeMB = size
		}

		if err := validator.New().Struct(c); err != nil {
			cfgErr = fmt.Errorf("invalid configuration: %w", err)
			return
		}
		cfg = c
	})
	return cfg, cfgErr
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func decimalEnv(key, fallback string) (decimal.Decimal, error) {
	raw := getEnv(key, fallback)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be numeric, got %q: %w", key, raw, err)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%s must not be negative, got %q", key, raw)
	}
	return d, nil
}

// IsProduction mirrors the GO_ENV convention used across deployments.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}
