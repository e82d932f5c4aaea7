package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds everything the server needs, loaded once in main and
// passed explicitly to the services that need it.
type Config struct {
	Env  string
	Port string

	DatabaseURL string

	JWTSecret       string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	AllowedOrigins []string

	// Per-client-IP rate limit for the public API.
	RateLimitRPS   float64
	RateLimitBurst int

	Video VideoConfig
	Email EmailConfig

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string
}

// VideoConfig configures the external video-conferencing provider.
type VideoConfig struct {
	BaseURL    string
	AccessKey  string
	Secret     string
	TemplateID string
	Timeout    time.Duration
}

// EmailConfig configures the external transactional-email provider.
type EmailConfig struct {
	BaseURL   string
	APIKey    string
	FromEmail string
	FromName  string
	Timeout   time.Duration
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("no .env file found, using environment")
	}

	cfg := &Config{
		Env:             getEnv("APP_ENV", "development"),
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "*")),
		RateLimitRPS:    getFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:  getInt("RATE_LIMIT_BURST", 40),
		Video: VideoConfig{
			BaseURL:    getEnv("VIDEO_API_URL", "https://api.100ms.live/v2"),
			AccessKey:  os.Getenv("VIDEO_ACCESS_KEY"),
			Secret:     os.Getenv("VIDEO_SECRET"),
			TemplateID: os.Getenv("VIDEO_TEMPLATE_ID"),
			Timeout:    getDuration("VIDEO_TIMEOUT", 8*time.Second),
		},
		Email: EmailConfig{
			BaseURL:   getEnv("EMAIL_API_URL", "https://app.usesend.com/api/v1"),
			APIKey:    os.Getenv("EMAIL_API_KEY"),
			FromEmail: getEnv("EMAIL_FROM", "noreply@prime-interviews.com"),
			FromName:  getEnv("EMAIL_FROM_NAME", "Prime Interviews"),
			Timeout:   getDuration("EMAIL_TIMEOUT", 8*time.Second),
		},
		RazorpayKeyID:         os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:     os.Getenv("RAZORPAY_KEY_SECRET"),
		RazorpayWebhookSecret: os.Getenv("RAZORPAY_WEBHOOK_SECRET"),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return nil, fmt.Errorf("JWT_SECRET must be at least 32 bytes")
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid integer env var, using default")
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid float env var, using default")
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Warn().Str("key", key).Str("value", v).Msg("invalid duration env var, using default")
		return fallback
	}
	return d
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
