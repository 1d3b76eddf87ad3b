package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

const (
	defaultIssuer     = "BestProductManager"
	defaultAudience   = "BestProductManagerClient"
	defaultAccessTTL  = "15m"
	defaultRefreshTTL = "168h"
	defaultHTTPAddr   = ":8080"

	defaultAccessCookieName  = "BestProductManager.AuthToken"
	defaultRefreshCookieName = "BestProductManager.RefreshToken"
)

type Config struct {
	DatabaseURL string
	HTTPAddr    string

	JWTIssuer     string
	JWTAudience   string
	JWTSigningKey string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration

	AccessCookieName  string
	RefreshCookieName string
	CookieSecure      bool
}

// Load reads configuration from the environment. A missing or empty
// JWT_SIGNING_KEY is a startup error: the process must refuse to serve
// rather than issue unsigned or weakly signed tokens.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPAddr:          getEnv("HTTP_ADDR", defaultHTTPAddr),
		JWTIssuer:         getEnv("JWT_ISSUER", defaultIssuer),
		JWTAudience:       getEnv("JWT_AUDIENCE", defaultAudience),
		JWTSigningKey:     strings.TrimSpace(os.Getenv("JWT_SIGNING_KEY")),
		AccessCookieName:  getEnv("ACCESS_COOKIE_NAME", defaultAccessCookieName),
		RefreshCookieName: getEnv("REFRESH_COOKIE_NAME", defaultRefreshCookieName),
		CookieSecure:      parseBoolEnv("COOKIE_SECURE", "false"),
	}

	var err error
	cfg.AccessTTL, err = parseDurationEnv("ACCESS_TOKEN_TTL", defaultAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.RefreshTTL, err = parseDurationEnv("REFRESH_TOKEN_TTL", defaultRefreshTTL)
	if err != nil {
		return nil, err
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.JWTSigningKey == "" {
		return fmt.Errorf("JWT_SIGNING_KEY must be set and non-empty")
	}
	if cfg.AccessTTL <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_TTL must be > 0")
	}
	if cfg.RefreshTTL <= 0 {
		return fmt.Errorf("REFRESH_TOKEN_TTL must be > 0")
	}
	if cfg.AccessCookieName == "" || cfg.RefreshCookieName == "" {
		return fmt.Errorf("cookie names must not be empty")
	}
	return nil
}

func parseDurationEnv(name, fallback string) (time.Duration, error) {
	value := strings.TrimSpace(getEnv(name, fallback))
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func parseBoolEnv(name, fallback string) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(name, fallback)))
	return value == "1" || value == "true" || value == "yes" || value == "on"
}

func getEnv(name, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return fallback
}
