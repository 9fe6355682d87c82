package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/AlibekovAA/event-registration/internal/common/constants"
	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
)

type AppConfig struct {
	HTTPPort       string
	DatabaseURL    string
	RedisURL       string
	SessionSecret  string
	SessionTTL     time.Duration
	Production     bool
	RequestTimeout time.Duration
	StaticDir      string
	CORSOrigins    []string
	AdminToken     string
	BcryptCost     int
	LogDir         string
	LogLevel       string
}

func LoadAppConfig() (AppConfig, error) {
	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return AppConfig{}, err
	}

	sessionSecret, err := mustEnv("SESSION_SECRET")
	if err != nil {
		return AppConfig{}, err
	}

	if err := validateSessionSecret(sessionSecret); err != nil {
		return AppConfig{}, err
	}

	port := getEnv("HTTP_PORT", getEnv("PORT", constants.DefaultHTTPPort))

	return AppConfig{
		HTTPPort:       port,
		DatabaseURL:    databaseURL,
		RedisURL:       getEnv("REDIS_URL", constants.DefaultRedisURL),
		SessionSecret:  sessionSecret,
		SessionTTL:     getDurationEnv("SESSION_TTL", constants.DefaultSessionTTL),
		Production:     strings.EqualFold(getEnv("APP_ENV", ""), "production"),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		StaticDir:      getEnv("STATIC_DIR", constants.DefaultStaticDir),
		CORSOrigins:    getListEnv("CORS_ORIGINS"),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),
		BcryptCost:     getIntEnv("BCRYPT_COST", constants.DefaultBcryptCost),
		LogDir:         getEnv("LOG_DIR", constants.DefaultLogDirectory),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}, nil
}

func validateSessionSecret(secret string) error {
	if len(secret) < constants.SessionSecretMinSize {
		return fmt.Errorf("%w: got %d bytes", commonerrors.ErrInvalidSecret, len(secret))
	}
	return nil
}

// getEnv treats a set but empty variable the same as an unset one.
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", commonerrors.ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return i
}

func getListEnv(key string) []string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
