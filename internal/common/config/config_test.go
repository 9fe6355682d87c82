package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/AlibekovAA/event-registration/internal/common/constants"
	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DATABASE_URL", "memory://")
	t.Setenv("SESSION_SECRET", testSecret)
}

func TestLoadAppConfig_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("SESSION_SECRET", testSecret)

	_, err := LoadAppConfig()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Fatalf("expected ErrMissingRequiredEnv, got %v", err)
	}
	if !strings.Contains(err.Error(), "DATABASE_URL") {
		t.Errorf("expected error to name DATABASE_URL, got %v", err)
	}
}

func TestLoadAppConfig_MissingSessionSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "memory://")
	t.Setenv("SESSION_SECRET", "")

	_, err := LoadAppConfig()
	if !errors.Is(err, commonerrors.ErrMissingRequiredEnv) {
		t.Fatalf("expected ErrMissingRequiredEnv, got %v", err)
	}
}

func TestLoadAppConfig_ShortSessionSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "memory://")
	t.Setenv("SESSION_SECRET", "short")

	_, err := LoadAppConfig()
	if !errors.Is(err, commonerrors.ErrInvalidSecret) {
		t.Fatalf("expected ErrInvalidSecret, got %v", err)
	}
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PORT", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("SESSION_TTL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("BCRYPT_COST", "")

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != constants.DefaultHTTPPort {
		t.Errorf("expected port %s, got %s", constants.DefaultHTTPPort, cfg.HTTPPort)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Errorf("expected session ttl 24h, got %v", cfg.SessionTTL)
	}
	if cfg.Production {
		t.Error("expected production to be false by default")
	}
	if cfg.BcryptCost != 12 {
		t.Errorf("expected bcrypt cost 12, got %d", cfg.BcryptCost)
	}
	if cfg.CORSOrigins != nil {
		t.Errorf("expected no cors origins, got %v", cfg.CORSOrigins)
	}
}

func TestLoadAppConfig_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_PORT", "")
	t.Setenv("PORT", "8080")
	t.Setenv("APP_ENV", "Production")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("CORS_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("ADMIN_TOKEN", "admin-secret")

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.HTTPPort)
	}
	if !cfg.Production {
		t.Error("expected production mode")
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Errorf("expected session ttl 2h, got %v", cfg.SessionTTL)
	}
	if cfg.RequestTimeout != constants.DefaultRequestTimeout {
		t.Errorf("expected fallback request timeout, got %v", cfg.RequestTimeout)
	}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != "https://a.example" || cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("unexpected cors origins: %v", cfg.CORSOrigins)
	}
	if cfg.AdminToken != "admin-secret" {
		t.Errorf("expected admin token, got %q", cfg.AdminToken)
	}
}

func TestLoadAppConfig_EmptyValuesUseDefaults(t *testing.T) {
	setRequired(t)
	for _, key := range []string{"HTTP_PORT", "PORT", "REDIS_URL", "STATIC_DIR", "LOG_LEVEL", "SESSION_TTL", "BCRYPT_COST"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.HTTPPort != constants.DefaultHTTPPort {
		t.Errorf("expected port %s, got %q", constants.DefaultHTTPPort, cfg.HTTPPort)
	}
	if cfg.RedisURL != constants.DefaultRedisURL {
		t.Errorf("expected redis url %s, got %q", constants.DefaultRedisURL, cfg.RedisURL)
	}
	if cfg.StaticDir != constants.DefaultStaticDir {
		t.Errorf("expected static dir %s, got %q", constants.DefaultStaticDir, cfg.StaticDir)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected log level info, got %q", cfg.LogLevel)
	}
}

func TestLoadAppConfig_HTTPPortWinsOverPort(t *testing.T) {
	setRequired(t)
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("PORT", "8080")

	cfg, err := LoadAppConfig()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.HTTPPort != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.HTTPPort)
	}
}
