package constants

import "time"

const (
	PasswordMaxLength    = 72
	SessionSecretMinSize = 32

	DefaultMaxRequestSize = 1 << 20

	DefaultBcryptCost = 12

	DBPoolMaxConns        = 25
	DBPoolMinConns        = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBMigrationTimeout    = 1 * time.Minute
	StoreConnectTimeout   = 10 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "3000"
	DefaultRedisURL       = "redis://localhost:6379/0"
	DefaultStaticDir      = "public"
	DefaultSessionTTL     = 24 * time.Hour
	DefaultRequestTimeout = 5 * time.Second

	SessionCookieName   = "sessionId"
	SessionKeyPrefix    = "sess"
	SessionTokenIssuer  = "event-registration"
	DefaultLogDirectory = ""

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
