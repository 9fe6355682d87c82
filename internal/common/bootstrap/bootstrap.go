package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	authhttp "github.com/AlibekovAA/event-registration/internal/auth/http"
	authservice "github.com/AlibekovAA/event-registration/internal/auth/service"
	"github.com/AlibekovAA/event-registration/internal/common/clock"
	"github.com/AlibekovAA/event-registration/internal/common/config"
	"github.com/AlibekovAA/event-registration/internal/common/constants"
	commoncrypto "github.com/AlibekovAA/event-registration/internal/common/crypto"
	commonhttp "github.com/AlibekovAA/event-registration/internal/common/http"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
	"github.com/AlibekovAA/event-registration/internal/common/server"
	registrationhttp "github.com/AlibekovAA/event-registration/internal/registration/http"
	registrationservice "github.com/AlibekovAA/event-registration/internal/registration/service"
	"github.com/AlibekovAA/event-registration/internal/session"
	userrepo "github.com/AlibekovAA/event-registration/internal/user/repository"
	"github.com/AlibekovAA/event-registration/internal/web"
)

const serviceName = "event-registration"

type App struct {
	Log     *logger.Logger
	Config  config.AppConfig
	Handler http.Handler
	Hooks   []server.ShutdownHook
}

// NewAppFromEnv loads the configuration, builds the logger it describes and
// wires the application.
func NewAppFromEnv(ctx context.Context) (*App, error) {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogDir, serviceName, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app, err := NewApp(ctx, cfg, log)
	if err != nil {
		log.Errorf("failed to build application: %v", err)
		_ = log.Close()
		return nil, err
	}
	return app, nil
}

// NewApp connects the stores named in cfg and assembles the HTTP handler.
func NewApp(ctx context.Context, cfg config.AppConfig, log *logger.Logger) (*App, error) {
	repo, closeRepo, err := userrepo.Open(ctx, log, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}

	rdb, err := session.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		_ = closeRepo(context.Background())
		return nil, fmt.Errorf("failed to connect to session store: %w", err)
	}

	handler, err := buildHandler(cfg, log, repo, rdb)
	if err != nil {
		_ = rdb.Close()
		_ = closeRepo(context.Background())
		return nil, err
	}

	hooks := []server.ShutdownHook{
		func(context.Context) error {
			log.Info("closing session store")
			return rdb.Close()
		},
		func(ctx context.Context) error {
			log.Info("closing user store")
			return closeRepo(ctx)
		},
	}

	return &App{
		Log:     log,
		Config:  cfg,
		Handler: handler,
		Hooks:   hooks,
	}, nil
}

func buildHandler(cfg config.AppConfig, log *logger.Logger, repo userrepo.Repository, rdb redis.UniversalClient) (http.Handler, error) {
	signer, err := session.NewTokenSigner(cfg.SessionSecret)
	if err != nil {
		return nil, err
	}

	clk := clock.NewRealClock()
	ids := commoncrypto.NewUUIDGenerator()

	sessions := session.NewManager(session.ManagerDeps{
		Store:       session.NewRedisStore(rdb, constants.SessionKeyPrefix),
		Signer:      signer,
		IDGenerator: ids,
		Clock:       clk,
		Log:         log,
	}, cfg.SessionTTL)

	authSvc, err := authservice.NewAuthService(authservice.AuthServiceDeps{
		Repo:        repo,
		Sessions:    sessions,
		Hasher:      commoncrypto.NewBcryptHasher(cfg.BcryptCost),
		IDGenerator: ids,
		Clock:       clk,
		Log:         log,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build auth service: %w", err)
	}

	registrationSvc := registrationservice.NewRegistrationService(repo, clk, log)

	cookies := session.CookieConfig{
		Name:   constants.SessionCookieName,
		TTL:    sessions.TTL(),
		Secure: cfg.Production,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	authhttp.NewHandler(authSvc, cookies, cfg.RequestTimeout, log).RegisterRoutes(mux)
	registrationhttp.NewHandler(
		registrationSvc,
		session.Middleware(sessions, cookies, log),
		registrationhttp.Config{AdminToken: cfg.AdminToken, Timeout: cfg.RequestTimeout},
		log,
	).RegisterRoutes(mux)

	mux.Handle("/", web.NewHandler(os.DirFS(cfg.StaticDir), log))

	if cfg.AdminToken == "" {
		log.Warn("ADMIN_TOKEN is not set: /api/admin/registrations is publicly readable")
	}

	return commonhttp.BuildBaseHandler(log, commonhttp.BaseOptions{
		CORSOrigins:    cfg.CORSOrigins,
		MaxRequestSize: constants.DefaultMaxRequestSize,
	}, mux), nil
}
