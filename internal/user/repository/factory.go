package repository

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/event-registration/internal/common/constants"
	"github.com/AlibekovAA/event-registration/internal/common/db"
	commonerrors "github.com/AlibekovAA/event-registration/internal/common/errors"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
	"github.com/AlibekovAA/event-registration/internal/common/mongodb"
	"github.com/AlibekovAA/event-registration/internal/user/repository/migrations"
)

// CloseFunc releases the resources held by an opened store.
type CloseFunc func(context.Context) error

const (
	StorePostgres = "postgres"
	StoreMongo    = "mongodb"
	StoreMemory   = "memory"
)

// Kind reports which store implementation serves databaseURL.
func Kind(databaseURL string) (string, error) {
	u, err := url.Parse(databaseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", commonerrors.ErrUnsupportedStore, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "postgres", "postgresql":
		return StorePostgres, nil
	case "mongodb", "mongodb+srv":
		return StoreMongo, nil
	case "memory":
		return StoreMemory, nil
	default:
		return "", fmt.Errorf("%w: %q", commonerrors.ErrUnsupportedStore, u.Scheme)
	}
}

// Open connects the user store selected by the scheme of databaseURL and
// prepares its schema.
func Open(ctx context.Context, log *logger.Logger, databaseURL string) (Repository, CloseFunc, error) {
	kind, err := Kind(databaseURL)
	if err != nil {
		return nil, nil, err
	}

	switch kind {
	case StorePostgres:
		return openPostgres(ctx, log, databaseURL)
	case StoreMongo:
		return openMongo(ctx, log, databaseURL)
	default:
		log.Warn("using in-memory user store: data is lost on restart")
		return NewMemoryRepository(), func(context.Context) error { return nil }, nil
	}
}

func openPostgres(ctx context.Context, log *logger.Logger, databaseURL string) (Repository, CloseFunc, error) {
	pool, err := connectAndMigrate(
		ctx,
		func(ctx context.Context) (*pgxpool.Pool, error) { return db.NewPool(ctx, log, databaseURL) },
		func(ctx context.Context) error { return db.Migrate(ctx, log, databaseURL, migrations.FS) },
	)
	if err != nil {
		return nil, nil, err
	}

	metricsCtx, stopMetrics := context.WithCancel(context.Background())
	db.StartPoolMetrics(metricsCtx, pool, constants.DBPoolMetricsInterval)

	closeFn := func(context.Context) error {
		stopMetrics()
		pool.Close()
		return nil
	}
	return NewPgRepository(pool), closeFn, nil
}

// connectAndMigrate opens the pool before migrating so the pool's connect
// retries cover a database that is still starting.
func connectAndMigrate(
	ctx context.Context,
	connect func(context.Context) (*pgxpool.Pool, error),
	migrate func(context.Context) error,
) (*pgxpool.Pool, error) {
	pool, err := connect(ctx)
	if err != nil {
		return nil, err
	}

	if err := migrate(ctx); err != nil {
		if pool != nil {
			pool.Close()
		}
		return nil, err
	}
	return pool, nil
}

func openMongo(ctx context.Context, log *logger.Logger, databaseURL string) (Repository, CloseFunc, error) {
	client, database, err := mongodb.Connect(ctx, log, databaseURL)
	if err != nil {
		return nil, nil, err
	}

	repo := NewMongoRepository(database)
	indexCtx, cancel := context.WithTimeout(ctx, constants.StoreConnectTimeout)
	defer cancel()
	if err := repo.EnsureIndexes(indexCtx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}

	return repo, client.Disconnect, nil
}
