package db

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AlibekovAA/event-registration/internal/common/constants"
	"github.com/AlibekovAA/event-registration/internal/common/logger"
)

// Migrate applies every pending migration in migrations to the database.
func Migrate(ctx context.Context, log *logger.Logger, databaseURL string, migrations fs.FS) error {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer sqlDB.Close()

	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	migrateCtx, cancel := context.WithTimeout(ctx, constants.DBMigrationTimeout)
	defer cancel()

	if err := goose.UpContext(migrateCtx, sqlDB, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(migrateCtx, sqlDB)
	if err != nil {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	log.Infof("database migrations applied: version=%d", version)
	return nil
}
