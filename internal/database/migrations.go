package database

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/yukikurage/team-collab-api/internal/config"
	"github.com/yukikurage/team-collab-api/internal/database/migrations"
	"gorm.io/gorm"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = goose.UpContext

// Migrate applies the embedded migrations for driver. log receives goose's
// progress output; nil keeps goose's default logger.
func Migrate(ctx context.Context, db *gorm.DB, driver string, log goose.Logger) error {
	dialect, dir, err := migrationTarget(driver)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if log != nil {
		goose.SetLogger(log)
	}
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := gooseUpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// migrationTarget returns the goose dialect and embedded directory for driver.
// Both SQLite drivers share the sqlite3 dialect and schema.
func migrationTarget(driver string) (dialect, dir string, err error) {
	switch driver {
	case config.DriverSQLite3, config.DriverSQLite:
		return "sqlite3", "sqlite", nil
	case config.DriverPostgres:
		return "postgres", "postgres", nil
	case config.DriverMySQL:
		return "mysql", "mysql", nil
	}
	return "", "", fmt.Errorf("%w: %q", config.ErrUnknownDBDriver, driver)
}
