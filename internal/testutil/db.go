// Package testutil provides a migrated in-memory database for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/team-collab-api/internal/config"
	"github.com/yukikurage/team-collab-api/internal/database"
	"github.com/yukikurage/team-collab-api/internal/logging"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB opens a fresh in-memory SQLite database with the real migrations
// applied. It is closed when the test ends.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(config.DriverSQLite3, ":memory:", logger.Silent)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(context.Background(), db, config.DriverSQLite3, logging.Discard()))
	return db
}
