package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yukikurage/team-collab-api/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// Registers the pure-Go "sqlite" driver used when DB_DRIVER=sqlite.
	_ "modernc.org/sqlite"
)

const memoryDSN = ":memory:"

// Connect opens the database described by cfg.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	if isSQLite(cfg.DBDriver) && cfg.DBPath != memoryDSN {
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	return Open(cfg.DBDriver, DSN(cfg), ParseLogLevel(cfg.DBLogLevel))
}

// Open opens a gorm handle for an explicit driver and DSN.
func Open(driver, dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	dialector, err := dialectorFor(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if isSQLite(driver) {
		if err := configureSQLite(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

// DSN builds the driver-specific connection string from cfg.
func DSN(cfg *config.Config) string {
	switch cfg.DBDriver {
	case config.DriverSQLite3:
		return withParams(cfg.DBPath, "_foreign_keys=on&_busy_timeout=5000")
	case config.DriverSQLite:
		path := cfg.DBPath
		if !strings.HasPrefix(path, "file:") {
			path = "file:" + path
		}
		return withParams(path, "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_time_format=sqlite")
	case config.DriverPostgres:
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
			cfg.DBHost,
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBName,
			portOr(cfg.DBPort, "5432"),
		)
	case config.DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser,
			cfg.DBPassword,
			cfg.DBHost,
			portOr(cfg.DBPort, "3306"),
			cfg.DBName,
		)
	}
	return ""
}

// ParseLogLevel maps DB_LOG_LEVEL onto gorm's logger levels.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func dialectorFor(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case config.DriverSQLite3:
		return sqlite.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	}
	return nil, fmt.Errorf("%w: %q", config.ErrUnknownDBDriver, driver)
}

// configureSQLite pins the pool to one connection: SQLite serialises writers
// anyway, and an in-memory database only exists on the connection that created it.
func configureSQLite(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if err := db.Exec(p).Error; err != nil {
			return fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return nil
}

func isSQLite(driver string) bool {
	return driver == config.DriverSQLite3 || driver == config.DriverSQLite
}

func withParams(dsn, params string) string {
	if strings.Contains(dsn, "?") {
		return dsn + "&" + params
	}
	return dsn + "?" + params
}

func portOr(port, fallback string) string {
	if port == "" {
		return fallback
	}
	return port
}
