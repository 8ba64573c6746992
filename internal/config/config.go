package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DevJWTSecret is the signing key used when JWT_SECRET is unset. It is refused in release mode.
const DevJWTSecret = "dev-secret-change-me"

// Supported database drivers.
const (
	DriverSQLite3  = "sqlite3" // mattn/go-sqlite3 (cgo)
	DriverSQLite   = "sqlite"  // modernc.org/sqlite (pure Go)
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

var (
	ErrUnknownDBDriver   = errors.New("unknown database driver")
	ErrInsecureJWTSecret = errors.New("JWT_SECRET must be set to a non-default value in release mode")
	ErrInvalidLogFormat  = errors.New("LOG_FORMAT must be text or json")
)

type Config struct {
	Port        string
	GinMode     string
	DBDriver    string
	DBPath      string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBLogLevel  string
	JWTSecret   string
	CORSOrigins []string
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; real environment variables win.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		DBDriver:    getEnv("DB_DRIVER", DriverSQLite3),
		DBPath:      getEnv("DB_PATH", "data/app.db"),
		DBHost:      getEnv("DB_HOST", "localhost"),
		DBPort:      getEnv("DB_PORT", ""),
		DBUser:      getEnv("DB_USER", "taskuser"),
		DBPassword:  getEnv("DB_PASSWORD", "taskpassword"),
		DBName:      getEnv("DB_NAME", "team_collab"),
		DBLogLevel:  getEnv("DB_LOG_LEVEL", "warn"),
		JWTSecret:   getEnv("JWT_SECRET", DevJWTSecret),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "text"),
	}
}

// IsProduction reports whether the server runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// Validate checks settings that would otherwise fail late or insecurely.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite3, DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDBDriver, c.DBDriver)
	}

	if c.IsProduction() && (c.JWTSecret == "" || c.JWTSecret == DevJWTSecret) {
		return ErrInsecureJWTSecret
	}

	if c.LogFormat != "text" && c.LogFormat != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
