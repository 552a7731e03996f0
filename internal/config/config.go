// Package config provides configuration structures and validation for
// the application. It handles environment-based configuration for all
// major components: the HTTP server, the selected record store backend,
// authentication, the catalog overrides and the optional event stream.
package config

import (
	"errors"
	"strings"
	"time"
)

// Store backends selectable via STORE_BACKEND.
const (
	BackendSheets   = "sheets"
	BackendCSV      = "csv"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

// Config holds the complete application configuration. Only the
// sections relevant to the selected store backend are validated.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Auth        AuthConfig
	Catalog     CatalogConfig
	Store       StoreConfig
	Sheets      SheetsConfig
	CSV         CSVConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Events      EventsConfig
	Migrator    MigratorConfig
	Session     SessionConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// AuthConfig contains the static credential table, encoded as
// "user:pass,user:pass".
type AuthConfig struct {
	Users string
}

// CatalogConfig contains optional overrides for the configured
// enumerations. Empty values keep the built-in defaults.
type CatalogConfig struct {
	Accounts       string // "code=name,code=name"
	CostCenters    string // comma-separated
	BusinessUnits  string // comma-separated
	Counterparties string // comma-separated
}

// StoreConfig selects the record store backend.
type StoreConfig struct {
	Backend string
}

// SheetsConfig contains the Google Sheets store configuration.
type SheetsConfig struct {
	CredentialsFile string // Path to the service account JSON key
	CredentialsJSON string // Inline key, takes precedence when set
	SpreadsheetID   string // ID or full spreadsheet URL
	Worksheet       string // Worksheet (tab) holding the ledger
}

// CSVConfig contains the flat-file store configuration.
type CSVConfig struct {
	Path string
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// MongoDBConfig contains MongoDB configuration
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// EventsConfig contains the optional posted-entry event stream
// configuration. Disabled by default; the posting workflow stays fully
// synchronous either way.
type EventsConfig struct {
	Enabled           bool
	Brokers           string
	Topic             string
	NumPartitions     int
	ReplicationFactor int
	WriteTimeout      time.Duration
}

// MigratorConfig configures the store-to-store migration tool.
type MigratorConfig struct {
	Source         string // Source backend name
	Target         string // Target backend name
	WorkerPoolSize int
}

// SessionConfig contains session handling configuration.
type SessionConfig struct {
	TTL time.Duration
}

// validate performs validation of all configuration values, restricted
// to the sections the selected backend actually uses.
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	if c.Auth.Users == "" {
		validationErrors = append(validationErrors, "AUTH_USERS is required")
	}

	if c.Session.TTL <= 0 {
		validationErrors = append(validationErrors, "SESSION_TTL must be greater than 0")
	}

	validationErrors = append(validationErrors, c.validateBackend(c.Store.Backend)...)

	// Validate Events config only when the stream is enabled
	if c.Events.Enabled {
		if c.Events.Brokers == "" {
			validationErrors = append(validationErrors, "EVENTS_KAFKA_BROKERS is required when EVENTS_ENABLED is true")
		}
		if c.Events.Topic == "" {
			validationErrors = append(validationErrors, "EVENTS_KAFKA_TOPIC is required when EVENTS_ENABLED is true")
		}
		if c.Events.WriteTimeout <= 0 {
			validationErrors = append(validationErrors, "EVENTS_KAFKA_WRITE_TIMEOUT must be greater than 0")
		}
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}

// validateBackend checks the store section belonging to one backend name.
func (c *Config) validateBackend(backend string) []string {
	var validationErrors []string

	switch backend {
	case BackendSheets:
		if c.Sheets.CredentialsFile == "" && c.Sheets.CredentialsJSON == "" {
			validationErrors = append(validationErrors, "SHEETS_CREDENTIALS_FILE or SHEETS_CREDENTIALS_JSON is required")
		}
		if c.Sheets.SpreadsheetID == "" {
			validationErrors = append(validationErrors, "SHEETS_SPREADSHEET_ID is required")
		}
		if c.Sheets.Worksheet == "" {
			validationErrors = append(validationErrors, "SHEETS_WORKSHEET is required")
		}
	case BackendCSV:
		if c.CSV.Path == "" {
			validationErrors = append(validationErrors, "CSV_PATH is required")
		}
	case BackendPostgres:
		if c.Postgres.URL == "" {
			validationErrors = append(validationErrors, "POSTGRES_URL is required")
		}
		if c.Postgres.MaxConns <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
		}
		if c.Postgres.MinConns <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
		}
		if c.Postgres.ConnMaxLifetime <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
		}
		if c.Postgres.ConnMaxIdleTime <= 0 {
			validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
		}
	case BackendMongo:
		if c.MongoDB.URI == "" {
			validationErrors = append(validationErrors, "MONGO_URI is required")
		}
		if c.MongoDB.Database == "" {
			validationErrors = append(validationErrors, "MONGO_DATABASE is required")
		}
		if c.MongoDB.Timeout <= 0 {
			validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
		}
		if c.MongoDB.MaxPoolSize <= 0 {
			validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
		}
		if c.MongoDB.MinPoolSize <= 0 {
			validationErrors = append(validationErrors, "MONGO_MIN_POOL_SIZE must be greater than 0")
		}
		if c.MongoDB.MaxConnIdleTime <= 0 {
			validationErrors = append(validationErrors, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")
		}
	default:
		validationErrors = append(validationErrors, "STORE_BACKEND must be one of sheets, csv, postgres, mongo")
	}

	return validationErrors
}

// ValidateMigrator checks the migration tool settings, including the
// store sections of both the source and target backends.
func (c *Config) ValidateMigrator() error {
	var validationErrors []string

	if c.Migrator.Source == c.Migrator.Target {
		validationErrors = append(validationErrors, "MIGRATOR_SOURCE and MIGRATOR_TARGET must differ")
	}
	if c.Migrator.WorkerPoolSize <= 0 {
		validationErrors = append(validationErrors, "MIGRATOR_WORKER_POOL_SIZE must be greater than 0")
	}
	validationErrors = append(validationErrors, c.validateBackend(c.Migrator.Source)...)
	validationErrors = append(validationErrors, c.validateBackend(c.Migrator.Target)...)

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}
	return nil
}
