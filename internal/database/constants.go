package database

import "time"

// Connection pool defaults
const (
	DefaultMinConnections = 1
	DefaultMaxConnections = 4
	PingTimeout           = 5 * time.Second
)

// MigrationsDir is the embedded directory holding goose migrations
const MigrationsDir = "migrations"

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToLoadMigrations  = "failed to load migrations"
	ErrMsgFailedToMigrate         = "failed to apply migrations"
)

// Log Messages
const (
	LogMsgConnected        = "Connected to the key-value database"
	LogMsgMigrationApplied = "Applied database migration"
)
