package database

// Connection pool defaults. The service reads one player's rows per request,
// so a small pool is enough.
const (
	DefaultMinConnections = 2
	DefaultMaxConnections = 10
)

// Error messages
const (
	ErrMsgFailedToParseConnString = "failed to parse connection string"
	ErrMsgFailedToCreatePool      = "failed to create connection pool"
	ErrMsgFailedToPingDatabase    = "failed to ping database"
	ErrMsgFailedToRunMigrations   = "failed to run migrations"
)

// Log messages
const (
	LogMsgConnectedToStatsDatabase = "Connected to statistics database"
	LogMsgMigrationsApplied        = "Database migrations applied"
)
