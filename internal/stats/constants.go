package stats

// ============================================================================
// Rounding
// ============================================================================

// NoRounding disables rounding in StatTotal.
const NoRounding = -1

// DefaultDecimals is the number of decimal places used for displayed totals.
const DefaultDecimals = 2

// ============================================================================
// Error Messages
// ============================================================================

// Validation error messages
const (
	ErrMsgUnknownStat = "unknown stat: %s"
)

// Database operation error messages
const (
	ErrMsgLoadPlayerFailed   = "failed to load player info: %w"
	ErrMsgSaveRowFailed      = "failed to persist row: %w"
	ErrMsgSavePlayerFailed   = "failed to persist player info: %w"
	ErrMsgReconcileFailed    = "failed to reconcile player info: %w"
	ErrMsgFlushPlayerFailed  = "failed to flush player %s: %w"
	ErrMsgDeletePlayerFailed = "failed to delete player %s: %w"
)

// ============================================================================
// Log Messages
// ============================================================================

// Service operation log messages
const (
	LogMsgPlayerInfoLoaded = "Player info loaded"
	LogMsgPlayerInfoMerged = "Player info reconciled with cached copy"
	LogMsgRowRecorded      = "Row recorded"
	LogMsgRowRemoved       = "Row removed"
	LogMsgPlayerFlushed    = "Player info flushed"
	LogMsgPlayerDeleted    = "Player stats deleted"
)

// Error log messages
const (
	LogMsgFailedToLoadPlayer   = "Failed to load player info"
	LogMsgFailedToRecordRow    = "Failed to record row"
	LogMsgFailedToFlushPlayer  = "Failed to flush player info"
	LogMsgFailedToDeletePlayer = "Failed to delete player stats"
)
