package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Store argument errors
	ErrMsgStatNotSet       = "stat is not set"
	ErrMsgInvalidStat      = "unknown stat"
	ErrMsgRowNotSet        = "row is not set"
	ErrMsgRowsNotSet       = "rows are not set"
	ErrMsgPlayerInfoNotSet = "player info is not set"

	// Lookup errors
	ErrMsgPlayerNotFound = "player not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors.
// These errors should be used consistently across all layers of the application.
// Wrap them with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Store argument errors
	ErrStatNotSet       = errors.New(ErrMsgStatNotSet)
	ErrInvalidStat      = errors.New(ErrMsgInvalidStat)
	ErrRowNotSet        = errors.New(ErrMsgRowNotSet)
	ErrRowsNotSet       = errors.New(ErrMsgRowsNotSet)
	ErrPlayerInfoNotSet = errors.New(ErrMsgPlayerInfoNotSet)

	// Lookup errors
	ErrPlayerNotFound = errors.New(ErrMsgPlayerNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
