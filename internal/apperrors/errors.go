package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrHoldingNotFound indicates that a holding with the given ID does not exist for the user.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrWatchlistNotFound indicates that the user has no primary watchlist.
	ErrWatchlistNotFound = errors.New("primary watchlist not found")
)

// Precondition errors are returned before any write is attempted.
var (
	// ErrNoAuthenticatedUser indicates that a commit was requested without a user.
	ErrNoAuthenticatedUser = errors.New("no authenticated user")

	// ErrNoHoldingsList indicates that a commit has no target holdings collection.
	ErrNoHoldingsList = errors.New("no target holdings list")
)

// Business logic errors represent validation failures or constraint violations.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrUnknownReportType indicates that a report carries neither HOLDINGS nor TRADES rows.
	ErrUnknownReportType = errors.New("unknown report type")

	// ErrInvalidPreviewToken indicates that a preview token is malformed, tampered with or expired.
	ErrInvalidPreviewToken = errors.New("invalid or expired preview token")

	// ErrPreviewUserMismatch indicates that a preview token was issued for another user.
	ErrPreviewUserMismatch = errors.New("preview token belongs to another user")

	// ErrPreviewAlreadyUsed indicates that a preview token was already committed.
	ErrPreviewAlreadyUsed = errors.New("preview token already committed")

	ErrEmptyPatch = errors.New("patch contains no fields")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
var (
	ErrFailedToRetrieveUser     = errors.New("failed to retrieve user")
	ErrFailedToCreateUser       = errors.New("failed to create user")
	ErrFailedToRetrieveHoldings = errors.New("failed to retrieve holdings")
	ErrFailedToSimulate         = errors.New("failed to simulate reconciliation")
	ErrFailedToCommit           = errors.New("failed to commit reconciliation")
	ErrFailedToGetVersionInfo   = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a holding references a watchlist owned by another user).
	ErrDataInconsistency = errors.New("data inconsistency detected")
)
