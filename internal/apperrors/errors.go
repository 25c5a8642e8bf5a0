package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrUserNotFound indicates that a user with the given ID does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountNotFound indicates that a brokerage account with the given external ID does not exist.
	ErrAccountNotFound = errors.New("brokerage account not found")

	// ErrConnectionNotFound indicates that a brokerage connection with the given external ID does not exist.
	ErrConnectionNotFound = errors.New("brokerage connection not found")

	// ErrActivityNotFound indicates that a stored activity with the given ID does not exist.
	ErrActivityNotFound = errors.New("activity not found")

	// ErrTradeNotFound indicates that a derived trade with the given ID does not exist.
	ErrTradeNotFound = errors.New("trade not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrMissingCredentials indicates that the aggregator user id or secret is absent.
	ErrMissingCredentials = errors.New("aggregator credentials are required")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not
// due to missing entities or validation issues.
var (
	// Sync operation errors
	ErrFailedToFetchActivities     = errors.New("failed to fetch account activities")
	ErrFailedToLoadPrivacyDefaults = errors.New("failed to load user privacy defaults")
	ErrFailedToSyncActivities      = errors.New("failed to sync account activities")

	// Connection/account operation errors
	ErrFailedToSaveConnection    = errors.New("failed to save connection")
	ErrFailedToSaveAccounts      = errors.New("failed to save accounts")
	ErrFailedToListConnections   = errors.New("failed to list connections")
	ErrFailedToDeleteConnection  = errors.New("failed to delete connection")
	ErrFailedToRetrievePositions = errors.New("failed to retrieve positions")
	ErrFailedToRetrieveAccount   = errors.New("failed to retrieve account details")
	ErrFailedToCreatePortalURL   = errors.New("failed to create connection portal url")

	// User operation errors
	ErrFailedToRegisterUser = errors.New("failed to register user")
	ErrFailedToDeleteUser   = errors.New("failed to delete user")
)
