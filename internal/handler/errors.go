package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest    = "Invalid request body"
	ErrMsgMissingQueryParam = "Missing %s query parameter"

	ErrMsgSyncAlreadyRunning  = "A sync run is already in progress"
	ErrMsgSyncFailed          = "Sync run failed"
	ErrMsgGetStatsFailed      = "Failed to retrieve sync statistics"
	ErrMsgWebhookUnauthorized = "Unauthorized"
	ErrMsgGenericServerError  = "Something went wrong"
)

// Success messages for API responses
const (
	MsgSyncCompleted   = "Sync completed"
	MsgLockCleared     = "Sync lock cleared"
	MsgProductAccepted = "Product update applied"
)
