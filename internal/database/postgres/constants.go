package postgres

// Error messages for repository operations
const (
	ErrMsgFailedToUpsert = "failed to upsert"
	ErrMsgFailedToQuery  = "failed to query"
	ErrMsgFailedToInsert = "failed to insert"
	ErrMsgFailedToUpdate = "failed to update"
	ErrMsgFailedToDelete = "failed to delete"
	ErrMsgFailedToScan   = "failed to scan row"
)
