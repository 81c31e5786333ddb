package supplier

import (
	"fmt"

	"github.com/supplyline/catsync/internal/domain"
)

// APIError carries the supplier's response status and message alongside the
// domain sentinel it classifies as. errors.Is against domain.ErrServer,
// domain.ErrClient, domain.ErrRateLimited etc. works through Unwrap.
type APIError struct {
	Status  int
	Message string
	kind    error
}

func newAPIError(status int, message string) *APIError {
	var kind error
	switch {
	case status == 429:
		kind = domain.ErrRateLimited
	case status >= 500:
		kind = domain.ErrServer
	default:
		kind = domain.ErrClient
	}
	if message == "" {
		message = "unknown API error"
	}
	return &APIError{Status: status, Message: message, kind: kind}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%v: %s (status %d)", e.kind, e.Message, e.Status)
}

func (e *APIError) Unwrap() error {
	return e.kind
}
