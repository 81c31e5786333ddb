package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Supplier API errors
	ErrMsgNetwork     = "network error"
	ErrMsgAuth        = "missing or invalid credentials"
	ErrMsgRateLimited = "rate limit exceeded"
	ErrMsgServer      = "supplier server error"
	ErrMsgClient      = "supplier rejected request"

	// Mapping errors
	ErrMsgMapping         = "product mapping failed"
	ErrMsgProductNotFound = "product not found"
	ErrMsgMappingNotFound = "mapping not found"

	// Orchestrator errors
	ErrMsgLockHeld = "sync already running"

	// Category errors
	ErrMsgCategoryDepth    = "category tree too deep"
	ErrMsgCategoryNotFound = "category not found"

	// Settings errors
	ErrMsgSettingNotFound = "setting not found"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Supplier API errors
	ErrNetwork     = errors.New(ErrMsgNetwork)
	ErrAuth        = errors.New(ErrMsgAuth)
	ErrRateLimited = errors.New(ErrMsgRateLimited)
	ErrServer      = errors.New(ErrMsgServer)
	ErrClient      = errors.New(ErrMsgClient)

	// Mapping errors
	ErrMapping         = errors.New(ErrMsgMapping)
	ErrProductNotFound = errors.New(ErrMsgProductNotFound)
	ErrMappingNotFound = errors.New(ErrMsgMappingNotFound)

	// Orchestrator errors
	ErrLockHeld = errors.New(ErrMsgLockHeld)

	// Category errors
	ErrCategoryDepth    = errors.New(ErrMsgCategoryDepth)
	ErrCategoryNotFound = errors.New(ErrMsgCategoryNotFound)

	// Settings errors
	ErrSettingNotFound = errors.New(ErrMsgSettingNotFound)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
