package repository

import "context"

// Settings defines the interface for key/value sync state persistence.
// Values are opaque strings; callers own serialization.
type Settings interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
	DeleteSetting(ctx context.Context, key string) error
}
