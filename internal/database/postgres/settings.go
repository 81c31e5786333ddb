package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/supplyline/catsync/internal/domain"
	"github.com/supplyline/catsync/internal/repository"
)

type settingsRepository struct {
	db *pgxpool.Pool
}

// NewSettingsRepository creates a new PostgreSQL settings repository
func NewSettingsRepository(db *pgxpool.Pool) repository.Settings {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT setting_value FROM sync_settings WHERE setting_key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("%w: %q", domain.ErrSettingNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("%s setting: %w", ErrMsgFailedToQuery, err)
	}
	return value, nil
}

func (r *settingsRepository) SetSetting(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO sync_settings (setting_key, setting_value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (setting_key) DO UPDATE SET
			setting_value = EXCLUDED.setting_value,
			updated_at = now()
	`

	if _, err := r.db.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("%s setting: %w", ErrMsgFailedToUpsert, err)
	}
	return nil
}

func (r *settingsRepository) DeleteSetting(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM sync_settings WHERE setting_key = $1`, key); err != nil {
		return fmt.Errorf("%s setting: %w", ErrMsgFailedToDelete, err)
	}
	return nil
}
