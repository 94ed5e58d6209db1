package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/lucasreed/vidvault/internal/adapter"
	"github.com/lucasreed/vidvault/internal/domain"
)

const insertSettingsQuery = `INSERT INTO app_settings (
	id, theme, language, playback_speed, auto_play, loop_mode,
	cache_limit_mb, auto_cleanup, private_mode, require_auth, last_updated
) VALUES (
	:id, :theme, :language, :playback_speed, :auto_play, :loop_mode,
	:cache_limit_mb, :auto_cleanup, :private_mode, :require_auth, :last_updated
)`

const updateSettingsQuery = `UPDATE app_settings SET
	theme = :theme, language = :language, playback_speed = :playback_speed,
	auto_play = :auto_play, loop_mode = :loop_mode, cache_limit_mb = :cache_limit_mb,
	auto_cleanup = :auto_cleanup, private_mode = :private_mode,
	require_auth = :require_auth, last_updated = :last_updated
WHERE id = :id`

// GetSettings returns the singleton settings row, recreating it with defaults
// if it somehow went missing.
func (s *Store) GetSettings() (*domain.AppSettings, error) {
	var out domain.AppSettings
	err := sqlx.Get(s.db, &out,
		"SELECT * FROM app_settings WHERE id = ?", domain.SettingsID)
	if isNoRows(err) {
		defaults := adapter.DefaultSettings(time.Now().UTC())
		if _, err := sqlx.NamedExec(s.db, insertSettingsQuery, defaults); err != nil {
			return nil, fmt.Errorf("failed to recreate settings row: %w", err)
		}
		return defaults, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &out, nil
}

// UpdateSettings merges the patch into the singleton row and stamps
// lastUpdated.
func (s *Store) UpdateSettings(patch domain.AppSettingsPatch) error {
	return s.inWriteTx(context.Background(), func(tx *Store) error {
		current, err := tx.GetSettings()
		if err != nil {
			return err
		}
		adapter.ApplySettingsPatch(current, patch, time.Now().UTC())
		if _, err := sqlx.NamedExec(tx.db, updateSettingsQuery, current); err != nil {
			return fmt.Errorf("failed to update settings: %w", err)
		}
		return nil
	})
}

// ResetSettings restores the compiled-in defaults.
func (s *Store) ResetSettings() error {
	defaults := adapter.DefaultSettings(time.Now().UTC())
	if _, err := sqlx.NamedExec(s.db, updateSettingsQuery, defaults); err != nil {
		return fmt.Errorf("failed to reset settings: %w", err)
	}
	return nil
}
