package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ErrSettingNotFound is returned when no settings row exists for a key.
var ErrSettingNotFound = errors.New("setting not found")

// GetSetting loads the JSON value stored under key into target.
func (db *DB) GetSetting(ctx context.Context, key string, target interface{}) error {
	var raw []byte

	err := db.Pool.QueryRow(ctx, `
		SELECT value
		FROM app_settings
		WHERE key = $1
	`, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrSettingNotFound
		}

		return fmt.Errorf("get setting %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("unmarshal setting %s: %w", key, err)
	}

	return nil
}

// SaveSetting stores value as JSON under key, replacing any previous value.
func (db *DB) SaveSetting(ctx context.Context, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal setting %s: %w", key, err)
	}

	if _, err := db.Pool.Exec(ctx, `
		INSERT INTO app_settings (key, value, updated_at)
		VALUES ($1, $2::jsonb, NOW())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value,
		    updated_at = NOW()
	`, key, string(payload)); err != nil {
		return fmt.Errorf("save setting %s: %w", key, err)
	}

	return nil
}
