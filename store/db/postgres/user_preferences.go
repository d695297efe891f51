package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"

	"github.com/studystreak/studystreak/store"
)

func (d *DB) UpsertUserPreferences(ctx context.Context, upsert *store.UpsertUserPreferences) (*store.UserPreferences, error) {
	now := time.Now().Unix()
	stmt := `
		INSERT INTO user_preferences (user_id, preferences, created_ts, updated_ts)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE SET
			preferences = EXCLUDED.preferences,
			updated_ts = EXCLUDED.updated_ts
		RETURNING user_id, preferences, created_ts, updated_ts
	`
	var prefs store.UserPreferences
	if err := d.db.QueryRowContext(ctx, stmt,
		upsert.UserID,
		upsert.Preferences,
		now,
		now,
	).Scan(
		&prefs.UserID,
		&prefs.Preferences,
		&prefs.CreatedTs,
		&prefs.UpdatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert user preferences")
	}
	return &prefs, nil
}

func (d *DB) GetUserPreferences(ctx context.Context, find *store.FindUserPreferences) (*store.UserPreferences, error) {
	query := `
		SELECT user_id, preferences, created_ts, updated_ts
		FROM user_preferences
		WHERE user_id = $1
		LIMIT 1
	`
	if find.UserID == nil {
		return nil, errors.New("user id required")
	}

	var prefs store.UserPreferences
	err := d.db.QueryRowContext(ctx, query, *find.UserID).Scan(
		&prefs.UserID,
		&prefs.Preferences,
		&prefs.CreatedTs,
		&prefs.UpdatedTs,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user preferences")
	}
	return &prefs, nil
}
