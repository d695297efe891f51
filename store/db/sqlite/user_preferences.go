package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/studystreak/studystreak/store"
)

func (d *DB) UpsertUserPreferences(ctx context.Context, upsert *store.UpsertUserPreferences) (*store.UserPreferences, error) {
	now := time.Now().Unix()
	stmt := `
		INSERT INTO user_preferences (user_id, preferences, created_ts, updated_ts)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			preferences = excluded.preferences,
			updated_ts = excluded.updated_ts
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
	where, args := []string{"1 = 1"}, []any{}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}

	query := `
		SELECT user_id, preferences, created_ts, updated_ts
		FROM user_preferences
		WHERE ` + strings.Join(where, " AND ") + `
		LIMIT 1
	`
	var prefs store.UserPreferences
	err := d.db.QueryRowContext(ctx, query, args...).Scan(
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
