package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/studystreak/studystreak/store"
)

func (d *DB) CreateStudySession(ctx context.Context, create *store.StudySession) (*store.StudySession, error) {
	createdTs := create.CreatedTs
	if createdTs == 0 {
		createdTs = time.Now().Unix()
	}

	stmt := `
		INSERT INTO study_session (
			uid, user_id, title, description, subject, study_type,
			start_ts, end_ts, duration_minutes, location, notes,
			completed, completed_ts, created_ts, updated_ts
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_ts, updated_ts
	`
	if err := d.db.QueryRowContext(ctx, stmt,
		create.UID,
		create.UserID,
		create.Title,
		create.Description,
		create.Subject,
		create.StudyType,
		create.StartTs,
		create.EndTs,
		create.DurationMinutes,
		create.Location,
		create.Notes,
		create.Completed,
		create.CompletedTs,
		createdTs,
		createdTs,
	).Scan(&create.ID, &create.CreatedTs, &create.UpdatedTs); err != nil {
		return nil, errors.Wrap(err, "failed to create study session")
	}

	return create, nil
}

func (d *DB) ListStudySessions(ctx context.Context, find *store.FindStudySession) ([]*store.StudySession, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = ?"), append(args, *v)
	}
	if v := find.UserID; v != nil {
		where, args = append(where, "user_id = ?"), append(args, *v)
	}
	if v := find.StartTsAfter; v != nil {
		where, args = append(where, "start_ts >= ?"), append(args, *v)
	}
	if v := find.Completed; v != nil {
		where, args = append(where, "completed = ?"), append(args, *v)
	}

	query := `
		SELECT
			id, uid, user_id, title, description, subject, study_type,
			start_ts, end_ts, duration_minutes, location, notes,
			completed, completed_ts, created_ts, updated_ts
		FROM study_session
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY created_ts ASC, id ASC
	`
	if v := find.Limit; v != nil {
		query += " LIMIT ?"
		args = append(args, *v)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list study sessions")
	}
	defer rows.Close()

	list := []*store.StudySession{}
	for rows.Next() {
		var session store.StudySession
		if err := rows.Scan(
			&session.ID,
			&session.UID,
			&session.UserID,
			&session.Title,
			&session.Description,
			&session.Subject,
			&session.StudyType,
			&session.StartTs,
			&session.EndTs,
			&session.DurationMinutes,
			&session.Location,
			&session.Notes,
			&session.Completed,
			&session.CompletedTs,
			&session.CreatedTs,
			&session.UpdatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan study session")
		}
		list = append(list, &session)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate study sessions")
	}
	return list, nil
}

func (d *DB) UpdateStudySession(ctx context.Context, update *store.UpdateStudySession) (*store.StudySession, error) {
	set, args := []string{"updated_ts = ?"}, []any{time.Now().Unix()}

	if v := update.Title; v != nil {
		set, args = append(set, "title = ?"), append(args, *v)
	}
	if v := update.Description; v != nil {
		set, args = append(set, "description = ?"), append(args, *v)
	}
	if v := update.Notes; v != nil {
		set, args = append(set, "notes = ?"), append(args, *v)
	}
	if v := update.Completed; v != nil {
		set, args = append(set, "completed = ?"), append(args, *v)
	}
	if v := update.CompletedTs; v != nil {
		set, args = append(set, "completed_ts = ?"), append(args, *v)
	}
	args = append(args, update.ID)

	stmt := `UPDATE study_session SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	if _, err := d.db.ExecContext(ctx, stmt, args...); err != nil {
		return nil, errors.Wrap(err, "failed to update study session")
	}

	id := update.ID
	list, err := d.ListStudySessions(ctx, &store.FindStudySession{ID: &id})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, errors.Errorf("study session %d not found", update.ID)
	}
	return list[0], nil
}

func (d *DB) DeleteStudySession(ctx context.Context, delete *store.DeleteStudySession) error {
	result, err := d.db.ExecContext(ctx,
		"DELETE FROM study_session WHERE uid = ? AND user_id = ?",
		delete.UID, delete.UserID,
	)
	if err != nil {
		return errors.Wrap(err, "failed to delete study session")
	}
	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return errors.Errorf("study session %s not found", delete.UID)
	}
	return nil
}
