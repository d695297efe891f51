package postgres

import (
	"context"
	"fmt"
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
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
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
		args = append(args, *v)
		where = append(where, fmt.Sprintf("id = $%d", len(args)))
	}
	if v := find.UID; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("uid = $%d", len(args)))
	}
	if v := find.UserID; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if v := find.StartTsAfter; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("start_ts >= $%d", len(args)))
	}
	if v := find.Completed; v != nil {
		args = append(args, *v)
		where = append(where, fmt.Sprintf("completed = $%d", len(args)))
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
		args = append(args, *v)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
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
	set, args := []string{}, []any{}

	args = append(args, time.Now().Unix())
	set = append(set, fmt.Sprintf("updated_ts = $%d", len(args)))

	if v := update.Title; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("title = $%d", len(args)))
	}
	if v := update.Description; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if v := update.Notes; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("notes = $%d", len(args)))
	}
	if v := update.Completed; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("completed = $%d", len(args)))
	}
	if v := update.CompletedTs; v != nil {
		args = append(args, *v)
		set = append(set, fmt.Sprintf("completed_ts = $%d", len(args)))
	}

	args = append(args, update.ID)
	stmt := `
		UPDATE study_session
		SET ` + strings.Join(set, ", ") + `
		WHERE id = ` + fmt.Sprintf("$%d", len(args)) + `
		RETURNING
			id, uid, user_id, title, description, subject, study_type,
			start_ts, end_ts, duration_minutes, location, notes,
			completed, completed_ts, created_ts, updated_ts
	`
	var session store.StudySession
	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(
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
		return nil, errors.Wrap(err, "failed to update study session")
	}
	return &session, nil
}

func (d *DB) DeleteStudySession(ctx context.Context, delete *store.DeleteStudySession) error {
	result, err := d.db.ExecContext(ctx,
		"DELETE FROM study_session WHERE uid = $1 AND user_id = $2",
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
