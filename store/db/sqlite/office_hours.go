package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/LuisDeAnda17/concept-backend-sub002/store"
)

func (d *DB) CreateOfficeHours(ctx context.Context, create *store.OfficeHours) (*store.OfficeHours, error) {
	fields := []string{"uid", "group_uid", "start_ts", "duration_secs"}
	placeholderValues := []any{create.UID, create.GroupUID, create.StartTs, create.DurationSecs}

	stmt := `INSERT INTO office_hours (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Wrap(store.ErrAlreadyExists, "office hours")
		}
		return nil, errors.Wrap(err, "failed to create office hours")
	}

	return create, nil
}

func (d *DB) ListOfficeHours(ctx context.Context, find *store.FindOfficeHours) ([]*store.OfficeHours, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.GroupUID; v != nil {
		where, args = append(where, "group_uid = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, group_uid, start_ts, duration_secs, created_ts, updated_ts
		FROM office_hours
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query office hours")
	}
	defer rows.Close()

	list := make([]*store.OfficeHours, 0)
	for rows.Next() {
		var officeHours store.OfficeHours
		if err := rows.Scan(
			&officeHours.ID,
			&officeHours.UID,
			&officeHours.GroupUID,
			&officeHours.StartTs,
			&officeHours.DurationSecs,
			&officeHours.CreatedTs,
			&officeHours.UpdatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan office hours")
		}
		list = append(list, &officeHours)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate office hours")
	}

	return list, nil
}

func (d *DB) UpdateOfficeHours(ctx context.Context, update *store.UpdateOfficeHours) error {
	set, args := []string{}, []any{}

	if v := update.StartTs; v != nil {
		set, args = append(set, "start_ts = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.DurationSecs; v != nil {
		set, args = append(set, "duration_secs = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)
	stmt := `UPDATE office_hours SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	result, err := d.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return errors.Wrap(err, "failed to update office hours")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.Wrap(store.ErrNotFound, "office hours")
	}

	return nil
}

func (d *DB) DeleteOfficeHours(ctx context.Context, delete *store.DeleteOfficeHours) error {
	stmt := `DELETE FROM office_hours WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return errors.Wrap(err, "failed to delete office hours")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.Wrap(store.ErrNotFound, "office hours")
	}

	return nil
}
