package postgres

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/LuisDeAnda17/concept-backend-sub002/store"
)

func (d *DB) CreateCalendar(ctx context.Context, create *store.Calendar) (*store.Calendar, error) {
	fields := []string{"uid", "owner"}
	placeholderValues := []any{create.UID, create.Owner}

	stmt := `INSERT INTO calendar (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Wrapf(store.ErrAlreadyExists, "calendar for owner %s", create.Owner)
		}
		return nil, errors.Wrap(err, "failed to create calendar")
	}

	return create, nil
}

func (d *DB) ListCalendars(ctx context.Context, find *store.FindCalendar) ([]*store.Calendar, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Owner; v != nil {
		where, args = append(where, "owner = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, owner, created_ts
		FROM calendar
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query calendars")
	}
	defer rows.Close()

	list := make([]*store.Calendar, 0)
	for rows.Next() {
		var calendar store.Calendar
		if err := rows.Scan(
			&calendar.ID,
			&calendar.UID,
			&calendar.Owner,
			&calendar.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan calendar")
		}
		list = append(list, &calendar)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate calendars")
	}

	return list, nil
}
