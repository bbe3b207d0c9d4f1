package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/LuisDeAnda17/concept-backend-sub002/store"
)

func (d *DB) UpsertCalendarDay(ctx context.Context, upsert *store.CalendarDay) (*store.CalendarDay, error) {
	if upsert.UID == "" {
		upsert.UID = store.CalendarDayUID(upsert.CalendarUID, upsert.DayKey)
	}

	stmt := `
		INSERT INTO calendar_day (uid, calendar_uid, day_key)
		VALUES (` + placeholders(3) + `)
		ON CONFLICT (uid) DO UPDATE SET day_key = excluded.day_key
		RETURNING created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, upsert.UID, upsert.CalendarUID, upsert.DayKey).Scan(
		&upsert.CreatedTs,
	); err != nil {
		return nil, errors.Wrap(err, "failed to upsert calendar day")
	}

	return upsert, nil
}

func (d *DB) ListCalendarDays(ctx context.Context, find *store.FindCalendarDay) ([]*store.CalendarDay, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CalendarUID; v != nil {
		where, args = append(where, "calendar_uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DayKey; v != nil {
		where, args = append(where, "day_key = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT uid, calendar_uid, day_key, created_ts
		FROM calendar_day
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY day_key ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query calendar days")
	}
	defer rows.Close()

	list := make([]*store.CalendarDay, 0)
	for rows.Next() {
		var day store.CalendarDay
		if err := rows.Scan(
			&day.UID,
			&day.CalendarUID,
			&day.DayKey,
			&day.CreatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan calendar day")
		}
		list = append(list, &day)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate calendar days")
	}

	return list, nil
}

func (d *DB) PruneCalendarDays(ctx context.Context) (int64, error) {
	stmt := `
		DELETE FROM calendar_day
		WHERE NOT EXISTS (
			SELECT 1 FROM calendar_day_item
			WHERE calendar_day_item.calendar_uid = calendar_day.calendar_uid
			AND calendar_day_item.day_key = calendar_day.day_key
		)`
	result, err := d.db.ExecContext(ctx, stmt)
	if err != nil {
		return 0, errors.Wrap(err, "failed to prune calendar days")
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

func (d *DB) UpsertDayItem(ctx context.Context, upsert *store.DayItem) error {
	stmt := `
		INSERT INTO calendar_day_item (item_kind, item_uid, calendar_uid, day_key)
		VALUES (` + placeholders(4) + `)
		ON CONFLICT (item_kind, item_uid) DO UPDATE SET
			calendar_uid = excluded.calendar_uid,
			day_key = excluded.day_key`

	if _, err := d.db.ExecContext(ctx, stmt,
		upsert.ItemKind, upsert.ItemUID, upsert.CalendarUID, upsert.DayKey,
	); err != nil {
		return errors.Wrap(err, "failed to upsert day item")
	}

	return nil
}

func (d *DB) RemoveDayItem(ctx context.Context, remove *store.RemoveDayItem) error {
	stmt := `
		DELETE FROM calendar_day_item
		WHERE item_kind = ` + placeholder(1) + `
		AND item_uid = ` + placeholder(2) + `
		AND calendar_uid = ` + placeholder(3) + `
		AND day_key = ` + placeholder(4)

	result, err := d.db.ExecContext(ctx, stmt,
		remove.ItemKind, remove.ItemUID, remove.CalendarUID, remove.DayKey,
	)
	if err != nil {
		return errors.Wrap(err, "failed to remove day item")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.Wrapf(store.ErrNotFound, "day item %s/%s in bucket %s",
			remove.ItemKind, remove.ItemUID, store.CalendarDayUID(remove.CalendarUID, remove.DayKey))
	}

	return nil
}

func (d *DB) ListDayItems(ctx context.Context, find *store.FindDayItem) ([]*store.DayItem, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ItemKind; v != nil {
		where, args = append(where, "item_kind = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.ItemUID; v != nil {
		where, args = append(where, "item_uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.CalendarUID; v != nil {
		where, args = append(where, "calendar_uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.DayKey; v != nil {
		where, args = append(where, "day_key = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT item_kind, item_uid, calendar_uid, day_key
		FROM calendar_day_item
		WHERE ` + strings.Join(where, " AND ")

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query day items")
	}
	defer rows.Close()

	list := make([]*store.DayItem, 0)
	for rows.Next() {
		var item store.DayItem
		if err := rows.Scan(
			&item.ItemKind,
			&item.ItemUID,
			&item.CalendarUID,
			&item.DayKey,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan day item")
		}
		list = append(list, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate day items")
	}

	return list, nil
}

func (d *DB) DeleteItemRefs(ctx context.Context, kind store.ItemKind, itemUID string) error {
	stmt := `DELETE FROM calendar_day_item WHERE item_kind = ` + placeholder(1) + ` AND item_uid = ` + placeholder(2)
	if _, err := d.db.ExecContext(ctx, stmt, kind, itemUID); err != nil {
		return errors.Wrap(err, "failed to delete item refs")
	}
	return nil
}
