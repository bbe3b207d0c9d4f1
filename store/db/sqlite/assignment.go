package sqlite

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/LuisDeAnda17/concept-backend-sub002/store"
)

func (d *DB) CreateAssignment(ctx context.Context, create *store.Assignment) (*store.Assignment, error) {
	fields := []string{"uid", "group_uid", "name", "due_ts"}
	placeholderValues := []any{create.UID, create.GroupUID, create.Name, create.DueTs}

	stmt := `INSERT INTO assignment (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(placeholderValues)) + `)
		RETURNING id, created_ts, updated_ts`

	if err := d.db.QueryRowContext(ctx, stmt, placeholderValues...).Scan(
		&create.ID,
		&create.CreatedTs,
		&create.UpdatedTs,
	); err != nil {
		if isUniqueViolation(err) {
			return nil, errors.Wrap(store.ErrAlreadyExists, "assignment")
		}
		return nil, errors.Wrap(err, "failed to create assignment")
	}

	return create, nil
}

func (d *DB) ListAssignments(ctx context.Context, find *store.FindAssignment) ([]*store.Assignment, error) {
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
		SELECT id, uid, group_uid, name, due_ts, created_ts, updated_ts
		FROM assignment
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query assignments")
	}
	defer rows.Close()

	list := make([]*store.Assignment, 0)
	for rows.Next() {
		var assignment store.Assignment
		if err := rows.Scan(
			&assignment.ID,
			&assignment.UID,
			&assignment.GroupUID,
			&assignment.Name,
			&assignment.DueTs,
			&assignment.CreatedTs,
			&assignment.UpdatedTs,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan assignment")
		}
		list = append(list, &assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate assignments")
	}

	return list, nil
}

func (d *DB) UpdateAssignment(ctx context.Context, update *store.UpdateAssignment) error {
	set, args := []string{}, []any{}

	if v := update.Name; v != nil {
		set, args = append(set, "name = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.DueTs; v != nil {
		set, args = append(set, "due_ts = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := update.UpdatedTs; v != nil {
		set, args = append(set, "updated_ts = "+placeholder(len(args)+1)), append(args, *v)
	}

	if len(set) == 0 {
		return nil
	}

	args = append(args, update.ID)
	stmt := `UPDATE assignment SET ` + strings.Join(set, ", ") + ` WHERE id = ` + placeholder(len(args))
	result, err := d.db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return errors.Wrap(err, "failed to update assignment")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.Wrap(store.ErrNotFound, "assignment")
	}

	return nil
}

func (d *DB) DeleteAssignment(ctx context.Context, delete *store.DeleteAssignment) error {
	stmt := `DELETE FROM assignment WHERE id = ` + placeholder(1)
	result, err := d.db.ExecContext(ctx, stmt, delete.ID)
	if err != nil {
		return errors.Wrap(err, "failed to delete assignment")
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return errors.Wrap(store.ErrNotFound, "assignment")
	}

	return nil
}
