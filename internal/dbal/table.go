// Package dbal binds domain entities to single database rows.
//
// A Table describes the row layout explicitly, a Record is the typed row, and an
// Entity owns at most one Record loaded by primary key, optionally under a row lock.
package dbal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Record is a typed database row that can be written back field by field.
type Record interface {
	PrimaryKey() int64
	SetPrimaryKey(id int64)
	// Fields returns column name -> value for every column of the row.
	Fields() map[string]any
}

// Table describes a single-keyed table. Columns lists every column including the key.
type Table struct {
	Name       string
	PrimaryKey string
	Columns    []string
}

// SelectQuery renders the primary-key lookup for the dialect, with ? placeholders.
func (t Table) SelectQuery(d Dialect, lock LockMode) string {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", strings.Join(t.Columns, ", "), t.Name, t.PrimaryKey)
	if clause := d.LockClause(lock); clause != "" {
		query += " " + clause
	}
	return query
}

// dataColumns returns every column except the primary key.
func (t Table) dataColumns() []string {
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c != t.PrimaryKey {
			cols = append(cols, c)
		}
	}
	return cols
}

// FindByPrimaryKey scans the row with the given key into dest (a pointer to a db-tagged struct).
func FindByPrimaryKey(ctx context.Context, q sqlx.ExtContext, t Table, id int64, lock LockMode, dest any) error {
	d, err := DialectFor(q.DriverName())
	if err != nil {
		return &StorageError{Op: "select", Table: t.Name, Err: err}
	}

	err = sqlx.GetContext(ctx, q, dest, q.Rebind(t.SelectQuery(d, lock)), id)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %d: %w", t.Name, id, ErrNotFound)
	}
	if err != nil {
		return &StorageError{Op: "select", Table: t.Name, Err: err}
	}
	return nil
}

// InsertRow stores rec as a new row and returns the generated key.
func InsertRow(ctx context.Context, q sqlx.ExtContext, t Table, rec Record) (int64, error) {
	d, err := DialectFor(q.DriverName())
	if err != nil {
		return 0, &StorageError{Op: "insert", Table: t.Name, Err: err}
	}

	fields := rec.Fields()
	cols := t.dataColumns()
	args := make([]any, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		args[i] = fields[c]
		marks[i] = "?"
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", t.Name, strings.Join(cols, ", "), strings.Join(marks, ", "))

	var id int64
	if d.SupportsReturning() {
		err = q.QueryRowxContext(ctx, q.Rebind(query+" RETURNING "+t.PrimaryKey), args...).Scan(&id)
		if err != nil {
			return 0, &StorageError{Op: "insert", Table: t.Name, Err: err}
		}
		return id, nil
	}

	result, err := q.ExecContext(ctx, q.Rebind(query), args...)
	if err != nil {
		return 0, &StorageError{Op: "insert", Table: t.Name, Err: err}
	}
	id, err = result.LastInsertId()
	if err != nil {
		return 0, &StorageError{Op: "insert", Table: t.Name, Err: err}
	}
	return id, nil
}

// UpdateRow writes every non-key column of rec to its row.
// A row that no longer exists is not an error; MySQL reports zero affected rows for
// unchanged values, so affected counts cannot tell the two apart.
func UpdateRow(ctx context.Context, q sqlx.ExtContext, t Table, rec Record) error {
	fields := rec.Fields()
	cols := t.dataColumns()
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+1)
	for _, c := range cols {
		v, ok := fields[c]
		if !ok {
			continue
		}
		sets = append(sets, c+" = ?")
		args = append(args, v)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, rec.PrimaryKey())

	query := fmt.Sprintf("UPDATE %s SET %s WHERE %s = ?", t.Name, strings.Join(sets, ", "), t.PrimaryKey)
	if _, err := q.ExecContext(ctx, q.Rebind(query), args...); err != nil {
		return &StorageError{Op: "update", Table: t.Name, Err: err}
	}
	return nil
}

// DeleteRow removes the row with the given key.
func DeleteRow(ctx context.Context, q sqlx.ExtContext, t Table, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE %s = ?", t.Name, t.PrimaryKey)
	if _, err := q.ExecContext(ctx, q.Rebind(query), id); err != nil {
		return &StorageError{Op: "delete", Table: t.Name, Err: err}
	}
	return nil
}
