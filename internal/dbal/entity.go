package dbal

import (
	"context"
	"fmt"
	"maps"

	"github.com/jmoiron/sqlx"

	"github.com/example/armada/internal/core/effects"
)

// PersistHook decides how Persist writes the bound record.
// It runs before any storage call and must not perform I/O itself.
type PersistHook func(rec Record) effects.PersistEffect

// Entity binds a domain object to exactly one row of a table.
type Entity struct {
	q         sqlx.ExtContext
	table     Table
	newRecord func() Record
	record    Record
	hook      PersistHook
}

// NewEntity creates an unbound entity. newRecord must return a pointer to an empty row.
// q may be a *sqlx.DB or a *sqlx.Tx; row locks only last as long as the transaction.
func NewEntity(q sqlx.ExtContext, table Table, newRecord func() Record) *Entity {
	return &Entity{q: q, table: table, newRecord: newRecord}
}

// Table returns the table this entity is stored in.
func (e *Entity) Table() Table { return e.table }

// SetBeforePersist installs the hook consulted by Persist.
func (e *Entity) SetBeforePersist(hook PersistHook) { e.hook = hook }

// Load fetches the row with the given key and binds it.
// On failure the entity is left unbound.
func (e *Entity) Load(ctx context.Context, id int64, lock LockMode) (Record, error) {
	e.record = nil

	rec := e.newRecord()
	if err := FindByPrimaryKey(ctx, e.q, e.table, id, lock, rec); err != nil {
		return nil, err
	}

	e.record = rec
	return rec, nil
}

// Bind attaches a record that has not been loaded from storage, typically a new row.
func (e *Entity) Bind(rec Record) { e.record = rec }

// Bound reports whether a record is attached.
func (e *Entity) Bound() bool { return e.record != nil }

// Record returns the bound record, or nil.
func (e *Entity) Record() Record { return e.record }

// ID returns the primary key of the bound record, or 0.
func (e *Entity) ID() int64 {
	if e.record == nil {
		return 0
	}
	return e.record.PrimaryKey()
}

// Update writes the bound record back to its row.
func (e *Entity) Update(ctx context.Context) error {
	if e.record == nil {
		return ErrNotBound
	}
	return UpdateRow(ctx, e.q, e.table, e.record)
}

// Delete removes the bound record's row and unbinds it.
func (e *Entity) Delete(ctx context.Context) error {
	if e.record == nil {
		return ErrNotBound
	}
	if id := e.record.PrimaryKey(); id != 0 {
		if err := DeleteRow(ctx, e.q, e.table, id); err != nil {
			return err
		}
	}
	e.record = nil
	return nil
}

// Insert stores the bound record as a new row and records the generated key on it.
func (e *Entity) Insert(ctx context.Context) (int64, error) {
	if e.record == nil {
		return 0, ErrNotBound
	}
	id, err := InsertRow(ctx, e.q, e.table, e.record)
	if err != nil {
		return 0, err
	}
	e.record.SetPrimaryKey(id)
	return id, nil
}

// Plan returns the persist operation Persist would perform.
// Without a hook, unsaved records are inserted and stored ones updated.
func (e *Entity) Plan() (effects.PersistEffect, error) {
	if e.record == nil {
		return effects.PersistEffect{}, ErrNotBound
	}
	if e.hook != nil {
		return e.hook(e.record), nil
	}
	plan := effects.PersistEffect{Entity: e.table.Name, Operation: effects.OpUpdate, ID: e.record.PrimaryKey()}
	if plan.ID == 0 {
		plan.Operation = effects.OpInsert
	}
	return plan, nil
}

// Persist flushes the bound record using the operation chosen by Plan.
func (e *Entity) Persist(ctx context.Context) (effects.PersistEffect, error) {
	plan, err := e.Plan()
	if err != nil {
		return plan, err
	}

	switch plan.Operation {
	case effects.OpInsert:
		id, err := e.Insert(ctx)
		plan.ID = id
		return plan, err
	case effects.OpUpdate:
		return plan, e.Update(ctx)
	case effects.OpDelete:
		return plan, e.Delete(ctx)
	case effects.OpSkip:
		return plan, nil
	default:
		return plan, fmt.Errorf("unknown persist operation: %s", plan.Operation)
	}
}

// AsArray returns a copy of the bound record's column values.
func (e *Entity) AsArray() (map[string]any, error) {
	if e.record == nil {
		return nil, ErrNotBound
	}
	return maps.Clone(e.record.Fields()), nil
}
