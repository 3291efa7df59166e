package dbal

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// InTx runs fn inside a transaction. The transaction is rolled back when fn returns an
// error or panics, and committed otherwise. Row locks taken by loads inside fn are held
// until InTx returns.
func InTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return &StorageError{Op: "begin", Err: err}
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return &StorageError{Op: "commit", Err: err}
	}
	return nil
}
