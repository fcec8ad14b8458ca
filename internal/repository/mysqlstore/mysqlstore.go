// Package mysqlstore is the relational store backend. Tables are created by
// the goose migrations in internal/database.
package mysqlstore

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/medicamp-server/internal/model"
)

// erDupEntry is MySQL's duplicate-key error number.
const erDupEntry = 1062

func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == erDupEntry
}

func notFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return model.ErrNotFound
	}
	return err
}

func inserted(id model.ID) model.InsertResult {
	return model.InsertResult{Acknowledged: true, InsertedID: id}
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// updateOne locks the rows matched by lookup and then runs stmt in the same
// transaction. MySQL reports changed rows, not matched ones, so the lock
// query supplies MatchedCount.
func updateOne(ctx context.Context, db *sql.DB, lookup string, lookupArgs []any, stmt string, args ...any) (res model.UpdateResult, err error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return model.UpdateResult{}, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var matched int64
	if err = tx.QueryRowContext(ctx, lookup, lookupArgs...).Scan(&matched); err != nil {
		return model.UpdateResult{}, err
	}
	if matched == 0 {
		if err = tx.Commit(); err != nil {
			return model.UpdateResult{}, err
		}
		return model.UpdateResult{Acknowledged: true}, nil
	}

	r, err := tx.ExecContext(ctx, stmt, args...)
	if err != nil {
		return model.UpdateResult{}, err
	}
	changed, err := r.RowsAffected()
	if err != nil {
		return model.UpdateResult{}, err
	}
	if err = tx.Commit(); err != nil {
		return model.UpdateResult{}, err
	}
	return model.UpdateResult{Acknowledged: true, MatchedCount: matched, ModifiedCount: changed}, nil
}

func deleteWhere(ctx context.Context, db *sql.DB, stmt string, args ...any) (model.DeleteResult, error) {
	res, err := db.ExecContext(ctx, stmt, args...)
	if err != nil {
		return model.DeleteResult{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.DeleteResult{}, err
	}
	return model.DeleteResult{Acknowledged: true, DeletedCount: n}, nil
}
