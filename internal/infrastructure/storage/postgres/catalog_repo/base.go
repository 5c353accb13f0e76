// Package catalog_repo provides PostgreSQL implementations for the
// master data repositories.
package catalog_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/infrastructure/storage/postgres"
)

// builder returns a squirrel builder with PostgreSQL placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// getOne runs the select and scans a single row into dst, mapping
// pgx.ErrNoRows to a NotFound app error.
func getOne(ctx context.Context, txm *postgres.TxManager, q squirrel.SelectBuilder, dst any, entity string, id any) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}
	err = pgxscan.Get(ctx, txm.GetQuerier(ctx), dst, sql, args...)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFound(entity, id)
		}
		return fmt.Errorf("select %s: %w", entity, err)
	}
	return nil
}

// selectAll runs the select and scans all rows into dst.
func selectAll(ctx context.Context, txm *postgres.TxManager, q squirrel.SelectBuilder, dst any, entity string) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build select: %w", err)
	}
	if err := pgxscan.Select(ctx, txm.GetQuerier(ctx), dst, sql, args...); err != nil {
		return fmt.Errorf("select %s: %w", entity, err)
	}
	return nil
}

// insertReturningID inserts the column map and scans the generated id.
func insertReturningID(ctx context.Context, txm *postgres.TxManager, table string, data map[string]any, id *int64) error {
	delete(data, "id")
	q := builder().Insert(table).SetMap(data).Suffix("RETURNING id")
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if err := txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(id); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// updateByID updates the column map for one row.
func updateByID(ctx context.Context, txm *postgres.TxManager, table string, id int64, data map[string]any) error {
	delete(data, "id")
	q := builder().Update(table).SetMap(data).Where(squirrel.Eq{"id": id})
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	tag, err := txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(table, id)
	}
	return nil
}

// setActive flips the is_active flag for one row.
func setActive(ctx context.Context, txm *postgres.TxManager, table string, id int64, active bool) error {
	q := builder().Update(table).Set("is_active", active).Where(squirrel.Eq{"id": id})
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}
	tag, err := txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("set active %s: %w", table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(table, id)
	}
	return nil
}

// lastCode returns the code column of the newest row matching pred,
// or "" when the table is empty for that predicate.
func lastCode(ctx context.Context, txm *postgres.TxManager, table, codeCol string, pred any) (string, error) {
	q := builder().Select(codeCol).From(table).OrderBy("id DESC").Limit(1)
	if pred != nil {
		q = q.Where(pred)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return "", fmt.Errorf("build select: %w", err)
	}
	var code string
	err = txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last code %s: %w", table, err)
	}
	return code, nil
}
