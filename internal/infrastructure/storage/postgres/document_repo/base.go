// Package document_repo provides PostgreSQL implementations for the
// document repositories. Approval status and the soft-delete flag are
// only ever written by the dedicated statements here, never as part of
// a document update.
package document_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"agriaccount/internal/core/apperror"
	"agriaccount/internal/domain/documents"
	"agriaccount/internal/infrastructure/storage/postgres"
)

// docStore implements documents.Store for one document table.
type docStore struct {
	txm    *postgres.TxManager
	table  string
	entity string
}

var _ documents.Store = (*docStore)(nil)

func (s *docStore) GetStatus(ctx context.Context, id int64) (documents.Status, bool, error) {
	var row struct {
		Status   documents.Status `db:"status"`
		IsActive bool             `db:"is_active"`
	}
	sql := fmt.Sprintf("SELECT status, is_active FROM %s WHERE id = $1", s.table)
	err := pgxscan.Get(ctx, s.txm.GetQuerier(ctx), &row, sql, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, apperror.NewNotFound(s.entity, id)
		}
		return "", false, fmt.Errorf("get status %s: %w", s.table, err)
	}
	return row.Status, row.IsActive, nil
}

func (s *docStore) UpdateStatus(ctx context.Context, id int64, status documents.Status) error {
	sql := fmt.Sprintf("UPDATE %s SET status = $1 WHERE id = $2", s.table)
	tag, err := s.txm.GetQuerier(ctx).Exec(ctx, sql, status, id)
	if err != nil {
		return fmt.Errorf("update status %s: %w", s.table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(s.entity, id)
	}
	return nil
}

func (s *docStore) SetActive(ctx context.Context, id int64, active bool) error {
	sql := fmt.Sprintf("UPDATE %s SET is_active = $1 WHERE id = $2", s.table)
	tag, err := s.txm.GetQuerier(ctx).Exec(ctx, sql, active, id)
	if err != nil {
		return fmt.Errorf("set active %s: %w", s.table, err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound(s.entity, id)
	}
	return nil
}

// builder returns a squirrel builder with PostgreSQL placeholders.
func builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

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

func countRows(ctx context.Context, txm *postgres.TxManager, q squirrel.SelectBuilder) (int64, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count: %w", err)
	}
	var total int64
	if err := txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return total, nil
}

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
